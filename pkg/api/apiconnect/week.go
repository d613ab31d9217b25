package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/weekgoal/pkg/api"
)

// WeekServiceName is the fully-qualified name of the WeekService service.
const WeekServiceName = "weekgoal.v1.WeekService"

const (
	WeekServiceSelectWeekProcedure     = "/weekgoal.v1.WeekService/SelectWeek"
	WeekServiceGetWeekProcedure        = "/weekgoal.v1.WeekService/GetWeek"
	WeekServiceSetWeeklyGoalProcedure  = "/weekgoal.v1.WeekService/SetWeeklyGoal"
	WeekServiceSetCoefficientProcedure = "/weekgoal.v1.WeekService/SetCoefficient"
	WeekServiceSetActualProcedure      = "/weekgoal.v1.WeekService/SetActual"
	WeekServiceClearActualProcedure    = "/weekgoal.v1.WeekService/ClearActual"
	WeekServiceSaveWeekProcedure       = "/weekgoal.v1.WeekService/SaveWeek"
)

// WeekServiceHandler is implemented by the server side of WeekService.
type WeekServiceHandler interface {
	SelectWeek(context.Context, *connect.Request[api.SelectWeekRequest]) (*connect.Response[api.WeekResponse], error)
	GetWeek(context.Context, *connect.Request[api.GetWeekRequest]) (*connect.Response[api.WeekResponse], error)
	SetWeeklyGoal(context.Context, *connect.Request[api.SetWeeklyGoalRequest]) (*connect.Response[api.WeekResponse], error)
	SetCoefficient(context.Context, *connect.Request[api.SetCoefficientRequest]) (*connect.Response[api.WeekResponse], error)
	SetActual(context.Context, *connect.Request[api.SetActualRequest]) (*connect.Response[api.WeekResponse], error)
	ClearActual(context.Context, *connect.Request[api.ClearActualRequest]) (*connect.Response[api.WeekResponse], error)
	SaveWeek(context.Context, *connect.Request[api.SaveWeekRequest]) (*connect.Response[api.WeekResponse], error)
}

// NewWeekServiceHandler builds an HTTP handler for svc and returns the path
// prefix to mount it on.
func NewWeekServiceHandler(svc WeekServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(WeekServiceSelectWeekProcedure, connect.NewUnaryHandler(WeekServiceSelectWeekProcedure, svc.SelectWeek, opts...))
	mux.Handle(WeekServiceGetWeekProcedure, connect.NewUnaryHandler(WeekServiceGetWeekProcedure, svc.GetWeek, opts...))
	mux.Handle(WeekServiceSetWeeklyGoalProcedure, connect.NewUnaryHandler(WeekServiceSetWeeklyGoalProcedure, svc.SetWeeklyGoal, opts...))
	mux.Handle(WeekServiceSetCoefficientProcedure, connect.NewUnaryHandler(WeekServiceSetCoefficientProcedure, svc.SetCoefficient, opts...))
	mux.Handle(WeekServiceSetActualProcedure, connect.NewUnaryHandler(WeekServiceSetActualProcedure, svc.SetActual, opts...))
	mux.Handle(WeekServiceClearActualProcedure, connect.NewUnaryHandler(WeekServiceClearActualProcedure, svc.ClearActual, opts...))
	mux.Handle(WeekServiceSaveWeekProcedure, connect.NewUnaryHandler(WeekServiceSaveWeekProcedure, svc.SaveWeek, opts...))
	return "/" + WeekServiceName + "/", mux
}

// WeekServiceClient is a client for WeekService.
type WeekServiceClient interface {
	SelectWeek(context.Context, *connect.Request[api.SelectWeekRequest]) (*connect.Response[api.WeekResponse], error)
	GetWeek(context.Context, *connect.Request[api.GetWeekRequest]) (*connect.Response[api.WeekResponse], error)
	SetWeeklyGoal(context.Context, *connect.Request[api.SetWeeklyGoalRequest]) (*connect.Response[api.WeekResponse], error)
	SetCoefficient(context.Context, *connect.Request[api.SetCoefficientRequest]) (*connect.Response[api.WeekResponse], error)
	SetActual(context.Context, *connect.Request[api.SetActualRequest]) (*connect.Response[api.WeekResponse], error)
	ClearActual(context.Context, *connect.Request[api.ClearActualRequest]) (*connect.Response[api.WeekResponse], error)
	SaveWeek(context.Context, *connect.Request[api.SaveWeekRequest]) (*connect.Response[api.WeekResponse], error)
}

// NewWeekServiceClient returns a client for the WeekService at baseURL, for
// example http://localhost:8080.
func NewWeekServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WeekServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &weekServiceClient{
		selectWeek:     connect.NewClient[api.SelectWeekRequest, api.WeekResponse](httpClient, baseURL+WeekServiceSelectWeekProcedure, opts...),
		getWeek:        connect.NewClient[api.GetWeekRequest, api.WeekResponse](httpClient, baseURL+WeekServiceGetWeekProcedure, opts...),
		setWeeklyGoal:  connect.NewClient[api.SetWeeklyGoalRequest, api.WeekResponse](httpClient, baseURL+WeekServiceSetWeeklyGoalProcedure, opts...),
		setCoefficient: connect.NewClient[api.SetCoefficientRequest, api.WeekResponse](httpClient, baseURL+WeekServiceSetCoefficientProcedure, opts...),
		setActual:      connect.NewClient[api.SetActualRequest, api.WeekResponse](httpClient, baseURL+WeekServiceSetActualProcedure, opts...),
		clearActual:    connect.NewClient[api.ClearActualRequest, api.WeekResponse](httpClient, baseURL+WeekServiceClearActualProcedure, opts...),
		saveWeek:       connect.NewClient[api.SaveWeekRequest, api.WeekResponse](httpClient, baseURL+WeekServiceSaveWeekProcedure, opts...),
	}
}

type weekServiceClient struct {
	selectWeek     *connect.Client[api.SelectWeekRequest, api.WeekResponse]
	getWeek        *connect.Client[api.GetWeekRequest, api.WeekResponse]
	setWeeklyGoal  *connect.Client[api.SetWeeklyGoalRequest, api.WeekResponse]
	setCoefficient *connect.Client[api.SetCoefficientRequest, api.WeekResponse]
	setActual      *connect.Client[api.SetActualRequest, api.WeekResponse]
	clearActual    *connect.Client[api.ClearActualRequest, api.WeekResponse]
	saveWeek       *connect.Client[api.SaveWeekRequest, api.WeekResponse]
}

func (c *weekServiceClient) SelectWeek(ctx context.Context, req *connect.Request[api.SelectWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.selectWeek.CallUnary(ctx, req)
}

func (c *weekServiceClient) GetWeek(ctx context.Context, req *connect.Request[api.GetWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.getWeek.CallUnary(ctx, req)
}

func (c *weekServiceClient) SetWeeklyGoal(ctx context.Context, req *connect.Request[api.SetWeeklyGoalRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.setWeeklyGoal.CallUnary(ctx, req)
}

func (c *weekServiceClient) SetCoefficient(ctx context.Context, req *connect.Request[api.SetCoefficientRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.setCoefficient.CallUnary(ctx, req)
}

func (c *weekServiceClient) SetActual(ctx context.Context, req *connect.Request[api.SetActualRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.setActual.CallUnary(ctx, req)
}

func (c *weekServiceClient) ClearActual(ctx context.Context, req *connect.Request[api.ClearActualRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.clearActual.CallUnary(ctx, req)
}

func (c *weekServiceClient) SaveWeek(ctx context.Context, req *connect.Request[api.SaveWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	return c.saveWeek.CallUnary(ctx, req)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
}
