package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHandlerExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := Register(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	Allocations.WithLabelValues("tail").Inc()
	SessionEvents.WithLabelValues("saved").Inc()
	RPCRequests.WithLabelValues("/weekgoal.v1.WeekService/GetWeek", "ok").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`weekgoal_allocations_total{mode="tail"}`,
		`weekgoal_session_events_total{kind="saved"}`,
		`weekgoal_rpc_requests_total{code="ok",procedure="/weekgoal.v1.WeekService/GetWeek"}`,
		"weekgoal_active_sessions",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestInterceptorPassesThrough(t *testing.T) {
	boom := connect.NewError(connect.CodeInvalidArgument, errors.New("boom"))
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, boom
	})

	_, err := Interceptor()(next)(context.Background(), connect.NewRequest(&struct{}{}))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want the handler's error", err)
	}
}
