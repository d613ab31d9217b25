package api

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// RegisterRequest may carry the sign-up form's driver profile.
type RegisterRequest struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Password    string   `json:"password"`
	Profile     *Profile `json:"profile,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the account and a bearer token for it.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UserResponse struct {
	User *User `json:"user"`
}

// Profile is the driver profile shown on the account page. Email mirrors
// the account and is ignored on update.
type Profile struct {
	Email             string   `json:"email"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	VehicleType       string   `json:"vehicleType"`
	PreferredZone     string   `json:"preferredZone"`
	YearsOfExperience string   `json:"yearsOfExperience"`
	Platforms         []string `json:"platforms"`
	WorkCity          string   `json:"workCity"`
	UpdatedAt         int64    `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Profile *Profile `json:"profile"`
}

type ProfileResponse struct {
	Profile *Profile `json:"profile"`
}
