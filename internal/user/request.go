package user

type SignUpRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SignInRequest struct {
	Email string `json:"email"`
}

// AuthResponse is returned by both sign-up and sign-in; signing up also
// signs the new user in.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
