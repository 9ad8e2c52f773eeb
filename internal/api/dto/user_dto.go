package dto

// SignupRequest payload for new users.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SigninRequest payload for login.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse carries the issued bearer token.
type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AuthenticateResponse reports the outcome of a token check. LoggedIn keeps
// the original backend's field casing, which clients depend on.
type AuthenticateResponse struct {
	Message  string `json:"message"`
	LoggedIn bool   `json:"LoggedIn"`
}
