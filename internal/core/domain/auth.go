package domain

// CredentialsRequest is the JSON body for both registration and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ReviewRequest is the JSON body for the review upsert endpoint.
type ReviewRequest struct {
	Review string `json:"review"`
}

// LoginResponse is returned on successful login. The token is also
// stored inside the server-side session for the auth guard.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
