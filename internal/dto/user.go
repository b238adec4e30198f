package dto

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
}

// AuthResponse is returned after a successful login or registration.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Theme    int    `json:"theme"`
	Token    string `json:"token"`
}

// UserStatusResponse summarizes the current account.
type UserStatusResponse struct {
	Username    string `json:"username"`
	NumOfDone   int64  `json:"num_of_done"`
	NumOfUndone int64  `json:"num_of_undone"`
}
