package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// SessionResponse is the signed-in student as exposed to clients
type SessionResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ApplicationNumber string `json:"applicationNumber"`
	Username          string `json:"username"`
	ProfileImage      string `json:"profileImage,omitempty"`
}
