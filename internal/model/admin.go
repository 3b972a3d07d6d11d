package model

import "time"

// Admin is the single site administrator as seen by the API.
type Admin struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// AdminLoginResponse is returned after successful admin login.
type AdminLoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}
