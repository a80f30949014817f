// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq represents the request body for the /auth/login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRes carries the access token and the logged-in user.
type LoginRes struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
	User      UserRes `json:"user"`
}
