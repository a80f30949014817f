package dto

// RegisterReq represents the request body for the /auth/register endpoint.
// Field rules are enforced by the usecase so each failure has its own error.
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// UpdateProfileReq is the body of PATCH /auth/me. Absent fields are unchanged.
type UpdateProfileReq struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}
