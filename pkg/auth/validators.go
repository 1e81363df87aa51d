package auth

// LoginPayload represents the login request body.
type LoginPayload struct {
	Username string `json:"username" validate:"required,max=50" mod:"trim"`
	PIN      string `json:"pin" validate:"required,pin"`
}

// MeResponse represents the current user response.
type MeResponse struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Initials    string   `json:"initials"`
	Role        string   `json:"role"`
	IsAdmin     bool     `json:"is_admin"`
	Stations    []string `json:"stations"` // empty = every station
}
