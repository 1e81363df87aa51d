package users

type CreateUserPayload struct {
	Username    string   `json:"username" validate:"required,max=50" mod:"trim,lcase"`
	PIN         string   `json:"pin" validate:"required,pin"`
	DisplayName string   `json:"display_name" validate:"required,max=100" mod:"trim"`
	Initials    string   `json:"initials" validate:"max=4" mod:"trim,ucase"`
	Role        string   `json:"role" validate:"oneof=admin operator" default:"operator"`
	Stations    []string `json:"stations" validate:"omitempty,dive,slug"` // empty = every station
}

type UpdateUserPayload struct {
	PIN         *string   `json:"pin" validate:"omitempty,pin"`
	DisplayName *string   `json:"display_name" validate:"omitempty,max=100" mod:"trim"`
	Initials    *string   `json:"initials" validate:"omitempty,max=4" mod:"trim,ucase"`
	Role        *string   `json:"role" validate:"omitempty,oneof=admin operator"`
	Stations    *[]string `json:"stations" validate:"omitempty,dive,slug"`
}

// RosterEntry is the public view of a user shown on the login screen.
type RosterEntry struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Initials    string `json:"initials"`
}
