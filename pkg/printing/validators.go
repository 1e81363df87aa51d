package printing

// PrintPayload is the body of a print request. Out of range copy counts are
// clamped rather than rejected.
type PrintPayload struct {
	Fields map[string]string `json:"fields"`
	Copies *int              `json:"copies"`
	Print  *bool             `json:"print"`
	Source string            `json:"source" validate:"max=100" mod:"trim"`
}
