package printers

type CreatePrinterPayload struct {
	ID   string `json:"id" validate:"omitempty,slug,max=30" mod:"trim,lcase"`
	Name string `json:"name" validate:"max=100" mod:"trim"`
	IP   string `json:"ip" validate:"required,ip" mod:"trim"`
	Port int    `json:"port" default:"9100" validate:"gte=1,lte=65535"`
}

type UpdatePrinterPayload struct {
	Name *string `json:"name" validate:"omitempty,max=100" mod:"trim"`
	IP   *string `json:"ip" validate:"omitempty,ip" mod:"trim"`
	Port *int    `json:"port" validate:"omitempty,gte=1,lte=65535"`
}

type TestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
