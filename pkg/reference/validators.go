package reference

type CreateQualityPayload struct {
	SpeciesCode string `json:"species_code" validate:"required,max=10" mod:"trim,ucase"`
	ProductCode string `json:"product_code" validate:"required,max=10" mod:"trim,ucase"`
	Code        string `json:"code" validate:"required,max=20" mod:"trim"`
	Name        string `json:"name" validate:"max=100" mod:"trim"`
}
