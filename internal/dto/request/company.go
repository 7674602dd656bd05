package request

type CompanyRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required,mwphone"`
	Address     string  `json:"address" validate:"required,max=500"`
	Description string  `json:"description" validate:"max=2000"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
