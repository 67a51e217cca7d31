package customers

type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	CustomerType string  `json:"customer_type" validate:"omitempty,oneof=retail wholesale"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=255"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	CustomerType *string `json:"customer_type,omitempty" validate:"omitempty,oneof=retail wholesale"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
