package checkout

// CheckoutInput captures the contact and fulfillment details snapshotted onto
// the order.
type CheckoutInput struct {
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	DeliveryMethod string  `json:"delivery_method" validate:"required"`
	FullName       string  `json:"full_name" validate:"required,min=2,max=120"`
	Phone          string  `json:"phone" validate:"required,min=5,max=40"`
	City           string  `json:"city" validate:"required,min=2,max=120"`
	Address        string  `json:"address" validate:"required,min=2,max=200"`
	Comment        *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
