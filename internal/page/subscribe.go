package page

import (
	"github.com/go-playground/validator/v10"
)

// Subscription is the subscribe form payload.
type Subscription struct {
	Email string `json:"email" validate:"required,email"`
}

var validate = validator.New()

// ValidateSubscription checks that the email is present and email-shaped.
func ValidateSubscription(s Subscription) error {
	return validate.Struct(s)
}
