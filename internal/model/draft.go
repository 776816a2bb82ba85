package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks a rejected draft; the store is left untouched.
var ErrValidation = errors.New("validation failed")

// ItemDraft is the caller-supplied portion of a new or edited item.
type ItemDraft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"omitempty,itemcategory"`
	Location    string `json:"location"`
	Room        string `json:"room" validate:"omitempty,room"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Room is a short numeric tag (up to three digits), not a free-text location.
	v.RegisterValidation("room", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) > 3 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("itemcategory", func(fl validator.FieldLevel) bool {
		return ValidCategory(fl.Field().String())
	})

	return v
}

// ValidateDraft checks a draft the way the item form does: title must be
// non-empty, room at most three digits, category a known key when set.
func ValidateDraft(draft ItemDraft) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %q fails %q", ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// NormalizeCategory maps an unset category to the default bucket.
func NormalizeCategory(key string) string {
	if key == "" {
		return CategoryOther
	}
	return key
}
