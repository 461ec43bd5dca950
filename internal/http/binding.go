package http

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finance-tracker/internal/domain"
)

const errInvalidStatus = "invalid status, must be one of PENDING, SETTLED, CANCELED"

var registerOnce sync.Once

// registerValidators adds the entry_type and entry_status tags to gin's
// validator engine. Both accept any casing.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("entry_type", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseEntryType(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("entry_status", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseEntryStatus(fl.Field().String())
			return ok
		})
	})
}

// bindingMessage turns a bind failure into a client facing message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "entry_type":
		return domain.ErrInvalidType.Error()
	case "entry_status":
		return errInvalidStatus
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	default:
		return fmt.Sprintf("invalid %s", strings.ToLower(fe.Field()))
	}
}
