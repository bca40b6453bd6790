package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
)

// registerValidations installs the custom binding validators used by the
// request DTOs.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txntype", func(fl validator.FieldLevel) bool {
			return domain.TransactionType(fl.Field().String()).IsValid()
		})
	}
}
