package dto

import (
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// notblank rejects strings made only of whitespace, which gin's required lets through.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		slog.Error("failed to register notblank validation", "error", err)
	}
}
