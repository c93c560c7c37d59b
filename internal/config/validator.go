package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Storage keys name a single file or row, never a path.
		_ = v.RegisterValidation("storage_key", func(fl validator.FieldLevel) bool {
			key := fl.Field().String()
			return key != "" && key != "." && key != ".." && filepath.Base(key) == key
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks cfg against its schema.
func Validate(cfg *Config) error {
	if cfg == nil {
		return deckerrors.NewValidationError("config", "configuration is nil", nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return deckerrors.NewValidationError(field, msg, err)
	}
	return deckerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.Storage.Backend" into "storage.backend".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
