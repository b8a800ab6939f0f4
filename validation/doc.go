// Package validation provides configuration and input validation for fetchkit.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report an
// errors.AppError with code INVALID_INPUT and a "fields" detail.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("name", c.Name).
//	    OneOf("method", c.Method, []string{"GET", "POST"}).
//	    Validate()
package validation
