package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"chedoparti/pkg/logger"
	"chedoparti/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type OpenMatchValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewOpenMatchValidator(log *logger.Logger) *OpenMatchValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}
	if err := v.RegisterValidation("players_map", validatePlayersMap); err != nil {
		log.Fatal("Failed to register 'players_map' validator", "error", err)
	}

	log.Info("Open match validator initialized successfully")

	return &OpenMatchValidator{
		validate: v,
		logger:   log,
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// validatePlayersMap ensures every roster entry has a usable name. Phones may
// be empty; the sanitizer already normalized the rest.
func validatePlayersMap(fl validator.FieldLevel) bool {
	players, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}
	for name := range players {
		if len(strings.TrimSpace(name)) < 2 {
			return false
		}
	}
	return true
}

func (v *OpenMatchValidator) Validate(m *model.OpenMatch) error {
	if err := v.validate.Struct(m); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(m.Players) > m.Capacity {
		return ValidationErrors{
			ValidationError{
				Field:   "Players",
				Message: "roster exceeds match capacity",
			},
		}
	}

	return nil
}

func (v *OpenMatchValidator) ValidateUpdate(update *model.OpenMatchUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match the %s format", err.Field(), err.Param())
		case "clock_time":
			message = fmt.Sprintf("%s must be in HH:MM format", err.Field())
		case "players_map":
			message = fmt.Sprintf("%s must map player names (2+ characters) to phone numbers", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
