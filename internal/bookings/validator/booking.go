package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"reservations/pkg/logger"
	"reservations/pkg/model"

	"github.com/go-playground/validator/v10"
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

// Details flattens the errors into a field -> message map for error responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// Limits are the optional business bounds on a booking. The zero value
// checks structure only: a date is present and the time token is usable.
type Limits struct {
	Strict    bool
	MaxGuests int
}

type BookingValidator struct {
	validate *validator.Validate
	limits   Limits
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger, limits Limits) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("slot_time", validateSlotTime); err != nil {
		log.Fatal("Failed to register 'slot_time' validator",
			"error", err,
		)
	}

	log.Debug("Booking validator initialized", "strict", limits.Strict, "max_guests", limits.MaxGuests)

	return &BookingValidator{
		validate: v,
		limits:   limits,
		logger:   log,
	}
}

// validateSlotTime rejects control characters. The token is otherwise
// opaque and never rewritten, so " 19:00" and "19:00" are distinct slots.
func validateSlotTime(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	errs, err := v.structErrors(booking)
	if err != nil {
		return err
	}

	errs = append(errs, checkDate(booking.Date)...)
	if v.limits.Strict {
		errs = append(errs, v.checkVar("ID", booking.ID, "gt=0")...)
		errs = append(errs, v.checkVar("Name", booking.Name, "required,max=100")...)
		errs = append(errs, v.checkVar("Time", booking.Time, "max=32")...)
		errs = append(errs, v.checkGuests(booking.Guests)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	errs, err := v.structErrors(update)
	if err != nil {
		return err
	}

	errs = append(errs, checkDate(update.Date)...)
	if v.limits.Strict {
		errs = append(errs, v.checkVar("Time", update.Time, "max=32")...)
		errs = append(errs, v.checkGuests(update.Guests)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) structErrors(s any) (ValidationErrors, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}
	return translateValidationErrors("", validationErrs), nil
}

func checkDate(date model.Date) ValidationErrors {
	if date.IsZero() {
		return ValidationErrors{{Field: "Date", Message: "Date is required"}}
	}
	return nil
}

func (v *BookingValidator) checkGuests(guests int) ValidationErrors {
	tag := "min=1"
	if v.limits.MaxGuests > 0 {
		tag = fmt.Sprintf("min=1,max=%d", v.limits.MaxGuests)
	}
	return v.checkVar("Guests", guests, tag)
}

// checkVar runs a single tag against value and reports failures under field.
func (v *BookingValidator) checkVar(field string, value any, tag string) ValidationErrors {
	var validationErrs validator.ValidationErrors
	if err := v.validate.Var(value, tag); !errors.As(err, &validationErrs) {
		return nil
	}
	return translateValidationErrors(field, validationErrs)
}

// translateValidationErrors names each error after field, or after the
// struct field when field is empty.
func translateValidationErrors(field string, errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		name := field
		if name == "" {
			name = err.Field()
		}

		message := err.Error()
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", name)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", name, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", name, err.Param())
			if err.Kind() == reflect.String {
				message += " characters"
			}
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", name, err.Param())
		case "slot_time":
			message = fmt.Sprintf("%s must not contain control characters", name)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   name,
			Message: message,
		})
	}

	return validationErrors
}
