package app

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel_booking/internal/domain"
)

// GuestForm is the booking form filled by the guest.
type GuestForm struct {
	FullName       string              `json:"fullName" validate:"required,min=3"`
	DateOfBirth    time.Time           `json:"dateOfBirth" validate:"required"`
	Gender         domain.Gender       `json:"gender" validate:"required,oneof=Hombre Mujer Otro"`
	DocumentType   domain.DocumentType `json:"documentType" validate:"required,oneof=CC CE PAS"`
	DocumentNumber string              `json:"documentNumber" validate:"required,min=5"`
	Email          string              `json:"email" validate:"required,email"`
	Phone          string              `json:"phone" validate:"required,phone"`
}

func (f GuestForm) guestData() domain.GuestData {
	return domain.GuestData{
		FullName:       f.FullName,
		DateOfBirth:    f.DateOfBirth,
		Gender:         f.Gender,
		DocumentType:   f.DocumentType,
		DocumentNumber: f.DocumentNumber,
		Email:          f.Email,
		Phone:          f.Phone,
	}
}

var phoneRe = regexp.MustCompile(`^\d{7,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidateGuestForm reports the first failing field as a *domain.ValidationError.
func ValidateGuestForm(f GuestForm) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	fe := fieldErrors[0]
	return domain.Invalid(fe.Field(), fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es obligatorio"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "email":
		return "Ingresa un email válido"
	case "phone":
		return "Ingresa un teléfono válido"
	default:
		return fe.Field() + " no es válido"
	}
}
