// Package validation checks form input before it ever reaches the backend.
package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("correo", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// userForm mirrors the user dialog. Tags carry the rules, userMessages the
// text shown under each field.
type userForm struct {
	Nombre          string `validate:"min=3"`
	Email           string `validate:"correo"`
	TipoDocumento   string `validate:"required"`
	NumeroDocumento string `validate:"required"`
	Genero          string `validate:"required"`
	Nacionalidad    string `validate:"required"`
	Telefono        string `validate:"required"`
	Direccion       string `validate:"required"`
	IDRol           string `validate:"required"`
}

var userFields = map[string]string{
	"Nombre":          "nombre",
	"Email":           "email",
	"TipoDocumento":   "tipo_documento",
	"NumeroDocumento": "numero_documento",
	"Genero":          "genero",
	"Nacionalidad":    "nacionalidad",
	"Telefono":        "telefono",
	"Direccion":       "direccion",
	"IDRol":           "id_rol",
}

var userMessages = map[string]string{
	"nombre":           "El nombre debe contener al menos 3 letras y no debe incluir números ni caracteres especiales.",
	"email":            "Ingrese un formato de correo electrónico válido.",
	"password":         "La contraseña debe tener al menos 5 caracteres.",
	"tipo_documento":   "Debe seleccionar un tipo de documento.",
	"numero_documento": "Debe ingresar un número de documento.",
	"genero":           "Debe seleccionar un género.",
	"nacionalidad":     "Debe ingresar una nacionalidad.",
	"telefono":         "Debe ingresar un número de teléfono.",
	"direccion":        "Debe ingresar una dirección.",
	"id_rol":           "Debe seleccionar un rol.",
}

// FormSummary is the one-line message that accompanies field errors.
const FormSummary = "Por favor, completa todos los campos correctamente."

type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// ValidateUser returns one message per invalid field. The password only
// matters when creating; editing leaves it to the backend.
func ValidateUser(u domain.User, creating bool) Errors {
	errs := Errors{}

	form := userForm{
		Nombre:          u.Name,
		Email:           u.Email,
		TipoDocumento:   u.DocumentType,
		NumeroDocumento: u.DocumentNumber,
		Genero:          u.Gender,
		Nacionalidad:    u.Nationality,
		Telefono:        u.Phone,
		Direccion:       u.Address,
		IDRol:           u.RoleID.String(),
	}
	if err := instance().Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs["form"] = err.Error()
			return errs
		}
		for _, fe := range fieldErrs {
			field := userFields[fe.StructField()]
			errs[field] = userMessages[field]
		}
	}

	if creating {
		if err := instance().Var(u.Password, "min=5"); err != nil {
			errs["password"] = userMessages["password"]
		}
	}
	return errs
}
