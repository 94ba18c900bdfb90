// Package validation adapts go-playground/validator to echo and renders
// failures as one pt-BR message per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	ptBRLocale "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"

	apperrors "userapi/internal/errors"
)

// fieldMessages overrides the stock translations for specific field/tag
// pairs. %s receives the rule parameter.
var fieldMessages = map[string]string{
	"name.min":     "O nome deve ter no mínimo %s caracteres",
	"name.max":     "O nome deve ter no máximo %s caracteres",
	"password.min": "A senha deve ter no mínimo %s caracteres",
	"password.max": "A senha deve ter no máximo %s caracteres",
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
	trans     ut.Translator
}

// New builds a validator reporting fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	locale := ptBRLocale.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator(locale.Locale())
	if err := ptBRTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("register pt_BR translations: %v", err))
	}

	return &CustomValidator{validator: v, trans: trans}
}

// Validate implements echo.Validator. Rule violations are returned as a
// *errors.ValidationError listing every failing field in declaration order.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: cv.message(fe),
		})
	}
	return &apperrors.ValidationError{Fields: fields}
}

func (cv *CustomValidator) message(fe validator.FieldError) string {
	if tmpl, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Param())
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo '%s' é obrigatório", fe.Field())
	case "email":
		return "Email inválido"
	}
	return fe.Translate(cv.trans)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
