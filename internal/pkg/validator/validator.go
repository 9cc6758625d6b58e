package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/places-finder/internal/domain"
)

// TagOSMFilter - тег для строк вида "namespace:value"
const TagOSMFilter = "osmfilter"

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation(TagOSMFilter, validateOSMFilter); err != nil {
		panic(err)
	}
}

func validateOSMFilter(fl validator.FieldLevel) bool {
	_, err := domain.ParseFilter(fl.Field().String())
	return err == nil
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// Details превращает ошибки валидации в map поле -> нарушенное правило
func Details(err error) map[string]interface{} {
	details := make(map[string]interface{})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["error"] = err.Error()
		return details
	}

	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[fe.Namespace()] = rule
	}
	return details
}
