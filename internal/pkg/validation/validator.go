package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the validator behind gin's binding so that field errors
// carry JSON names and the maxbytes rule is available.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonTagName)
			_ = v.RegisterValidation("maxbytes", maxBytes)
		}
	})
}

// Struct validates obj with gin's configured validator.
func Struct(obj any) error {
	Init()
	return binding.Validator.ValidateStruct(obj)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// ToErrors converts validator errors into field -> messages. Errors that are
// not validation errors yield nil.
func ToErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		out[field] = append(out[field], formatFieldError(fe))
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "O campo " + field + " é obrigatório."
	case "email":
		return "O campo " + field + " deve ser um endereço de e-mail válido."
	case "min":
		return "O campo " + field + " deve ter pelo menos " + param + " caracteres."
	case "max":
		return "O campo " + field + " não pode ser superior a " + param + " caracteres."
	case "maxbytes":
		return "O campo " + field + " não pode ser superior a " + param + " bytes."
	default:
		return "O campo " + field + " é inválido."
	}
}
