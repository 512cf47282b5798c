package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// validate is gin's binding engine with the weld rules registered, so
// ShouldBindJSON and direct service calls run the same checks.
var validate = newValidate()

// patchRules holds the CreateWeldDTO binding rules per JSON field without
// required/omitempty; PATCH checks present values against them.
var patchRules = bindingRules(reflect.TypeOf(models.CreateWeldDTO{}))

func newValidate() *validator.Validate {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New()
		v.SetTagName("binding")
	}
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("weld_date", isWeldDate); err != nil {
		panic(err)
	}
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func bindingRules(t reflect.Type) map[string]string {
	rules := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		var kept []string
		for _, r := range strings.Split(f.Tag.Get("binding"), ",") {
			if r != "" && r != "required" && r != "omitempty" {
				kept = append(kept, r)
			}
		}
		if len(kept) > 0 {
			rules[jsonName(f)] = strings.Join(kept, ",")
		}
	}
	return rules
}

// isWeldDate accepts YYYY-MM-DD or RFC 3339. An empty string is not a date.
func isWeldDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func message(fe validator.FieldError) string {
	options := strings.ReplaceAll(fe.Param(), " ", ", ")
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty"
	case "gte":
		return "must not be less than " + fe.Param()
	case "oneof":
		if strings.HasSuffix(fe.Field(), "]") {
			return "each value must be one of " + options
		}
		return "must be one of " + options
	case "weld_date":
		return "must be a date in YYYY-MM-DD or RFC 3339 format"
	}
	return "failed rule " + fe.Tag()
}

// BindingError converts a validator failure from gin binding into a
// ValidationError. Any other error yields nil.
func BindingError(err error) *ValidationError {
	v := &ValidationError{}
	if !v.collect("", err) {
		return nil
	}
	return v
}

// collect adds every validator failure in err under field, or under the
// failing struct field when field is empty.
func (e *ValidationError) collect(field string, err error) bool {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return false
	}
	for _, fe := range fes {
		name := field
		if name == "" {
			name, _, _ = strings.Cut(fe.Field(), "[")
		}
		e.addOnce(name, message(fe))
	}
	return true
}

// check validates a present PATCH value with the create rules for field.
func (e *ValidationError) check(field string, value any) {
	rule, ok := patchRules[field]
	if !ok {
		return
	}
	if err := validate.Var(value, rule); err != nil {
		e.collect(field, err)
	}
}

func (e *ValidationError) notNull(field string) {
	e.add(field, "must not be null")
}

// dedupeMethods keeps the first occurrence of each method.
func dedupeMethods(ms []models.TestMethod) []models.TestMethod {
	out := make([]models.TestMethod, 0, len(ms))
	seen := make(map[models.TestMethod]bool, len(ms))
	for _, m := range ms {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
