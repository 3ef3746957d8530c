// Package validate provides struct-tag validation for form input before it
// reaches the network layer.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	digits=N            exactly N decimal digits (after stripping spaces)
//	digits_between=a;b  between a and b decimal digits
//	regex=pattern       value must match the regex (avoid commas in pattern)
//	in=a;b;c            value must be one of the listed items
//	confirmed           value must equal the sibling field <Field>Confirmation
//
// Example:
//
//	type SignUpInput struct {
//	    Name     string `json:"name"     validate:"required,min=2,max=100"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Phone    string `json:"phone"    validate:"nullable,digits_between=7;15"`
//	    Password string `json:"password" validate:"required,min=6"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, field.Name, value, rv); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether a Struct result contains any failures.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return field.Name
	}
	return name
}

func hasRule(rules []string, want string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == want {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func applyRule(rule, name, goName string, value, parent reflect.Value) string {
	arg := ""
	if idx := strings.IndexByte(rule, '='); idx > 0 {
		arg = rule[idx+1:]
		rule = rule[:idx]
	}

	switch rule {
	case "required":
		if isEmpty(value) {
			return fmt.Sprintf("%s is required", name)
		}

	case "email":
		if !emailRe.MatchString(asString(value)) {
			return fmt.Sprintf("%s must be a valid email address", name)
		}

	case "numeric":
		if _, ok := asFloat(value); !ok {
			return fmt.Sprintf("%s must be a number", name)
		}

	case "min":
		limit, _ := strconv.ParseFloat(arg, 64)
		if value.Kind() == reflect.String {
			if float64(len(value.String())) < limit {
				return fmt.Sprintf("%s must be at least %s characters", name, arg)
			}
		} else if f, ok := asFloat(value); ok && f < limit {
			return fmt.Sprintf("%s must be at least %s", name, arg)
		}

	case "max":
		limit, _ := strconv.ParseFloat(arg, 64)
		if value.Kind() == reflect.String {
			if float64(len(value.String())) > limit {
				return fmt.Sprintf("%s must be at most %s characters", name, arg)
			}
		} else if f, ok := asFloat(value); ok && f > limit {
			return fmt.Sprintf("%s must be at most %s", name, arg)
		}

	case "digits":
		want, _ := strconv.Atoi(arg)
		if digitCount(asString(value)) != want {
			return fmt.Sprintf("%s must be %s digits", name, arg)
		}

	case "digits_between":
		parts := strings.SplitN(arg, ";", 2)
		if len(parts) == 2 {
			lo, _ := strconv.Atoi(parts[0])
			hi, _ := strconv.Atoi(parts[1])
			n := digitCount(asString(value))
			if n < lo || n > hi {
				return fmt.Sprintf("%s must be between %d and %d digits", name, lo, hi)
			}
		}

	case "regex":
		re, err := regexp.Compile(arg)
		if err != nil || !re.MatchString(asString(value)) {
			return fmt.Sprintf("%s has an invalid format", name)
		}

	case "in":
		allowed := strings.Split(arg, ";")
		got := asString(value)
		for _, a := range allowed {
			if got == a {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(arg, ";", ", "))

	case "confirmed":
		sibling := parent.FieldByName(goName + "Confirmation")
		if !sibling.IsValid() || sibling.String() != value.String() {
			return fmt.Sprintf("%s confirmation does not match", name)
		}
	}

	return ""
}
