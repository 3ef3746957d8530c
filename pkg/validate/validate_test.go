package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signUpForm struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=100"`
	Email                string `json:"email"                 validate:"required,email"`
	Phone                string `json:"phone"                 validate:"nullable,digits_between=7;15"`
	Password             string `json:"password"              validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

func validForm() signUpForm {
	return signUpForm{
		Name:                 "Ada Lovelace",
		Email:                "ada@example.com",
		Phone:                "08012345678",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
}

func TestValidFormPasses(t *testing.T) {
	errs := Struct(validForm())
	assert.False(t, HasErrors(errs), "got %v", errs)
}

func TestRequired(t *testing.T) {
	form := validForm()
	form.Name = "   "

	errs := Struct(form)
	assert.Contains(t, errs, "name")
}

func TestEmail(t *testing.T) {
	form := validForm()
	form.Email = "not-an-email"

	errs := Struct(form)
	assert.Contains(t, errs, "email")
}

func TestNullableSkipsEmpty(t *testing.T) {
	form := validForm()
	form.Phone = ""

	errs := Struct(form)
	assert.NotContains(t, errs, "phone")
}

func TestNullableStillChecksPresent(t *testing.T) {
	form := validForm()
	form.Phone = "123"

	errs := Struct(form)
	assert.Contains(t, errs, "phone")
}

func TestConfirmedMismatch(t *testing.T) {
	form := validForm()
	form.PasswordConfirmation = "different"

	errs := Struct(form)
	assert.Contains(t, errs, "password")
}

func TestFirstFailingRuleWins(t *testing.T) {
	form := validForm()
	form.Password = ""

	errs := Struct(form)
	assert.Equal(t, "password is required", errs["password"])
}

func TestErrorsKeyedByJSONName(t *testing.T) {
	form := validForm()
	form.Email = ""

	errs := Struct(form)
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "Email")
}

type cardForm struct {
	Number string `json:"number" validate:"required,digits=16"`
	Expiry string `json:"expiry" validate:"required,regex=^\\d{2}/\\d{2}$"`
	CVV    string `json:"cvv"    validate:"required,digits_between=3;4"`
}

func TestCardDigits(t *testing.T) {
	errs := Struct(cardForm{Number: "4242 4242 4242 4242", Expiry: "12/27", CVV: "123"})
	assert.False(t, HasErrors(errs), "spaces don't count as digits: %v", errs)

	errs = Struct(cardForm{Number: "4242", Expiry: "12/27", CVV: "123"})
	assert.Contains(t, errs, "number")
}

func TestCardExpiryFormat(t *testing.T) {
	errs := Struct(cardForm{Number: "4242424242424242", Expiry: "December", CVV: "123"})
	assert.Contains(t, errs, "expiry")
}

func TestCardCVVRange(t *testing.T) {
	for cvv, ok := range map[string]bool{"123": true, "1234": true, "12": false, "12345": false} {
		errs := Struct(cardForm{Number: "4242424242424242", Expiry: "01/30", CVV: cvv})
		if ok {
			assert.NotContains(t, errs, "cvv", "cvv %q", cvv)
		} else {
			assert.Contains(t, errs, "cvv", "cvv %q", cvv)
		}
	}
}

type numberForm struct {
	Price float64 `json:"price" validate:"numeric,min=0"`
}

func TestNumericMin(t *testing.T) {
	assert.False(t, HasErrors(Struct(numberForm{Price: 0})), "zero is a legitimate price")
	assert.True(t, HasErrors(Struct(numberForm{Price: -1})))
}
