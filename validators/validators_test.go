package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type passwordForm struct {
	Password                string `validate:"required"`
	PasswordNew             string `validate:"required,min=6"`
	PasswordNewConfirmation string `validate:"required,eqfield=PasswordNew"`
}

func TestValidateFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&passwordForm{
		Password:                "current",
		PasswordNew:             "tiny",
		PasswordNewConfirmation: "different",
	})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", he.Code)
	}
	fields, ok := he.Message.(map[string]string)
	if !ok {
		t.Fatalf("expected field map, got %T", he.Message)
	}
	if fields["passwordnew"] != "must be at least 6 characters" {
		t.Fatalf("unexpected message for short password: %q", fields["passwordnew"])
	}
	if fields["passwordnewconfirmation"] != "does not match" {
		t.Fatalf("unexpected message for mismatch: %q", fields["passwordnewconfirmation"])
	}
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&passwordForm{
		Password:                "current",
		PasswordNew:             "longenough",
		PasswordNewConfirmation: "longenough",
	})
	if err != nil {
		t.Fatalf("expected valid form to pass, got %v", err)
	}
}
