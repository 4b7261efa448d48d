package validation

import (
	"testing"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
)

type sampleForm struct {
	Name     string `json:"name" validate:"required"`
	Discount *int   `json:"discount" validate:"required,gte=0,lte=100"`
	Order    string `json:"order" validate:"omitempty,oneof=asc desc"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	over := 150
	err := Struct(&sampleForm{Discount: &over, Order: "up"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["discount"] != "must be at most 100" {
		t.Fatalf("unexpected discount detail %q", details["discount"])
	}
	if details["order"] != "must be one of asc desc" {
		t.Fatalf("unexpected order detail %q", details["order"])
	}
}

func TestStructPassesValidForm(t *testing.T) {
	d := 10
	if err := Struct(&sampleForm{Name: "Tee", Discount: &d}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMissingPointerIsRequired(t *testing.T) {
	err := Struct(&sampleForm{Name: "Tee"})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected error")
	}
	if typed.Details().(map[string]string)["discount"] != "is required" {
		t.Fatalf("expected discount required, got %v", typed.Details())
	}
}

func TestField(t *testing.T) {
	err := Field("size", "must be one of S M L XL")
	if err.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Details().(map[string]string)["size"] == "" {
		t.Fatalf("expected size detail")
	}
}
