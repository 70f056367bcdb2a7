package validator

import (
	"errors"
	"testing"
)

type sample struct {
	Name string `validate:"required"`
}

func TestValidateStructRejectsMissingField(t *testing.T) {
	v := New()

	err := v.ValidateStruct(sample{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if got := Describe(err); got != "Name is required" {
		t.Errorf("expected 'Name is required', got %q", got)
	}
}

func TestValidateStructAcceptsFilledField(t *testing.T) {
	v := New()

	if err := v.ValidateStruct(sample{Name: "ok"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestDescribePassesThroughOtherErrors(t *testing.T) {
	if got := Describe(errors.New("boom")); got != "boom" {
		t.Errorf("expected 'boom', got %q", got)
	}
}
