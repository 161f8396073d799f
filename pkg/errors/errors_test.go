package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("course", "0100")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if !strings.Contains(err.Error(), "0100") {
		t.Errorf("error message should contain the ID: %s", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("credits", -1.0, "must be non-negative")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should return true")
	}
}

func TestMissingInputError(t *testing.T) {
	err := NewMissingInputError("sources/shs.json", "extract")
	if !IsMissingInput(err) {
		t.Error("IsMissingInput should return true")
	}
	msg := err.Error()
	if !strings.Contains(msg, "sources/shs.json") || !strings.Contains(msg, "extract") {
		t.Errorf("message should name the file and stage: %s", msg)
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapIO("read", "catalog.json", nil) != nil {
		t.Error("wrapping nil should return nil")
	}

	inner := errors.New("boom")
	err := WrapIO("read", "catalog.json", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should unwrap to the inner error")
	}

	err = WrapParse("json", "sources/shs.json", inner)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatal("expected a ParseError")
	}
	if parseErr.File != "sources/shs.json" {
		t.Errorf("unexpected file: %s", parseErr.File)
	}
}

func TestMergeError(t *testing.T) {
	err := NewMergeError("shs.json", "catalog", []string{"0100A", "0100B"}, nil)
	if !strings.Contains(err.Error(), "0100A") {
		t.Errorf("merge conflict message should list conflicting codes: %s", err.Error())
	}
}
