package apperrors

import (
	"errors"
	"testing"
)

func TestValidation(t *testing.T) {
	err := Validation("guildID", "must not be empty")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidation(err) {
		t.Error("IsValidation should report true")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	if ve.Field != "guildID" {
		t.Errorf("Field = %s, want guildID", ve.Field)
	}

	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation should report false for plain errors")
	}
	if IsValidation(nil) {
		t.Error("IsValidation should report false for nil")
	}
}

func TestPersist(t *testing.T) {
	inner := errors.New("connection reset")
	err := Persist("InsertCase", inner)

	if !errors.Is(err, inner) {
		t.Error("Persist should preserve the wrapped error for errors.Is")
	}

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatal("expected *PersistenceError")
	}
	if pe.Op != "InsertCase" {
		t.Errorf("Op = %s, want InsertCase", pe.Op)
	}

	if Persist("GetCase", nil) != nil {
		t.Error("Persist(op, nil) should be nil")
	}
}

func TestSentinels(t *testing.T) {
	wrapped := Persist("NextCaseNumber", ErrNotConnected)
	if !errors.Is(wrapped, ErrNotConnected) {
		t.Error("sentinel should survive wrapping")
	}
}
