package services

import (
	"errors"
	"testing"

	"legaldoc/models"
)

func TestLoadRejectsNonPDFBytes(t *testing.T) {
	t.Parallel()
	loader := NewPDFLoader()

	_, err := loader.Load([]byte("this is not a pdf at all"))
	if !errors.Is(err, models.ErrLoad) {
		t.Fatalf("error = %v, want ErrLoad", err)
	}
}

func TestLoadRejectsEmptyBytes(t *testing.T) {
	t.Parallel()
	loader := NewPDFLoader()

	_, err := loader.Load(nil)
	if !errors.Is(err, models.ErrLoad) {
		t.Fatalf("error = %v, want ErrLoad", err)
	}
}
