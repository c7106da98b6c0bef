package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatal("nil error must not be a unique violation")
	}
	uniqueErr := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(uniqueErr) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	otherErr := &pgconn.PgError{Code: "23503"}
	if IsUniqueViolation(otherErr) {
		t.Fatal("foreign key violation must not count")
	}
	wrapped := fmt.Errorf("insert play: %w", uniqueErr)
	if !IsUniqueViolation(wrapped) {
		t.Fatal("expected wrapped unique violation to be detected")
	}
}
