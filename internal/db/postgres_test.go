package db

import "testing"

func TestOpen_EmptyDSN(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
