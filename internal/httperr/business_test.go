package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusiness_MatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("time_conflict"))

	if !IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict to match")
	}
	if IsBusiness(err, "invalid_slot") {
		t.Fatalf("unexpected match on invalid_slot")
	}
	if got := BusinessCode(err); got != "time_conflict" {
		t.Fatalf("code = %q, want %q", got, "time_conflict")
	}
	if got := BusinessCode(errors.New("boom")); got != "" {
		t.Fatalf("code = %q, want empty", got)
	}
}

func TestIsExclusionConflict(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	if !IsExclusionConflict(err) {
		t.Fatalf("expected exclusion conflict")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("unique violation reported as exclusion conflict")
	}
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected unique violation")
	}
}
