package validators

import (
	"testing"
	"time"
)

func TestIsPhone(t *testing.T) {
	for _, ok := range []string{"+212 6 12 34 56 78", "0612345678", "06.12.34.56.78"} {
		if !IsPhone(ok) {
			t.Fatalf("IsPhone(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "12345", "06-12-ab-56", "06+12345678"} {
		if IsPhone(bad) {
			t.Fatalf("IsPhone(%q) = true", bad)
		}
	}
}

func TestIsBirthDate(t *testing.T) {
	today := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	if !IsBirthDate("1990-04-12", today) || !IsBirthDate("2026-10-16", today) {
		t.Fatalf("valid birth date rejected")
	}
	if IsBirthDate("2026-10-17", today) || IsBirthDate("12/04/1990", today) {
		t.Fatalf("invalid birth date accepted")
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Fatima   Zahra "); got != "Fatima Zahra" {
		t.Fatalf("NormalizeName = %q", got)
	}
}

func TestEmailDomain(t *testing.T) {
	if got := emailDomain("Salma@Clinic.MA"); got != "clinic.ma" {
		t.Fatalf("emailDomain = %q", got)
	}

	check := EmailDomainChecker(time.Second)
	for _, bad := range []string{"", "no-at-sign", "trailing@", "@leading"} {
		if check(bad) {
			t.Fatalf("check(%q) = true", bad)
		}
	}
}
