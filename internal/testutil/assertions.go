package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares got, rounded to places, with the decimal literal want.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string, places int32) {
	t.Helper()

	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("invalid expected decimal %q: %v", want, err)
	}
	if !got.Round(places).Equal(expected.Round(places)) {
		t.Errorf("expected %s, got %s", expected.StringFixed(places), got.StringFixed(places))
	}
}
