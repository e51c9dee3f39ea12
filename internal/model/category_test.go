package model

import (
	"errors"
	"testing"
)

// TestParseCategory tests ParseCategory against the closed set.
func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, name := range CategoryNames() {
		c, err := ParseCategory(name)
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", name, err)
		}
		if string(c) != name {
			t.Errorf("got %q, expected %q", c, name)
		}
	}

	for _, bad := range []string{"", "safe", "Malware", "OTP theft"} {
		if _, err := ParseCategory(bad); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ParseCategory(%q) = %v, expected ErrInvalidCategory", bad, err)
		}
	}
}

// TestCategoriesCount tests that exactly nine labels exist.
func TestCategoriesCount(t *testing.T) {
	t.Parallel()

	if got := len(Categories()); got != 9 {
		t.Errorf("got %d categories, expected 9", got)
	}
}

// TestIsPhishingRelated tests IsPhishingRelated.
func TestIsPhishingRelated(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		category Category
		expected bool
	}{
		{CategoryPhishingLink, true},
		{CategoryKYCFraud, true},
		{CategoryOTPTheft, true},
		{CategorySuspectedScam, true},
		{CategoryImpersonation, false},
		{CategoryFinancialFraud, false},
		{CategoryVoiceClone, false},
		{CategorySafe, false},
		{CategoryUnknown, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			t.Parallel()
			if got := tc.category.IsPhishingRelated(); got != tc.expected {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestParseAppContext tests ParseAppContext.
func TestParseAppContext(t *testing.T) {
	t.Parallel()

	for _, c := range AppContexts() {
		got, err := ParseAppContext(string(c))
		if err != nil || got != c {
			t.Errorf("ParseAppContext(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseAppContext("email"); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("got %v, expected ErrInvalidContext", err)
	}
}
