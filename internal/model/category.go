package model

import "fmt"

// Category is the threat class assigned by the classifier.
// The set is closed: the response schema only allows these nine labels.
type Category string

// The nine labels accepted in a classifier response.
const (
	CategoryImpersonation  Category = "Impersonation"
	CategoryKYCFraud       Category = "KYC Fraud"
	CategoryOTPTheft       Category = "OTP Theft"
	CategoryPhishingLink   Category = "Phishing Link"
	CategoryUnknown        Category = "Unknown"
	CategorySafe           Category = "Safe"
	CategorySuspectedScam  Category = "Suspected Scam"
	CategoryFinancialFraud Category = "Financial Fraud"
	CategoryVoiceClone     Category = "Voice Clone"
)

// allCategories keeps the schema order, which is also the enum order sent
// to the classifier.
var allCategories = []Category{
	CategoryImpersonation,
	CategoryKYCFraud,
	CategoryOTPTheft,
	CategoryPhishingLink,
	CategoryUnknown,
	CategorySafe,
	CategorySuspectedScam,
	CategoryFinancialFraud,
	CategoryVoiceClone,
}

// Categories returns every valid category in schema order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// CategoryNames returns every valid category as plain strings.
func CategoryNames() []string {
	out := make([]string, len(allCategories))
	for i, c := range allCategories {
		out[i] = string(c)
	}
	return out
}

// ParseCategory validates s against the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is one of the nine labels.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// IsPhishingRelated reports whether the category describes credential or
// link based phishing.
func (c Category) IsPhishingRelated() bool {
	switch c {
	case CategoryPhishingLink, CategoryKYCFraud, CategoryOTPTheft, CategorySuspectedScam:
		return true
	default:
		return false
	}
}
