// Package main provides the entry point for the Sentinel CLI.
//
// Sentinel simulates a phone with an on-device security agent. Text from a
// simulated app (a call transcript, a payment request, an SMS, a browser
// page, a QR code) is sent to a classifier, and the verdict is shown with a
// suggested protective action.
//
// Usage:
//
//	sentinel phone
//	sentinel scan "Your KYC is pending, click here"
//	sentinel scan --all --markdown
//
// See --help for all available options.
package main

// main is the entry point for Sentinel.
func main() {
	Execute()
}
