package model

import "fmt"

// AppContext identifies the simulated source surface a scan originated from.
// It selects display copy and the remediation label only.
type AppContext string

// Simulated source surfaces.
const (
	ContextMessages  AppContext = "messages"
	ContextBrowser   AppContext = "browser"
	ContextPhone     AppContext = "phone"
	ContextWallet    AppContext = "wallet"
	ContextQR        AppContext = "qr"
	ContextDashboard AppContext = "dashboard"
)

// dockOrder is the order in which the simulated apps appear on the phone dock.
var dockOrder = []AppContext{
	ContextDashboard,
	ContextMessages,
	ContextPhone,
	ContextWallet,
	ContextBrowser,
	ContextQR,
}

// AppContexts returns every context in dock order.
func AppContexts() []AppContext {
	out := make([]AppContext, len(dockOrder))
	copy(out, dockOrder)
	return out
}

// ParseAppContext validates s against the known contexts.
func ParseAppContext(s string) (AppContext, error) {
	for _, c := range dockOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContext, s)
}
