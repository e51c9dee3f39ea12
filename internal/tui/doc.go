// Package tui is the interactive phone simulator.
//
// It renders a phone with an app dock, the screen of the selected app and
// the security agent sheet. Every state change comes from a
// session.Controller subscription; the model never mutates scan state on
// its own. The traffic log and the scanning log are cosmetic.
package tui
