// Package display maps scan state to the words and colours shown to the user.
//
// It holds the static context table (title, icon, accent colour, loading
// copy and remediation label per app context) and the status indicator
// rules. The table only affects presentation; it never influences scan
// semantics.
package display
