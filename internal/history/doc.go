// Package history keeps the recent activity list of finished scans.
//
// The log is an in-memory ring that lives only as long as the process.
// Entries are returned newest first, and once the ring is full the oldest
// entry is overwritten.
package history
