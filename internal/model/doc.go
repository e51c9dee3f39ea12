// Package model defines the core data structures used throughout sentinel.
//
// This package contains the following main types:
//   - AnalysisResult: The structured verdict returned by the classifier
//   - ScanSession: The in-memory state of the current scan
//   - OverlayState: Whether the agent sheet is expanded, paused or busy
//   - HistoryItem: A finished scan kept for the recent activity list
//   - ScanReport: The printable artefact of one finished scan
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The classifier, session, report and tui packages all need these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON. AnalysisResult uses the
// exact camelCase field names of the classifier response contract.
package model
