// Package scenario holds the catalogue of simulated inputs that the phone
// apps feed into the security agent.
//
// Each built-in scenario carries the transcript an app would hand over and
// the verdict recorded for it, so that the replay classifier can reproduce
// a session without network access. Scenarios from the config file are
// merged on top of the built-ins; they have no recorded verdict.
package scenario
