// Package batch runs several scans concurrently.
//
// Every job gets its own session controller from a factory, so scans never
// supersede each other. Concurrency is bounded with errgroup.SetLimit.
package batch
