// Package transport builds the HTTP client used to reach the classifier API.
//
// By default the client connects directly. An optional SOCKS5 proxy can
// route classifier traffic through a corporate egress or an SSH tunnel.
// Every request carries the configured User-Agent.
package transport
