package tui

import (
	"fmt"
	"time"
)

// Cosmetic feed timings.
const (
	TrafficInterval = 1500 * time.Millisecond
	TrafficKeep     = 8
	ScanLogInterval = 400 * time.Millisecond
)

// trafficEvents are the background lines of the system activity log.
var trafficEvents = []string{
	"Packet 4f:1a verified secure.",
	"Port 443 handshake established.",
	"Background task: SMS filter active.",
	"Checking URL reputation database...",
	"Domain whitelist updated.",
	"Network latency: 12ms. Connection stable.",
	"Analyzing heuristic patterns in background...",
	"Incoming data stream intercepted.",
	"SSL Certificate validated: Google Trust Services.",
	"Encryption layer: AES-256 enabled.",
	"No active threats in clipboard buffer.",
	"Sentiment analysis module loaded.",
	"Cross-referencing global fraud ledger.",
	"Monitoring input channels...",
}

// scanningMessages cycle while a scan is outstanding.
var scanningMessages = []string{
	"Initializing National Scam Database...",
	"Analyzing tone and sentiment patterns...",
	"Cross-referencing global blacklists...",
	"Checking SSL certificates and domain age...",
	"Detecting urgency keywords...",
	"Verifying OTP request legitimacy...",
	"Finalizing risk score calculation...",
}

// TrafficLog keeps the most recent activity lines.
type TrafficLog struct {
	lines []string
	keep  int
	pick  func(n int) int
}

// NewTrafficLog creates a log seeded with the first five events.
// pick chooses an event index in [0,n).
func NewTrafficLog(keep int, pick func(n int) int) *TrafficLog {
	l := &TrafficLog{keep: keep, pick: pick}
	for _, e := range trafficEvents[:5] {
		l.push(e)
	}
	return l
}

// Tick appends one timestamped random event.
func (l *TrafficLog) Tick(at time.Time) {
	e := trafficEvents[l.pick(len(trafficEvents))]
	l.push(fmt.Sprintf("[%s] %s", at.Format("15:04:05"), e))
}

func (l *TrafficLog) push(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > l.keep {
		l.lines = l.lines[len(l.lines)-l.keep:]
	}
}

// Lines returns the kept lines, oldest first.
func (l *TrafficLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// scanningLines returns the messages shown at step idx, newest first.
func scanningLines(idx int) []string {
	idx %= len(scanningMessages)
	out := make([]string, 0, idx+1)
	for i := idx; i >= 0; i-- {
		out = append(out, scanningMessages[i])
	}
	return out
}
