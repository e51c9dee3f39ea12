package history

import (
	"sync"

	"github.com/nao1215/sentinel/internal/model"
)

// DefaultCapacity is the number of entries shown on the idle dashboard.
const DefaultCapacity = 8

// Log is a fixed size ring of history items.
// It satisfies session.Recorder and is safe for concurrent use.
type Log struct {
	mu    sync.RWMutex
	items []model.HistoryItem
	next  int
	count int
}

// NewLog creates a log holding at most capacity items.
// A capacity below one is replaced with DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{items: make([]model.HistoryItem, capacity)}
}

// Add stores item, evicting the oldest entry when the log is full.
func (l *Log) Add(item model.HistoryItem) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items[l.next] = cloneItem(item)
	l.next = (l.next + 1) % len(l.items)
	if l.count < len(l.items) {
		l.count++
	}
}

// Recent returns up to n items, newest first. A non-positive n returns
// every item.
func (l *Log) Recent(n int) []model.HistoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > l.count {
		n = l.count
	}
	out := make([]model.HistoryItem, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.items)) % len(l.items)
		out = append(out, cloneItem(l.items[idx]))
	}
	return out
}

// All returns every item, newest first.
func (l *Log) All() []model.HistoryItem {
	return l.Recent(0)
}

// Latest returns the newest item, if any.
func (l *Log) Latest() (model.HistoryItem, bool) {
	items := l.Recent(1)
	if len(items) == 0 {
		return model.HistoryItem{}, false
	}
	return items[0], true
}

// Find returns the item with the given ID.
func (l *Log) Find(id string) (model.HistoryItem, bool) {
	for _, item := range l.All() {
		if item.ID == id {
			return item, true
		}
	}
	return model.HistoryItem{}, false
}

// Len returns the number of stored items.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Cap returns the capacity of the ring.
func (l *Log) Cap() int {
	return len(l.items)
}

// Stats counts stored items per severity tier.
func (l *Log) Stats() map[model.Severity]int {
	stats := make(map[model.Severity]int, 3)
	for _, item := range l.All() {
		stats[item.Severity()]++
	}
	return stats
}

// Clear removes every item.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.items)
	l.next = 0
	l.count = 0
}

func cloneItem(item model.HistoryItem) model.HistoryItem {
	item.AnalysisResult = item.AnalysisResult.Clone()
	return item
}
