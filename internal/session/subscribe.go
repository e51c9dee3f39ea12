package session

import (
	"context"
	"sync"

	"github.com/nao1215/sentinel/internal/model"
)

// subscriber is one change feed. The channel holds at most one snapshot;
// a newer snapshot replaces an unread one.
type subscriber struct {
	ch   chan Snapshot
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// send delivers snap, dropping an unread older snapshot if necessary.
// Only the publisher sends, and it holds the controller lock, so there is
// exactly one writer per channel.
func (s *subscriber) send(snap Snapshot) {
	select {
	case s.ch <- snap:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- snap:
	default:
	}
}

// Subscribe returns a feed of snapshots starting with the current one.
// Slow readers miss intermediate snapshots but always see the latest.
// The returned cancel function releases the subscription and closes the
// channel; the channel is also closed by Shutdown.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := &subscriber{ch: make(chan Snapshot, 1)}
	if c.closed {
		sub.close()
		return sub.ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = sub
	sub.send(c.snapshotLocked())

	return sub.ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if s, ok := c.subs[id]; ok {
			delete(c.subs, id)
			s.close()
		}
	}
}

// publishLocked bumps the version and fans the new snapshot out.
func (c *Controller) publishLocked() {
	c.version++
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, sub := range c.subs {
		sub.send(snap)
	}
}

// Await blocks until the scan of generation gen has a settled outcome
// (Complete or Error) and returns that snapshot. It returns ErrSuperseded
// if a newer scan starts first and ErrShutdown if the controller shuts down.
func (c *Controller) Await(ctx context.Context, gen uint64) (Snapshot, error) {
	ch, cancel := c.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case snap, ok := <-ch:
			if !ok {
				return Snapshot{}, ErrShutdown
			}
			s := snap.Session
			switch {
			case s.Generation > gen:
				return snap, ErrSuperseded
			case s.Generation == gen && (s.Status == model.StatusComplete || s.Status == model.StatusError):
				return snap, nil
			}
		}
	}
}
