package session

import "github.com/nao1215/sentinel/internal/model"

// OpenOverlay expands the agent sheet. It is idempotent and never changes
// the scan status.
func (c *Controller) OpenOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.overlay.Open {
		return
	}
	c.overlay.Open = true
	c.publishLocked()
}

// Close collapses the agent sheet without clearing the verdict. After
// Timings.Close, a session that is still Complete returns to Idle and its
// verdict stays retrievable. Closing an already closed sheet is harmless.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.overlay.Open {
		c.overlay.Open = false
		c.publishLocked()
	}

	gen := c.session.Generation
	c.scheduleLocked(c.timings.Close, func() {
		if gen != c.session.Generation || c.session.Status != model.StatusComplete {
			return
		}
		c.session.Status = model.StatusIdle
		c.publishLocked()
	})
}

// ToggleProtection flips the cosmetic Active/Paused flag and returns the
// new value. It has no effect on scanning.
func (c *Controller) ToggleProtection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.overlay.Protected
	}
	c.overlay.Protected = !c.overlay.Protected
	c.publishLocked()
	return c.overlay.Protected
}
