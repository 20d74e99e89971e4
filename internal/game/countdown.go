package game

import "time"

// countdown is the handle for one live turn timer. At most one exists per
// room; starting a new one cancels the previous one first.
type countdown struct {
	stop chan struct{}
}

// startCountdownLocked replaces any live countdown with a fresh one.
// Caller must hold r.mu.
func (r *Room) startCountdownLocked() {
	r.stopCountdownLocked()
	c := &countdown{stop: make(chan struct{})}
	r.countdown = c
	go r.runCountdown(c)
}

// stopCountdownLocked cancels the live countdown, if any. Caller must hold r.mu.
func (r *Room) stopCountdownLocked() {
	if r.countdown != nil {
		close(r.countdown.stop)
		r.countdown = nil
	}
}

func (r *Room) runCountdown(c *countdown) {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !r.tick(c) {
				return
			}
		}
	}
}

// tick applies one countdown step and reports whether the countdown is still
// live. A stale handle (replaced or cancelled between the ticker firing and
// the lock being acquired) does nothing. Expiry runs through the same endTurn
// transition as every other turn-end cause.
func (r *Room) tick(c *countdown) bool {
	r.mu.Lock()
	if r.countdown != c {
		r.mu.Unlock()
		return false
	}

	if r.timer > 0 {
		r.timer--
		remaining := r.timer
		r.mu.Unlock()
		r.broadcaster.TimerUpdate(r.code, remaining)
		return true
	}

	r.endTurnLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.broadcaster.RoomUpdate(r.code, snap)
	return false
}
