package game

import (
	"log"
	"strings"
	"sync"
	"time"
)

// Options tunes per-room timing. Zero values fall back to production defaults;
// tests inject short durations.
type Options struct {
	TurnSeconds  int
	TickInterval time.Duration
	ReapAfter    time.Duration
}

func (o Options) withDefaults() Options {
	if o.TurnSeconds == 0 {
		o.TurnSeconds = 60
	}
	if o.TickInterval == 0 {
		o.TickInterval = time.Second
	}
	if o.ReapAfter == 0 {
		o.ReapAfter = 10 * time.Minute
	}
	return o
}

// Registry maps room codes to rooms. Rooms are created lazily on first join
// and reaped once nobody has been connected for Options.ReapAfter.
type Registry struct {
	opts        Options
	broadcaster Broadcaster
	recorder    Recorder

	mu    sync.RWMutex
	rooms map[string]*Room

	stop chan struct{}
	done chan struct{}
}

func NewRegistry(opts Options, broadcaster Broadcaster, recorder Recorder) *Registry {
	return &Registry{
		opts:        opts.withDefaults(),
		broadcaster: broadcaster,
		recorder:    recorder,
		rooms:       make(map[string]*Room),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// NormalizeCode canonicalizes an externally supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetOrCreate returns the room for the code, creating a fresh lobby when the
// code has not been seen. Codes are case-normalized.
func (reg *Registry) GetOrCreate(code string) *Room {
	code = NormalizeCode(code)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		room = newRoom(code, reg.opts, reg.broadcaster, reg.recorder)
		reg.rooms[code] = room
		log.Printf("Created room %s (turnTeam=%d)", code, room.turnTeam)
	}
	return room
}

// Get returns the room for the code, or nil when it does not exist.
func (reg *Registry) Get(code string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[NormalizeCode(code)]
}

// Remove drops a room and stops its countdown.
func (reg *Registry) Remove(code string) {
	code = NormalizeCode(code)

	reg.mu.Lock()
	room, ok := reg.rooms[code]
	if ok {
		delete(reg.rooms, code)
	}
	reg.mu.Unlock()

	if ok {
		room.shutdown()
	}
}

// Run reaps abandoned rooms until Stop is called.
func (reg *Registry) Run() {
	defer close(reg.done)

	interval := reg.opts.ReapAfter / 4
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-reg.stop:
			return
		case now := <-ticker.C:
			reg.reap(now)
		}
	}
}

// Stop shuts down the reaper and every remaining room.
func (reg *Registry) Stop() {
	close(reg.stop)
	<-reg.done

	reg.mu.Lock()
	rooms := reg.rooms
	reg.rooms = make(map[string]*Room)
	reg.mu.Unlock()

	for _, room := range rooms {
		room.shutdown()
	}
}

func (reg *Registry) reap(now time.Time) {
	reg.mu.RLock()
	var stale []string
	for code, room := range reg.rooms {
		if idle := room.idleFor(now); idle >= reg.opts.ReapAfter {
			stale = append(stale, code)
		}
	}
	reg.mu.RUnlock()

	for _, code := range stale {
		reg.Remove(code)
		log.Printf("Reaped idle room %s", code)
	}
}
