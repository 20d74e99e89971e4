package game

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/partydeck/monikers-server/internal/domain"
)

// Room owns all authoritative state for one game session. A single mutex
// serializes every mutation, including ticks from the countdown goroutine,
// so handlers and timer expiry never interleave.
type Room struct {
	code string

	mu             sync.Mutex
	players        []*Player
	phase          Phase
	deck           deck
	allCards       []domain.Card
	currentCard    *domain.Card
	round          int
	team1Score     int
	team2Score     int
	turnTeam       int
	turnIndex      int
	timer          int
	timerActive    bool
	activePlayerID string
	submitted      []string
	countdown      *countdown
	idleSince      time.Time

	turnSeconds  int
	tickInterval time.Duration
	broadcaster  Broadcaster
	recorder     Recorder
}

func newRoom(code string, opts Options, broadcaster Broadcaster, recorder Recorder) *Room {
	return &Room{
		code:         code,
		phase:        PhaseLobby,
		round:        1,
		turnTeam:     1 + rand.Intn(2),
		timer:        opts.TurnSeconds,
		idleSince:    time.Now(),
		turnSeconds:  opts.TurnSeconds,
		tickInterval: opts.TickInterval,
		broadcaster:  broadcaster,
		recorder:     recorder,
	}
}

// Code returns the room's normalized code.
func (r *Room) Code() string {
	return r.code
}

// Join adds a player, or rebinds an existing one when the stable playerID has
// been seen before. Reconnection keeps the player's team. Join never fails.
func (r *Room) Join(name, playerID, connectionID string) {
	r.mu.Lock()
	if p := r.findByPlayerIDLocked(playerID); p != nil {
		p.ConnectionID = connectionID
		p.Name = name
		p.Connected = true
	} else {
		team1, team2 := r.teamCountsLocked()
		team := 1
		if team1 > team2 {
			team = 2
		}
		r.players = append(r.players, &Player{
			ConnectionID: connectionID,
			PlayerID:     playerID,
			Name:         name,
			Team:         team,
			Connected:    true,
		})
	}
	r.updateIdleLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// SwitchTeam flips the team of the player bound to the given connection.
// No-op when the connection has no matching player.
func (r *Room) SwitchTeam(connectionID string) {
	r.mu.Lock()
	p := r.findByConnectionLocked(connectionID)
	if p == nil {
		r.mu.Unlock()
		return
	}
	if p.Team == 1 {
		p.Team = 2
	} else {
		p.Team = 1
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// StartDrafting moves the room from LOBBY to DRAFTING once at least two
// players are present. Phases never move backwards, so this is a no-op
// anywhere past the lobby.
func (r *Room) StartDrafting() {
	r.mu.Lock()
	if r.phase != PhaseLobby || len(r.players) < 2 {
		r.mu.Unlock()
		return
	}
	r.phase = PhaseDrafting
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// SubmitDraft records a player's draft and merges the selected cards into the
// shared deck, deduplicating by card id (first submission of an id wins).
// When every player has submitted and the deck is non-empty, the full pool is
// snapshotted into allCards, the deck is shuffled and the game begins.
// A broadcast always follows, even when nothing changed.
func (r *Room) SubmitDraft(playerID string, cards []domain.Card) {
	r.mu.Lock()
	if r.phase == PhaseDrafting {
		if !containsString(r.submitted, playerID) {
			r.submitted = append(r.submitted, playerID)
		}
		for _, card := range cards {
			if card.ID == "" || r.deck.contains(card.ID) {
				continue
			}
			r.deck = append(r.deck, card)
		}
		if len(r.submitted) >= len(r.players) && len(r.deck) > 0 {
			r.allCards = append([]domain.Card(nil), r.deck...)
			r.phase = PhaseGame
			r.deck.shuffle()
		}
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// StartTurn begins the countdown for the current team's clue-giver. Only the
// computed active player may start it, and only while no countdown is live.
func (r *Room) StartTurn(connectionID string) {
	r.mu.Lock()
	if r.phase != PhaseGame || r.timerActive {
		r.mu.Unlock()
		return
	}
	teamPlayers := r.teamPlayersLocked(r.turnTeam)
	if len(teamPlayers) == 0 {
		r.mu.Unlock()
		return
	}
	active := teamPlayers[r.turnIndex%len(teamPlayers)]
	if active.ConnectionID != connectionID {
		r.mu.Unlock()
		return
	}

	r.activePlayerID = active.PlayerID
	r.timerActive = true
	r.timer = r.turnSeconds
	r.startCountdownLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// DrawCard pops the next card into play. Requires a running turn, no card
// already in play and a non-empty deck.
func (r *Room) DrawCard() {
	r.mu.Lock()
	if !r.timerActive || r.currentCard != nil {
		r.mu.Unlock()
		return
	}
	card, ok := r.deck.draw()
	if !ok {
		r.mu.Unlock()
		return
	}
	r.currentCard = &card
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// PassCard returns the in-play card to the front of the deck so it is drawn
// last among the currently queued cards.
func (r *Room) PassCard() {
	r.mu.Lock()
	if r.currentCard == nil {
		r.mu.Unlock()
		return
	}
	r.deck.requeue(*r.currentCard)
	r.currentCard = nil
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// ScoreCard awards the in-play card to a team. Emptying the deck ends the
// round: rounds 1 and 2 reseed the deck from allCards and hand the opening
// turn to the trailing team; round 3 ends the game.
func (r *Room) ScoreCard(team int) {
	r.mu.Lock()
	if r.phase != PhaseGame || r.currentCard == nil || (team != 1 && team != 2) {
		r.mu.Unlock()
		return
	}

	if team == 1 {
		r.team1Score++
	} else {
		r.team2Score++
	}
	r.currentCard = nil

	var record *domain.MatchRecord
	if len(r.deck) == 0 {
		r.stopCountdownLocked()
		r.timerActive = false
		r.activePlayerID = ""

		if r.round < 3 {
			r.round++
			r.deck = shuffled(r.allCards)
			switch {
			case r.team1Score > r.team2Score:
				r.turnTeam = 2
			case r.team2Score > r.team1Score:
				r.turnTeam = 1
			default:
				r.turnTeam = 1 + rand.Intn(2)
			}
			r.turnIndex = 0
		} else {
			r.phase = PhaseGameOver
			record = r.matchRecordLocked()
		}
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
	if record != nil && r.recorder != nil {
		r.recorder.MatchCompleted(record)
	}
}

// Leave removes the player bound to the given connection. This is the only
// path that removes a player; transport disconnects merely flag the player.
func (r *Room) Leave(connectionID string) {
	r.mu.Lock()
	for i, p := range r.players {
		if p.ConnectionID == connectionID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	r.updateIdleLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// HandleDisconnect marks the player's connection as down without removing the
// player, so a later join with the same playerID restores the seat.
func (r *Room) HandleDisconnect(connectionID string) {
	r.mu.Lock()
	if p := r.findByConnectionLocked(connectionID); p != nil {
		p.Connected = false
	}
	r.updateIdleLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.broadcaster.RoomUpdate(r.code, snap)
}

// endTurnLocked is the single turn-end transition, shared by timer expiry and
// any other cause. Caller must hold r.mu.
func (r *Room) endTurnLocked() {
	r.stopCountdownLocked()
	r.timerActive = false
	r.activePlayerID = ""

	if r.currentCard != nil {
		r.deck.requeue(*r.currentCard)
		r.currentCard = nil
	}

	previous := r.turnTeam
	if previous == 1 {
		r.turnTeam = 2
	} else {
		r.turnTeam = 1
	}
	// A full cycle completes only after team 2 acts.
	if previous == 2 {
		r.turnIndex++
	}
	if len(r.teamPlayersLocked(r.turnTeam)) == 0 {
		r.turnTeam = previous
	}
}

func (r *Room) matchRecordLocked() *domain.MatchRecord {
	matchPlayers := make([]domain.MatchPlayer, len(r.players))
	for i, p := range r.players {
		matchPlayers[i] = domain.MatchPlayer{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Team:     p.Team,
		}
	}
	playersJSON, _ := json.Marshal(matchPlayers)

	return &domain.MatchRecord{
		ID:          uuid.New(),
		RoomCode:    r.code,
		Rounds:      r.round,
		Team1Score:  r.team1Score,
		Team2Score:  r.team2Score,
		CardCount:   len(r.allCards),
		Players:     playersJSON,
		CompletedAt: time.Now(),
	}
}

func (r *Room) findByPlayerIDLocked(playerID string) *Player {
	for _, p := range r.players {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) findByConnectionLocked(connectionID string) *Player {
	for _, p := range r.players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

func (r *Room) teamPlayersLocked(team int) []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) teamCountsLocked() (int, int) {
	var team1, team2 int
	for _, p := range r.players {
		if p.Team == 1 {
			team1++
		} else {
			team2++
		}
	}
	return team1, team2
}

// updateIdleLocked tracks when a room became reapable: no players left, or
// every remaining player disconnected.
func (r *Room) updateIdleLocked() {
	for _, p := range r.players {
		if p.Connected {
			r.idleSince = time.Time{}
			return
		}
	}
	if r.idleSince.IsZero() {
		r.idleSince = time.Now()
	}
}

// idleFor reports how long the room has been without any connected player.
func (r *Room) idleFor(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idleSince.IsZero() {
		return 0
	}
	return now.Sub(r.idleSince)
}

// shutdown stops any live countdown. Called when the registry removes the room.
func (r *Room) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCountdownLocked()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
