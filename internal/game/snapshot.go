package game

import "github.com/partydeck/monikers-server/internal/domain"

// Snapshot is the scrubbed view of a room sent to clients. It carries every
// externally meaningful field and nothing else; in particular the countdown
// handle never leaves the engine.
type Snapshot struct {
	Code             string        `json:"code"`
	Players          []Player      `json:"players"`
	Deck             []domain.Card `json:"deck"`
	AllCards         []domain.Card `json:"allCards"`
	Phase            Phase         `json:"phase"`
	Scores           Scores        `json:"scores"`
	CurrentCard      *domain.Card  `json:"currentCard"`
	Round            int           `json:"round"`
	Timer            int           `json:"timer"`
	TimerActive      bool          `json:"timerActive"`
	TurnTeam         int           `json:"turnTeam"`
	TurnIndex        int           `json:"turnIndex"`
	SubmittedPlayers []string      `json:"submittedPlayers"`
	ActivePlayerID   string        `json:"activePlayerId"`
}

type Scores struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// snapshotLocked builds a Snapshot from the room. Caller must hold r.mu.
func (r *Room) snapshotLocked() *Snapshot {
	players := make([]Player, len(r.players))
	for i, p := range r.players {
		players[i] = *p
	}

	snap := &Snapshot{
		Code:             r.code,
		Players:          players,
		Deck:             append([]domain.Card(nil), r.deck...),
		AllCards:         append([]domain.Card(nil), r.allCards...),
		Phase:            r.phase,
		Scores:           Scores{Team1: r.team1Score, Team2: r.team2Score},
		Round:            r.round,
		Timer:            r.timer,
		TimerActive:      r.timerActive,
		TurnTeam:         r.turnTeam,
		TurnIndex:        r.turnIndex,
		SubmittedPlayers: append([]string(nil), r.submitted...),
		ActivePlayerID:   r.activePlayerID,
	}
	if r.currentCard != nil {
		card := *r.currentCard
		snap.CurrentCard = &card
	}
	return snap
}

// Snapshot returns the current scrubbed room state.
func (r *Room) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}
