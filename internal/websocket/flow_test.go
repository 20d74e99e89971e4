package websocket_test

import (
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/partydeck/monikers-server/internal/game"
	"github.com/partydeck/monikers-server/internal/testutil"
	"github.com/partydeck/monikers-server/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

func TestWebSocket_RequiresValidToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	wsURL := "ws" + ts.Server.URL[4:] + "/api/v1/ws"

	_, resp, err := gorillaWS.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err, "handshake without a token must fail")
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp, err = gorillaWS.DefaultDialer.Dial(wsURL+"?token=garbage", nil)
	require.Error(t, err, "handshake with a bogus token must fail")
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestWebSocket_GameFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := testutil.CreateSession(t, ts, "Alice")
	bob := testutil.CreateSession(t, ts, "Bob")

	c1 := testutil.NewWSClient(t, ts.WebSocketURL(alice.Token))
	c1.JoinRoom("ab12", "Alice", alice.PlayerID)

	snap := c1.ExpectRoomUpdate(waitFor)
	assert.Equal(t, "AB12", snap.Code, "codes are normalized on join")
	require.Len(t, snap.Players, 1)
	assert.Equal(t, alice.PlayerID, snap.Players[0].PlayerID)
	assert.Equal(t, 1, snap.Players[0].Team)

	c2 := testutil.NewWSClient(t, ts.WebSocketURL(bob.Token))
	c2.JoinRoom("AB12", "Bob", bob.PlayerID)

	// Both sides see the second join.
	snap = c2.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 2
	})
	assert.Equal(t, 2, snap.Players[1].Team, "the second player balances onto team 2")
	c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 2
	})

	c1.StartDrafting("AB12")
	c2.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return s.Phase == game.PhaseDrafting
	})

	c1.SubmitDraft("AB12", testutil.Cards("a", 2))
	c2.SubmitDraft("AB12", testutil.Cards("b", 2))

	snap = c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return s.Phase == game.PhaseGame
	})
	assert.Len(t, snap.AllCards, 4)
	assert.Len(t, snap.Deck, 4)

	// Work out which connection holds the opening turn.
	var clueGiver *testutil.WSClient
	var clueGiverID string
	for _, p := range snap.Players {
		if p.Team == snap.TurnTeam {
			clueGiverID = p.PlayerID
		}
	}
	require.NotEmpty(t, clueGiverID)
	clueGiver = c1
	spectator := c2
	if clueGiverID == bob.PlayerID {
		clueGiver, spectator = c2, c1
	}

	// Only the clue-giver may start; the other side is silently ignored.
	spectator.StartTurn("AB12")
	clueGiver.StartTurn("AB12")

	snap = clueGiver.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return s.TimerActive
	})
	assert.Equal(t, clueGiverID, snap.ActivePlayerID)
	scoringTeam := snap.TurnTeam

	clueGiver.DrawCard("AB12")
	snap = clueGiver.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return s.CurrentCard != nil
	})

	clueGiver.ScoreCard("AB12", scoringTeam)
	snap = spectator.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return s.Scores.Team1+s.Scores.Team2 == 1
	})
	assert.Len(t, snap.Deck, 3)

	// Countdown ticks reach every subscriber, then expiry flips the turn.
	remaining := spectator.ExpectTimerUpdate(waitFor)
	assert.Less(t, remaining, ts.Config.TurnSeconds)

	snap = spectator.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return !s.TimerActive && s.TurnTeam != scoringTeam
	})
	assert.Empty(t, snap.ActivePlayerID)
	assert.Len(t, snap.Deck, 3, "unplayed cards stay in the deck across turns")
}

func TestWebSocket_DisconnectAndReconnect(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := testutil.CreateSession(t, ts, "Alice")
	bob := testutil.CreateSession(t, ts, "Bob")

	c1 := testutil.NewWSClient(t, ts.WebSocketURL(alice.Token))
	c1.JoinRoom("AB12", "Alice", alice.PlayerID)

	c2 := testutil.NewWSClient(t, ts.WebSocketURL(bob.Token))
	c2.JoinRoom("AB12", "Bob", bob.PlayerID)
	c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 2
	})

	// Dropping the socket flags the seat instead of freeing it.
	c2.Close()
	snap := c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 2 && !s.Players[1].Connected
	})
	assert.Equal(t, bob.PlayerID, snap.Players[1].PlayerID)

	// The same playerId reclaims the seat on a fresh connection.
	c3 := testutil.NewWSClient(t, ts.WebSocketURL(bob.Token))
	c3.JoinRoom("AB12", "Bob", bob.PlayerID)
	snap = c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 2 && s.Players[1].Connected
	})
	assert.Equal(t, 2, snap.Players[1].Team)

	// An explicit leave frees the seat.
	c3.LeaveRoom("AB12")
	c1.ExpectRoomUpdateWhere(waitFor, func(s *game.Snapshot) bool {
		return len(s.Players) == 1
	})
}

func TestWebSocket_MalformedPayload(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := testutil.CreateSession(t, ts, "Alice")
	c1 := testutil.NewWSClient(t, ts.WebSocketURL(alice.Token))

	c1.Send(websocket.MessageTypeSubmitDraft, "not-an-object")

	errPayload := c1.ExpectError(waitFor)
	assert.Equal(t, "INVALID_PAYLOAD", errPayload.Code)
}
