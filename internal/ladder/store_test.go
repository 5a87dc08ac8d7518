package ladder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/database"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// setupTestStore initializes an in-memory database and a ladder store for testing.
func setupTestStore(t *testing.T) (Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := New(db)
	return store, func() {
		teardown()
	}
}

// joinLadder joins the given names in order, so names[0] holds position 1.
func joinLadder(t *testing.T, store Store, names ...string) []*Player {
	t.Helper()

	players := make([]*Player, len(names))
	for i, name := range names {
		p, err := store.JoinPlayer(name)
		require.NoError(t, err)
		players[i] = p
	}
	return players
}

func TestJoinPlayer(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	t.Run("appends players at the bottom", func(t *testing.T) {
		alice, err := store.JoinPlayer("Alice")
		require.NoError(t, err)
		assert.Equal(t, 1, alice.Position)
		assert.True(t, alice.IsActive)
		assert.NotEmpty(t, alice.ID)

		bob, err := store.JoinPlayer("Bob")
		require.NoError(t, err)
		assert.Equal(t, 2, bob.Position)
	})

	t.Run("rejects a duplicate name ignoring case", func(t *testing.T) {
		_, err := store.JoinPlayer("alice")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := store.JoinPlayer("   ")
		assert.Error(t, err)
	})

	t.Run("keeps positions contiguous", func(t *testing.T) {
		require.NoError(t, store.VerifyPositions())
	})
}

func TestGetPlayerByName(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	joinLadder(t, store, "Alice")

	got, err := store.GetPlayerByName("  aLiCe ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = store.GetPlayerByName("Nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRecordMatch(t *testing.T) {
	t.Run("challenger win shifts the in-between players down", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()

		players := joinLadder(t, store, "P1", "P2", "P3", "P4", "P5")

		// Position 5 beats position 2.
		m := &Match{
			ID:          uuid.NewString(),
			ChallengeID: uuid.NewString(),
			WinnerID:    players[4].ID,
			LoserID:     players[1].ID,
			Games: []scoring.Game{
				{ChallengerPoints: 11, ChallengedPoints: 7},
				{ChallengerPoints: 11, ChallengedPoints: 9},
				{ChallengerPoints: 11, ChallengedPoints: 4},
			},
			PlayedAt: 1700000000,
		}
		require.NoError(t, store.RecordMatch(m))

		assert.Equal(t, 5, m.WinnerPrevPosition)
		assert.Equal(t, 2, m.LoserPrevPosition)

		wantPositions := map[string]int{
			"P1": 1,
			"P5": 2,
			"P2": 3,
			"P3": 4,
			"P4": 5,
		}
		listed, err := store.ListPlayers()
		require.NoError(t, err)
		require.Len(t, listed, 5)
		for _, p := range listed {
			assert.Equal(t, wantPositions[p.Name], p.Position, "position of %s", p.Name)
		}
		require.NoError(t, store.VerifyPositions())
	})

	t.Run("defender win changes no positions", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()

		players := joinLadder(t, store, "P1", "P2", "P3")

		m := &Match{
			ID:          uuid.NewString(),
			ChallengeID: uuid.NewString(),
			WinnerID:    players[0].ID,
			LoserID:     players[2].ID,
			Games: []scoring.Game{
				{ChallengerPoints: 5, ChallengedPoints: 11},
				{ChallengerPoints: 7, ChallengedPoints: 11},
				{ChallengerPoints: 9, ChallengedPoints: 11},
			},
			PlayedAt: 1700000000,
		}
		require.NoError(t, store.RecordMatch(m))

		winner, err := store.GetPlayer(players[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 1, winner.Position)
		assert.Equal(t, 1, winner.Wins)

		loser, err := store.GetPlayer(players[2].ID)
		require.NoError(t, err)
		assert.Equal(t, 3, loser.Position)
		assert.Equal(t, 1, loser.Losses)
	})

	t.Run("adjacent positions swap cleanly", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()

		players := joinLadder(t, store, "P1", "P2")

		m := &Match{
			ID:          uuid.NewString(),
			ChallengeID: uuid.NewString(),
			WinnerID:    players[1].ID,
			LoserID:     players[0].ID,
			IsWalkover:  true,
			PlayedAt:    1700000000,
		}
		require.NoError(t, store.RecordMatch(m))

		winner, err := store.GetPlayer(players[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 1, winner.Position)

		loser, err := store.GetPlayer(players[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 2, loser.Position)
	})

	t.Run("caps participation points", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()

		players := joinLadder(t, store, "P1", "P2")

		for i := 0; i < 5; i++ {
			m := &Match{
				ID:          uuid.NewString(),
				ChallengeID: uuid.NewString(),
				WinnerID:    players[0].ID,
				LoserID:     players[1].ID,
				IsWalkover:  true,
				PlayedAt:    1700000000,
			}
			require.NoError(t, store.RecordMatch(m))
		}

		p, err := store.GetPlayer(players[1].ID)
		require.NoError(t, err)
		assert.Equal(t, MaxParticipationPoints, p.ParticipationPoints)
		assert.Equal(t, 5, p.Losses)
	})

	t.Run("rejects an unknown player", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()

		players := joinLadder(t, store, "P1")

		m := &Match{
			ID:          uuid.NewString(),
			ChallengeID: uuid.NewString(),
			WinnerID:    "ghost",
			LoserID:     players[0].ID,
			PlayedAt:    1700000000,
		}
		assert.ErrorIs(t, store.RecordMatch(m), ErrPlayerNotFound)
	})
}

func TestListMatches(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	players := joinLadder(t, store, "P1", "P2")

	first := &Match{
		ID:          uuid.NewString(),
		ChallengeID: uuid.NewString(),
		WinnerID:    players[1].ID,
		LoserID:     players[0].ID,
		Games: []scoring.Game{
			{ChallengerPoints: 11, ChallengedPoints: 2},
			{ChallengerPoints: 11, ChallengedPoints: 4},
			{ChallengerPoints: 11, ChallengedPoints: 6},
		},
		PlayedAt: 1700000000,
	}
	require.NoError(t, store.RecordMatch(first))

	second := &Match{
		ID:          uuid.NewString(),
		ChallengeID: uuid.NewString(),
		WinnerID:    players[0].ID,
		LoserID:     players[1].ID,
		IsWalkover:  true,
		PlayedAt:    1700005000,
	}
	require.NoError(t, store.RecordMatch(second))

	matches, err := store.ListMatches()
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Most recent first.
	assert.Equal(t, second.ID, matches[0].ID)
	assert.True(t, matches[0].IsWalkover)
	assert.Empty(t, matches[0].Games)

	assert.Equal(t, first.ID, matches[1].ID)
	require.Len(t, matches[1].Games, 3)
	assert.Equal(t, 11, matches[1].Games[0].ChallengerPoints)
}

func TestDeactivatePlayer(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	players := joinLadder(t, store, "P1", "P2", "P3", "P4")

	require.NoError(t, store.DeactivatePlayer(players[1].ID))

	_, err := store.GetPlayer(players[1].ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	listed, err := store.ListPlayers()
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "P1", listed[0].Name)
	assert.Equal(t, "P3", listed[1].Name)
	assert.Equal(t, 2, listed[1].Position)
	assert.Equal(t, "P4", listed[2].Name)
	assert.Equal(t, 3, listed[2].Position)

	require.NoError(t, store.VerifyPositions())
}

func TestDeactivatePlayerCancelsOpenChallenges(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := New(db)
	players := joinLadder(t, store, "P1", "P2", "P3", "P4")

	insertChallenge := func(challengerID, challengedID, status string) string {
		id := uuid.NewString()
		_, err := db.Exec(
			"INSERT INTO challenges (id, challenger_id, challenged_id, status, created_date, expiry_date) VALUES (?, ?, ?, ?, 0, 0)",
			id, challengerID, challengedID, status,
		)
		require.NoError(t, err)
		return id
	}
	involved := insertChallenge(players[2].ID, players[0].ID, "pending")
	unrelated := insertChallenge(players[3].ID, players[1].ID, "accepted")

	require.NoError(t, store.DeactivatePlayer(players[0].ID))

	// The departed player's challenge ends so the counterpart is not
	// stuck waiting for the expiry sweep. Other challenges are untouched.
	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM challenges WHERE id = ?", involved).Scan(&status))
	assert.Equal(t, "declined", status)
	require.NoError(t, db.QueryRow("SELECT status FROM challenges WHERE id = ?", unrelated).Scan(&status))
	assert.Equal(t, "accepted", status)
}

func TestWinPercentage(t *testing.T) {
	p := Player{Wins: 8, Losses: 2}
	assert.Equal(t, 80, p.WinPercentage())

	empty := Player{}
	assert.Equal(t, 0, empty.WinPercentage())
}
