package challenge

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/database"
)

// setupTestStore initializes an in-memory database and a challenge store for testing.
func setupTestStore(t *testing.T) (Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := New(db)
	return store, db, func() {
		teardown()
	}
}

// seedPlayers inserts bare player rows so the challenge foreign keys hold.
func seedPlayers(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()

	for i, id := range ids {
		_, err := db.Exec(
			"INSERT INTO players (id, name, position, join_date, is_active) VALUES (?, ?, ?, ?, 1)",
			id, "Player "+id, i+1, time.Now().Unix(),
		)
		require.NoError(t, err)
	}
}

func newChallenge(id, challengerID, challengedID string) *Challenge {
	now := time.Now()
	return &Challenge{
		ID:           id,
		ChallengerID: challengerID,
		ChallengedID: challengedID,
		Status:       StatusPending,
		CreatedDate:  now.Unix(),
		ExpiryDate:   now.Add(Window).Unix(),
	}
}

func TestCreate(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2", "p3", "p4")

	t.Run("creates a pending challenge", func(t *testing.T) {
		require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))

		got, err := store.Get("ch-1")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
		assert.Nil(t, got.NotifiedCreated)
	})

	t.Run("rejects a duplicate pending challenge for the same pair", func(t *testing.T) {
		err := store.Create(newChallenge("ch-dup", "p2", "p1"))
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("rejects when either player is already involved", func(t *testing.T) {
		err := store.Create(newChallenge("ch-busy", "p3", "p1"))
		assert.ErrorIs(t, err, ErrPlayerBusy)

		err = store.Create(newChallenge("ch-busy2", "p2", "p3"))
		assert.ErrorIs(t, err, ErrPlayerBusy)
	})

	t.Run("allows an unrelated pair", func(t *testing.T) {
		require.NoError(t, store.Create(newChallenge("ch-2", "p4", "p3")))
	})
}

func TestGet(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2")
	require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))

	got, err := store.Get("ch-1")
	require.NoError(t, err)
	assert.Equal(t, "p2", got.ChallengerID)
	assert.Equal(t, "p1", got.ChallengedID)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveForPlayer(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2", "p3")
	require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))

	ch, err := store.ActiveForPlayer("p1")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "ch-1", ch.ID)

	ch, err = store.ActiveForPlayer("p3")
	require.NoError(t, err)
	assert.Nil(t, ch)

	// Terminal challenges do not count.
	require.NoError(t, store.SetStatus("ch-1", StatusPending, StatusDeclined))
	ch, err = store.ActiveForPlayer("p1")
	require.NoError(t, err)
	assert.Nil(t, ch)
}

func TestSetStatus(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2")
	require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))

	t.Run("applies a valid transition", func(t *testing.T) {
		require.NoError(t, store.SetStatus("ch-1", StatusPending, StatusAccepted))

		got, err := store.Get("ch-1")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, got.Status)
	})

	t.Run("rejects a transition from the wrong state", func(t *testing.T) {
		err := store.SetStatus("ch-1", StatusPending, StatusDeclined)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rejects an unknown challenge", func(t *testing.T) {
		err := store.SetStatus("missing", StatusPending, StatusAccepted)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMarkNotified(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2")
	require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))

	require.NoError(t, store.MarkNotified("ch-1", NotifWeekReminder, 1700000000))

	got, err := store.Get("ch-1")
	require.NoError(t, err)
	require.NotNil(t, got.NotifiedWeekReminder)
	assert.EqualValues(t, 1700000000, *got.NotifiedWeekReminder)
	assert.True(t, got.Notified(NotifWeekReminder))
	assert.False(t, got.Notified(NotifFinalWeek))

	// A second mark is a no-op, the first timestamp survives.
	require.NoError(t, store.MarkNotified("ch-1", NotifWeekReminder, 1800000000))
	got, err = store.Get("ch-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1700000000, *got.NotifiedWeekReminder)

	err = store.MarkNotified("ch-1", NotificationKind("bogus"), 1700000000)
	assert.Error(t, err)
}

func TestListChallenges(t *testing.T) {
	store, db, teardown := setupTestStore(t)
	defer teardown()

	seedPlayers(t, db, "p1", "p2", "p3", "p4")
	require.NoError(t, store.Create(newChallenge("ch-1", "p2", "p1")))
	require.NoError(t, store.Create(newChallenge("ch-2", "p4", "p3")))
	require.NoError(t, store.SetStatus("ch-2", StatusPending, StatusDeclined))

	active, err := store.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "ch-1", active[0].ID)

	all, err := store.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusExpiredUnplayed.Terminal())
}
