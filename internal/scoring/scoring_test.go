package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGame(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		wantErr error
	}{
		{"clean win", 11, 5, nil},
		{"clean win reversed", 3, 11, nil},
		{"shutout", 11, 0, nil},
		{"extended game", 13, 11, nil},
		{"long extended game", 17, 15, nil},
		{"win by two from nine", 11, 9, nil},
		{"high but legal score", 25, 23, nil},
		{"negative score", -1, 11, ErrInvalidScore},
		{"tie", 10, 10, ErrTiedGame},
		{"winner short of eleven", 10, 8, ErrInvalidScore},
		{"one point lead at deuce", 11, 10, ErrInvalidScore},
		{"one point lead extended", 12, 11, ErrInvalidScore},
		{"three point lead extended", 14, 11, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGame(tt.a, tt.b)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("straight three-game win", func(t *testing.T) {
		out, err := Resolve([]Game{
			{11, 5},
			{11, 7},
			{11, 9},
		})
		require.NoError(t, err)
		assert.True(t, out.ChallengerWon)
		assert.Equal(t, 3, out.ChallengerGames)
		assert.Equal(t, 0, out.ChallengedGames)
		assert.False(t, out.Suspicious)
	})

	t.Run("five-game loss for the challenger", func(t *testing.T) {
		out, err := Resolve([]Game{
			{11, 8},
			{9, 11},
			{11, 6},
			{5, 11},
			{9, 11},
		})
		require.NoError(t, err)
		assert.False(t, out.ChallengerWon)
		assert.Equal(t, 2, out.ChallengerGames)
		assert.Equal(t, 3, out.ChallengedGames)
	})

	t.Run("no games", func(t *testing.T) {
		_, err := Resolve(nil)
		assert.ErrorIs(t, err, ErrIncompleteMatch)
	})

	t.Run("neither side reaches three wins", func(t *testing.T) {
		_, err := Resolve([]Game{
			{11, 5},
			{5, 11},
		})
		assert.ErrorIs(t, err, ErrIncompleteMatch)
	})

	t.Run("more than five games", func(t *testing.T) {
		_, err := Resolve([]Game{
			{11, 5}, {11, 5}, {5, 11}, {5, 11}, {11, 5}, {11, 5},
		})
		assert.ErrorIs(t, err, ErrExcessGames)
	})

	t.Run("game submitted after the match was won", func(t *testing.T) {
		_, err := Resolve([]Game{
			{11, 5},
			{11, 5},
			{11, 5},
			{11, 5},
		})
		assert.ErrorIs(t, err, ErrExcessGames)
	})

	t.Run("invalid game carries its index", func(t *testing.T) {
		_, err := Resolve([]Game{
			{11, 5},
			{10, 10},
			{11, 5},
		})
		require.ErrorIs(t, err, ErrTiedGame)
		assert.Contains(t, err.Error(), "game 2")
	})

	t.Run("very high scores are flagged but accepted", func(t *testing.T) {
		out, err := Resolve([]Game{
			{23, 21},
			{11, 4},
			{11, 6},
		})
		require.NoError(t, err)
		assert.True(t, out.ChallengerWon)
		assert.True(t, out.Suspicious)
	})
}

func TestWalkoverOutcome(t *testing.T) {
	out := WalkoverOutcome()
	assert.True(t, out.ChallengerWon)
	assert.Equal(t, GamesToWin, out.ChallengerGames)
	assert.Equal(t, 0, out.ChallengedGames)
	assert.False(t, out.Suspicious)
}
