package glicko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/inhouse/internal/domain"
)

func TestCalculateEmpty(t *testing.T) {
	assert.Empty(t, Calculate(nil))
}

func TestCalculate(t *testing.T) {
	entries := []domain.HistoryEntry{
		{Winner: []domain.PlayerID{"a", "b"}, Loser: []domain.PlayerID{"c", "d"}},
		{Winner: []domain.PlayerID{"a", "c"}, Loser: []domain.PlayerID{"b", "d"}},
		{Winner: []domain.PlayerID{"d"}, Loser: []domain.PlayerID{"a"}, Fake: true},
	}
	ratings := Calculate(entries)
	require.Len(t, ratings, 4)
	assert.Equal(t, domain.PlayerID("a"), ratings[0].Player)
	assert.Equal(t, domain.PlayerID("d"), ratings[3].Player)
	assert.Greater(t, ratings[0].Rating, float64(InitialRating))
	assert.Less(t, ratings[3].Rating, float64(InitialRating))
	for i := 1; i < len(ratings); i++ {
		assert.GreaterOrEqual(t, ratings[i-1].Rating, ratings[i].Rating)
	}
	for _, r := range ratings {
		assert.Less(t, r.Deviation, float64(InitialDeviation))
	}
}

func TestCalculateFakeOnly(t *testing.T) {
	ratings := Calculate([]domain.HistoryEntry{
		{Winner: []domain.PlayerID{"a"}, Loser: []domain.PlayerID{"b"}, Fake: true},
	})
	assert.Empty(t, ratings)
}
