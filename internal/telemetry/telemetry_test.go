package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_FiltersAndCaps(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepositoryWithClock(func() time.Time { return now }, 3)

	require.NoError(t, repo.RecordEvent(EventGameStarted, EventMetadata{"difficulty": "easy"}))
	now = now.Add(time.Minute)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.RecordEvent(EventCardMoved, EventMetadata{"step": "waste_to_tableau", "delta": 5}))
	}

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3, "oldest event dropped")
	assert.Equal(t, 2, all[0].ID)

	moved, err := repo.GetEvents(now, []EventType{EventCardMoved})
	require.NoError(t, err)
	assert.Len(t, moved, 3)

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	record := func(et EventType, md EventMetadata) {
		require.NoError(t, repo.RecordEvent(et, md))
	}
	record(EventGameStarted, EventMetadata{"difficulty": "hard"})
	record(EventCardMoved, EventMetadata{"step": "tableau_to_foundation", "delta": 15})
	record(EventCardRevealed, EventMetadata{"delta": 5})
	record(EventCardMoved, EventMetadata{"step": "waste_to_stock", "delta": -100})
	record(EventGameCleared, EventMetadata{"score": 20})
	record(EventGameStarted, EventMetadata{"difficulty": "easy"})

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	stats, err := CalculateStats(events, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.GamesStarted)
	assert.Equal(t, 1, stats.GamesCleared)
	assert.InDelta(t, 0.5, stats.ClearRate, 1e-9)
	assert.Equal(t, 2, stats.Moves)
	assert.Equal(t, 1, stats.MovesByStep["waste_to_stock"])
	assert.Equal(t, 1, stats.Reveals)
	assert.Equal(t, 20, stats.PointsGained)
	assert.Equal(t, 100, stats.PointsLost)
	assert.Equal(t, 1, stats.ByDifficulty["hard"])
}
