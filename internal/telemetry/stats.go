package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period       string            `json:"period"`
	EventCounts  map[EventType]int `json:"event_counts"`
	GamesStarted int               `json:"games_started"`
	GamesCleared int               `json:"games_cleared"`
	ClearRate    float64           `json:"clear_rate"`
	Moves        int               `json:"moves"`
	MovesByStep  map[string]int    `json:"moves_by_step"`
	Reveals      int               `json:"reveals"`
	PointsGained int               `json:"points_gained"`
	PointsLost   int               `json:"points_lost"`
	ByDifficulty map[string]int    `json:"by_difficulty"`
}

// CalculateStats summarizes play from recorded events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:       since.Format("2006-01-02"),
		EventCounts:  make(map[EventType]int),
		MovesByStep:  make(map[string]int),
		ByDifficulty: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		// JSON numbers decode as float64
		if delta, ok := metadata["delta"].(float64); ok {
			if delta > 0 {
				stats.PointsGained += int(delta)
			} else {
				stats.PointsLost -= int(delta)
			}
		}

		switch event.Type {
		case EventGameStarted:
			stats.GamesStarted++
			if d, ok := metadata["difficulty"].(string); ok {
				stats.ByDifficulty[d]++
			}
		case EventGameCleared:
			stats.GamesCleared++
		case EventCardMoved:
			stats.Moves++
			if step, ok := metadata["step"].(string); ok {
				stats.MovesByStep[step]++
			}
		case EventCardRevealed:
			stats.Reveals++
		}
	}

	if stats.GamesStarted > 0 {
		stats.ClearRate = float64(stats.GamesCleared) / float64(stats.GamesStarted)
	}

	return stats, nil
}
