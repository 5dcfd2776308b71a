package telemetry

import "time"

type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventDealt        EventType = "dealt"
	EventCardMoved    EventType = "card_moved"
	EventCardRevealed EventType = "card_revealed"
	EventGameCleared  EventType = "game_cleared"
	EventPhaseChanged EventType = "phase_changed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
