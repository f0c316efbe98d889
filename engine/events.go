package engine

// Event is a one-shot signal for the presentation layer, returned from the
// session's mutating calls instead of being dispatched through callbacks.
type Event uint8

const (
	EventLifeLost Event = iota
	EventGameOver
	EventStrokeMissed // timing window expired with no attempt
	EventHealthRestored
	EventCharacterCompleted
	EventSongCompleted
)

func (e Event) String() string {
	switch e {
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventStrokeMissed:
		return "stroke_missed"
	case EventHealthRestored:
		return "health_restored"
	case EventCharacterCompleted:
		return "character_completed"
	case EventSongCompleted:
		return "song_completed"
	}
	return "unknown"
}
