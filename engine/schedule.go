package engine

import (
	"fmt"
	"math/rand/v2"

	"beatkanji/beatmap"
)

// BonusOdds is the chance that a scheduled stroke is flagged as a bonus
// (life-restoring) stroke: one in twenty.
const BonusOdds = 20

// StrokeEvent maps one note onto one stroke of one character in the session
// sequence. Immutable once scheduled.
type StrokeEvent struct {
	BeatTime  float64
	CharIndex int
	Stroke    int
	Bonus     bool
}

// Scheduler converts the trimmed note list and character sequence into
// per-stroke events. Bonus flags are decided here, at schedule time,
// independent of later game state.
type Scheduler struct {
	rng *rand.Rand
}

func NewScheduler(rng *rand.Rand) *Scheduler {
	return &Scheduler{rng: rng}
}

// Schedule walks the notes in order, advancing a (character, stroke) cursor.
// If the character sequence runs out before the notes do, the walk stops and
// an error describing the mismatch is returned along with the events built
// so far; the caller decides whether that is fatal.
func (sch *Scheduler) Schedule(notes []beatmap.Note, seq []*Character) ([]StrokeEvent, error) {
	events := make([]StrokeEvent, 0, len(notes))
	ci, si := 0, 0
	for i, n := range notes {
		for ci < len(seq) && si >= seq[ci].StrokeCount {
			ci++
			si = 0
		}
		if ci >= len(seq) {
			return events, fmt.Errorf("engine: %d notes left over after %d characters", len(notes)-i, len(seq))
		}
		events = append(events, StrokeEvent{
			BeatTime:  n.Time,
			CharIndex: ci,
			Stroke:    si,
			Bonus:     sch.rng.IntN(BonusOdds) == 0,
		})
		si++
	}
	return events, nil
}
