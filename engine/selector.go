package engine

import (
	"math/rand/v2"

	"beatkanji/beatmap"
)

// DefaultCharacterGap is the minimum silence kept after a character's last
// note before the next character's first stroke.
const DefaultCharacterGap = 0.8

// Selector builds the randomized character sequence for a session. Each
// selected character consumes as many notes as it has strokes; notes falling
// inside the gap after a character are discarded to give the player room to
// lift the pen.
type Selector struct {
	Gap float64
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{Gap: DefaultCharacterGap, rng: rng}
}

// Select walks a shuffled copy of the pool, consuming notes in order. A
// candidate whose stroke count exceeds the remaining notes is skipped in
// favor of the next pool member that fits; when the whole pool has been used
// it is reshuffled so characters can repeat. Selection stops when no pool
// member fits the remaining notes.
//
// Returns the character sequence and the notes actually kept, in order. The
// kept note count always equals the summed stroke counts of the sequence.
func (s *Selector) Select(pool []*Character, notes []beatmap.Note) ([]*Character, []beatmap.Note) {
	bag := make([]*Character, 0, len(pool))
	for _, c := range pool {
		if c.StrokeCount > 0 {
			bag = append(bag, c)
		}
	}
	if len(bag) == 0 || len(notes) == 0 {
		return nil, nil
	}

	minStrokes := bag[0].StrokeCount
	for _, c := range bag[1:] {
		if c.StrokeCount < minStrokes {
			minStrokes = c.StrokeCount
		}
	}

	s.shuffle(bag)
	next := 0

	var seq []*Character
	kept := make([]beatmap.Note, 0, len(notes))
	remaining := notes

	for len(remaining) >= minStrokes {
		if next >= len(bag) {
			s.shuffle(bag)
			next = 0
		}

		fit := -1
		for i := next; i < len(bag); i++ {
			if bag[i].StrokeCount <= len(remaining) {
				fit = i
				break
			}
		}
		if fit == -1 {
			// Nothing in the unused part of the bag fits; a fresh bag
			// might, since minStrokes still does.
			s.shuffle(bag)
			next = 0
			continue
		}
		bag[next], bag[fit] = bag[fit], bag[next]
		ch := bag[next]
		next++

		take := remaining[:ch.StrokeCount]
		kept = append(kept, take...)
		last := take[len(take)-1].Time
		remaining = remaining[ch.StrokeCount:]
		for len(remaining) > 0 && remaining[0].Time-last < s.Gap {
			remaining = remaining[1:]
		}
		seq = append(seq, ch)
	}
	return seq, kept
}

func (s *Selector) shuffle(bag []*Character) {
	s.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
}
