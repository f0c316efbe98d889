package beatmap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const (
	// LatestVersion is the newest beatmap schema this decoder understands.
	LatestVersion = "1.1"

	// IntroSkipSeconds drops notes from the very start of a song so the
	// player has time to orient before the first stroke.
	IntroSkipSeconds = 3.0

	MinLevel = 1
	MaxLevel = 3
)

// Lane names, in display order. Each note belongs to exactly one lane.
const (
	LaneBase  = "base"
	LaneDrum  = "drum"
	LaneBass  = "bass"
	LaneVocal = "vocal"
	LaneLead  = "lead"
)

var laneNames = map[string]bool{
	LaneBase:  true,
	LaneDrum:  true,
	LaneBass:  true,
	LaneVocal: true,
	LaneLead:  true,
}

// Note is a single timed marker in a song.
type Note struct {
	Time  float64 `json:"time"`  // seconds from song start
	Level int     `json:"level"` // 1=easy, 2=medium, 3=hard
	Type  string  `json:"type"`  // lane name
}

type Meta struct {
	Version       string  `json:"version"`
	Filename      string  `json:"filename"`
	Title         string  `json:"title,omitempty"`
	Category      string  `json:"category,omitempty"`
	Priority      int     `json:"priority,omitempty"`
	BPM           float64 `json:"bpm"`
	TotalDuration float64 `json:"total_duration"`
}

type Beatmap struct {
	Meta  Meta   `json:"meta"`
	Notes []Note `json:"notes"`
}

func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Beatmap, error) {
	var bm Beatmap
	dec := json.NewDecoder(r)
	if err := dec.Decode(&bm); err != nil {
		return nil, fmt.Errorf("beatmap: decode: %w", err)
	}
	if bm.Meta.BPM <= 0 {
		return nil, fmt.Errorf("beatmap: bpm must be positive, got %v", bm.Meta.BPM)
	}
	for i, n := range bm.Notes {
		if n.Level < MinLevel || n.Level > MaxLevel {
			return nil, fmt.Errorf("beatmap: note %d: level must be %d..%d, got %d", i, MinLevel, MaxLevel, n.Level)
		}
		if !laneNames[n.Type] {
			return nil, fmt.Errorf("beatmap: note %d: unknown lane %q", i, n.Type)
		}
		if i > 0 && n.Time < bm.Notes[i-1].Time {
			return nil, fmt.Errorf("beatmap: note %d: time %v before previous note %v", i, n.Time, bm.Notes[i-1].Time)
		}
	}
	return &bm, nil
}

// BeatInterval is the duration of one beat in seconds.
func (bm *Beatmap) BeatInterval() float64 {
	return 60 / bm.Meta.BPM
}

// NotesForDifficulty keeps notes at or below the requested level, then drops
// anything inside the intro-skip offset. d=1 keeps only level-1 notes.
func (bm *Beatmap) NotesForDifficulty(d int) []Note {
	filtered := make([]Note, 0, len(bm.Notes))
	for _, n := range bm.Notes {
		if n.Level > d {
			continue
		}
		filtered = append(filtered, n)
	}
	kept := filtered[:0]
	for _, n := range filtered {
		if n.Time < IntroSkipSeconds {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}
