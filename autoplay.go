package main

import (
	"math/rand/v2"
	"slices"

	"beatkanji/engine"
)

// Autoplay drives a session the way the game loop would: ticks at a fixed
// frame rate with the clock standing in for the audio position, attempting
// each stroke as its beat arrives.
type Autoplay struct {
	FrameRate  float64
	Jitter     float64 // pen offset applied to each attempt, normalized units
	SkipChance float64 // chance to let a window lapse untouched
	rng        *rand.Rand
}

func NewAutoplay(seed uint64, jitter, skipChance float64) *Autoplay {
	return &Autoplay{
		FrameRate:  60,
		Jitter:     jitter,
		SkipChance: skipChance,
		rng:        rand.New(rand.NewPCG(seed, 1)),
	}
}

type RunResult struct {
	Outcome     string   `json:"outcome"` // completed | game_over | stalled
	Score       int      `json:"score"`
	MaxScore    int      `json:"max_score"`
	LivesLeft   int      `json:"lives_left"`
	Characters  int      `json:"characters"`
	Perfects    int      `json:"perfects"`
	Acceptables int      `json:"acceptables"`
	Misses      int      `json:"misses"`
	Timeouts    int      `json:"timeouts"`
	Signals     []string `json:"signals"`
}

func (a *Autoplay) Play(s *engine.Session, duration float64) RunResult {
	res := RunResult{}
	dt := 1 / a.FrameRate
	deadline := duration + 30
	attempted := -1 // event index of the last stroke we drew

	for now := 0.0; ; now += dt {
		audio := engine.AudioState{Position: now, Playing: now < duration}
		evs := s.Advance(now, audio, false)
		a.record(&res, evs)
		if slices.Contains(evs, engine.EventCharacterCompleted) {
			// Timeout on a character's last stroke; move along.
			if err := s.NextCharacter(); err != nil {
				PanicF("next character: %s", err.Error())
			}
		}
		if s.Over() || s.Completed() {
			break
		}
		if now > deadline {
			res.Outcome = "stalled"
			break
		}

		w, ok := s.CurrentWindow()
		if !ok || !w.IsActive(now) || now < w.Arrival || s.EventIndex() == attempted {
			continue
		}
		attempted = s.EventIndex()
		if a.rng.Float64() < a.SkipChance {
			continue // let the tick loop time it out
		}
		target, ok := s.CurrentStroke()
		if !ok {
			continue
		}

		out, evs := s.ResolveStroke(a.draw(target), target)
		a.record(&res, evs)
		switch out {
		case engine.Perfect:
			res.Perfects++
		case engine.Acceptable:
			res.Acceptables++
		default:
			res.Misses++
		}
		if s.Over() {
			break
		}
		done, evs := s.AdvanceStroke()
		a.record(&res, evs)
		if done {
			if err := s.NextCharacter(); err != nil {
				PanicF("next character: %s", err.Error())
			}
		}
	}

	if res.Outcome == "" {
		if s.Completed() {
			res.Outcome = "completed"
		} else {
			res.Outcome = "game_over"
		}
	}
	res.Score = s.Score()
	res.MaxScore = s.MaxPossibleScore()
	res.LivesLeft = s.Lives()
	res.Characters = len(s.Sequence())
	return res
}

// draw copies the target stroke shifted by a random pen offset, which keeps
// the attempt's mean distance roughly equal to the offset length.
func (a *Autoplay) draw(target engine.Stroke) []engine.Vec {
	off := engine.Vec{
		X: a.rng.NormFloat64() * a.Jitter,
		Y: a.rng.NormFloat64() * a.Jitter,
	}
	drawn := make([]engine.Vec, len(target))
	for i, p := range target {
		drawn[i] = engine.Vec{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return drawn
}

func (a *Autoplay) record(res *RunResult, evs []engine.Event) {
	for _, ev := range evs {
		res.Signals = append(res.Signals, ev.String())
		if ev == engine.EventStrokeMissed {
			res.Timeouts++
		}
	}
}
