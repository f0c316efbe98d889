package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"beatkanji/beatmap"
)

const (
	DefaultMaxLives = 4

	// LifeLossCooldown stops a burst of consecutive misses from draining
	// several lives inside the same beat.
	LifeLossCooldown = 1.0

	// Song-completion detection against the reported audio position.
	songEndTolerance = 0.35
	songStopSlack    = 1.0
)

// AudioState is the playback signal sampled by the caller each tick. Position
// is the actual audio position in seconds, not wall clock.
type AudioState struct {
	Position float64
	Playing  bool
}

type Option func(*sessionConfig)

type sessionConfig struct {
	before   float64
	after    float64
	gap      float64
	maxLives int
	strict   bool
	seed     uint64
	seeded   bool
}

// WithSeed fixes the random source so selection and bonus assignment are
// reproducible.
func WithSeed(seed uint64) Option {
	return func(c *sessionConfig) { c.seed = seed; c.seeded = true }
}

// WithStrict turns internal invariant violations into errors instead of
// silently skipping. Tests run strict; production runs lenient.
func WithStrict(strict bool) Option {
	return func(c *sessionConfig) { c.strict = strict }
}

func WithMaxLives(n int) Option {
	return func(c *sessionConfig) { c.maxLives = n }
}

func WithWindow(before, after float64) Option {
	return func(c *sessionConfig) { c.before = before; c.after = after }
}

func WithCharacterGap(gap float64) Option {
	return func(c *sessionConfig) { c.gap = gap }
}

// Session owns all mutable play state for one run through a song. It is
// single-owner and not safe for concurrent use; drive it from the one
// frame-update goroutine and stop calling Advance to abandon it.
type Session struct {
	cfg      sessionConfig
	resolver StrokeResolver
	meta     beatmap.Meta

	seq    []*Character
	notes  []beatmap.Note
	events []StrokeEvent

	score        int
	lives        int
	now          float64
	charIndex    int
	strokeIndex  int
	eventIndex   int
	lastLifeLoss float64

	strokes   []Stroke // current character, resolved
	over      bool
	completed bool
}

// NewSession filters the beatmap for the difficulty, selects and schedules
// the character sequence, and resolves the first character's strokes.
func NewSession(pool []*Character, bm *beatmap.Beatmap, difficulty int, resolver StrokeResolver, opts ...Option) (*Session, error) {
	cfg := sessionConfig{
		before:   DefaultWindowBefore,
		after:    DefaultWindowAfter,
		gap:      DefaultCharacterGap,
		maxLives: DefaultMaxLives,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = uint64(time.Now().UnixNano())
	}
	if cfg.maxLives < 1 {
		return nil, fmt.Errorf("engine: max lives must be at least 1, got %d", cfg.maxLives)
	}

	rng := rand.New(rand.NewPCG(cfg.seed, 0))

	sel := NewSelector(rng)
	sel.Gap = cfg.gap
	seq, kept := sel.Select(pool, bm.NotesForDifficulty(difficulty))

	events, err := NewScheduler(rng).Schedule(kept, seq)
	if err != nil && cfg.strict {
		return nil, err
	}

	s := &Session{
		cfg:          cfg,
		resolver:     resolver,
		meta:         bm.Meta,
		seq:          seq,
		notes:        kept,
		events:       events,
		lives:        cfg.maxLives,
		lastLifeLoss: math.Inf(-1),
	}
	if err := s.loadCharacter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadCharacter() error {
	s.strokes = nil
	if s.charIndex >= len(s.seq) {
		return nil
	}
	ch := s.seq[s.charIndex]
	strokes, err := s.resolver.Strokes(ch.ID)
	if err != nil {
		if s.cfg.strict {
			return fmt.Errorf("engine: resolve strokes for %q: %w", ch.ID, err)
		}
		// No backing data: treat the sequence as exhausted rather than
		// halting a live session.
		s.seq = s.seq[:s.charIndex]
		if s.eventIndex < len(s.events) {
			s.events = s.events[:s.eventIndex]
		}
		return nil
	}
	if len(strokes) != ch.StrokeCount && s.cfg.strict {
		return fmt.Errorf("engine: character %q resolved %d strokes, catalog says %d", ch.ID, len(strokes), ch.StrokeCount)
	}
	s.strokes = strokes
	return nil
}

// Advance runs one tick at the given audio-derived time. now must be
// non-decreasing; earlier values are ignored. Returns any signals fired.
func (s *Session) Advance(now float64, audio AudioState, drawing bool) []Event {
	if s.over || s.completed {
		return nil
	}
	if now > s.now {
		s.now = now
	}
	var evs []Event

	if s.charIndex >= len(s.seq) {
		if s.eventIndex >= len(s.events) && s.songFinished(audio) {
			s.completed = true
			evs = append(evs, EventSongCompleted)
		}
		return evs
	}

	// One expired window resolves per tick; the next tick picks up the
	// following stroke if it too has lapsed.
	if w, ok := s.CurrentWindow(); ok && s.now > w.End() && !drawing {
		evs = append(evs, EventStrokeMissed)
		evs = s.loseLife(evs)
		if !s.over {
			_, evs = s.advanceStroke(evs)
		}
	}
	return evs
}

// ResolveStroke scores a completed drawn path against the target stroke and
// applies score, life, and bonus effects. It does not advance the stroke
// cursor; the interaction layer calls AdvanceStroke once feedback is done.
func (s *Session) ResolveStroke(drawn []Vec, target Stroke) (Outcome, []Event) {
	if s.over || s.completed {
		return Miss, nil
	}
	out := Evaluate(drawn, target)
	return out, s.applyOutcome(out, nil)
}

// ResolvePartialStroke is ResolveStroke for an attempt cut short by window
// expiry while the pen was still down.
func (s *Session) ResolvePartialStroke(drawn []Vec, target Stroke) (Outcome, []Event) {
	if s.over || s.completed {
		return Miss, nil
	}
	out := EvaluatePartial(drawn, target)
	return out, s.applyOutcome(out, nil)
}

func (s *Session) applyOutcome(out Outcome, evs []Event) []Event {
	if out == Miss {
		return s.loseLife(evs)
	}
	s.score += out.Points()
	if out == Perfect && s.lives < s.cfg.maxLives {
		if ev, ok := s.currentEvent(); ok && ev.Bonus {
			s.lives++
			evs = append(evs, EventHealthRestored)
		}
	}
	return evs
}

// AdvanceStroke moves to the next stroke of the current character and
// reports whether the character is now complete. On completion the caller is
// expected to call NextCharacter.
func (s *Session) AdvanceStroke() (bool, []Event) {
	if s.over || s.completed {
		return false, nil
	}
	return s.advanceStroke(nil)
}

func (s *Session) advanceStroke(evs []Event) (bool, []Event) {
	s.strokeIndex++
	s.eventIndex++
	if s.charIndex < len(s.seq) && s.strokeIndex >= s.seq[s.charIndex].StrokeCount {
		evs = append(evs, EventCharacterCompleted)
		return true, evs
	}
	return false, evs
}

// NextCharacter advances to the next character in the sequence, resetting
// the stroke cursor and resolving the new character's geometry.
func (s *Session) NextCharacter() error {
	s.charIndex++
	s.strokeIndex = 0
	return s.loadCharacter()
}

func (s *Session) loseLife(evs []Event) []Event {
	if s.now-s.lastLifeLoss < LifeLossCooldown {
		return evs
	}
	s.lastLifeLoss = s.now
	if s.lives > 0 {
		s.lives--
	}
	evs = append(evs, EventLifeLost)
	if s.lives == 0 {
		s.over = true
		evs = append(evs, EventGameOver)
	}
	return evs
}

func (s *Session) songFinished(audio AudioState) bool {
	d := s.meta.TotalDuration
	if d <= 0 {
		return true
	}
	if audio.Position >= d-songEndTolerance {
		return true
	}
	if !audio.Playing && s.now >= d-songStopSlack {
		return true
	}
	return false
}

func (s *Session) currentEvent() (StrokeEvent, bool) {
	if s.eventIndex >= len(s.events) {
		return StrokeEvent{}, false
	}
	return s.events[s.eventIndex], true
}

// CurrentWindow is the timing window for the stroke under the cursor.
func (s *Session) CurrentWindow() (Window, bool) {
	ev, ok := s.currentEvent()
	if !ok {
		return Window{}, false
	}
	if s.charIndex < len(s.seq) && s.strokeIndex >= s.seq[s.charIndex].StrokeCount {
		// Character finished, next one not requested yet.
		return Window{}, false
	}
	if ev.CharIndex != s.charIndex || ev.Stroke != s.strokeIndex {
		// Scheduling drifted from the cursor; ignore in lenient mode.
		if s.cfg.strict {
			panic(fmt.Sprintf("engine: event cursor (%d,%d) does not match stroke cursor (%d,%d)",
				ev.CharIndex, ev.Stroke, s.charIndex, s.strokeIndex))
		}
		return Window{}, false
	}
	return Window{Arrival: ev.BeatTime, Before: s.cfg.before, After: s.cfg.after}, true
}

// CurrentStroke is the target geometry for the stroke under the cursor.
func (s *Session) CurrentStroke() (Stroke, bool) {
	if s.strokeIndex >= len(s.strokes) {
		return nil, false
	}
	return s.strokes[s.strokeIndex], true
}

func (s *Session) CurrentCharacter() (*Character, bool) {
	if s.charIndex >= len(s.seq) {
		return nil, false
	}
	return s.seq[s.charIndex], true
}

// MaxPossibleScore is the score of an all-Perfect run. Falls back to the
// sequence's stroke counts if scheduling produced no events.
func (s *Session) MaxPossibleScore() int {
	if len(s.events) > 0 {
		return len(s.events) * PerfectPoints
	}
	total := 0
	for _, ch := range s.seq {
		total += ch.StrokeCount
	}
	return total * PerfectPoints
}

func (s *Session) CharIndex() int   { return s.charIndex }
func (s *Session) StrokeIndex() int { return s.strokeIndex }
func (s *Session) EventIndex() int  { return s.eventIndex }

func (s *Session) Score() int    { return s.score }
func (s *Session) Lives() int    { return s.lives }
func (s *Session) MaxLives() int { return s.cfg.maxLives }
func (s *Session) Now() float64  { return s.now }

func (s *Session) Over() bool      { return s.over }
func (s *Session) Completed() bool { return s.completed }

func (s *Session) Sequence() []*Character   { return s.seq }
func (s *Session) Scheduled() []StrokeEvent { return s.events }
func (s *Session) Notes() []beatmap.Note    { return s.notes }
