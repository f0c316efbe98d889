package engine

// Stroke is one continuous pen path of a character, as an ordered point
// sequence in the normalized unit square.
type Stroke []Vec

func (s Stroke) Length() float64 { return ArcLength(s) }

func (s Stroke) Resample(n int) Stroke { return Stroke(Resample(s, n)) }

// Character is one drawable glyph. Stroke geometry is resolved lazily by a
// StrokeResolver; until then only StrokeCount is known.
type Character struct {
	ID          string
	Glyph       string
	Keyword     string
	StrokeCount int
	Tags        []string
}

func (c *Character) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StrokeResolver loads the stroke geometry for a character on demand. The
// session assumes the backing data is resident by the time a character comes
// up; a resolver backed by slow storage is expected to preload ahead.
type StrokeResolver interface {
	Strokes(characterID string) ([]Stroke, error)
}
