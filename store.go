package main

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"beatkanji/engine"
)

// The kanji database is generated offline from KanjiVG. Layout:
//
//	kanji(id TEXT PRIMARY KEY, char TEXT, stroke_count INTEGER, keyword TEXT)
//	kanji_tags(kanji_id TEXT, tag TEXT)
//	strokes(kanji_id TEXT, stroke_index INTEGER, stroke_id TEXT, points BLOB)
//
// Each stroke blob is 64 sampled points, x/y float32 little-endian,
// normalized to the 0..1 square.
const strokeBlobSamples = 64

type KanjiStore struct {
	db    *sql.DB
	cache map[string][]engine.Stroke
}

func OpenKanjiStore(path string) (*KanjiStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &KanjiStore{db: db, cache: make(map[string][]engine.Stroke)}, nil
}

func (st *KanjiStore) Close() error { return st.db.Close() }

// Characters lists the catalog, optionally restricted to characters carrying
// at least one of the given tags (n1..n5, hiragana, katakana).
func (st *KanjiStore) Characters(tags []string) ([]*engine.Character, error) {
	query := `SELECT id, char, stroke_count, COALESCE(keyword, '') FROM kanji`
	var args []any
	if len(tags) > 0 {
		marks := strings.Repeat("?,", len(tags))
		query += ` WHERE id IN (SELECT kanji_id FROM kanji_tags WHERE tag IN (` + marks[:len(marks)-1] + `))`
		for _, t := range tags {
			args = append(args, t)
		}
	}
	query += ` ORDER BY id`

	rows, err := st.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kanji: %w", err)
	}
	defer rows.Close()

	var chars []*engine.Character
	byID := make(map[string]*engine.Character)
	for rows.Next() {
		ch := &engine.Character{}
		if err := rows.Scan(&ch.ID, &ch.Glyph, &ch.StrokeCount, &ch.Keyword); err != nil {
			return nil, fmt.Errorf("list kanji: %w", err)
		}
		chars = append(chars, ch)
		byID[ch.ID] = ch
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list kanji: %w", err)
	}

	tagRows, err := st.db.Query(`SELECT kanji_id, tag FROM kanji_tags`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var id, tag string
		if err := tagRows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		if ch, ok := byID[id]; ok {
			ch.Tags = append(ch.Tags, tag)
		}
	}
	return chars, tagRows.Err()
}

// Strokes resolves and caches a character's stroke geometry. Implements
// engine.StrokeResolver.
func (st *KanjiStore) Strokes(characterID string) ([]engine.Stroke, error) {
	if strokes, ok := st.cache[characterID]; ok {
		return strokes, nil
	}
	rows, err := st.db.Query(
		`SELECT points FROM strokes WHERE kanji_id = ? ORDER BY stroke_index`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("strokes for %s: %w", characterID, err)
	}
	defer rows.Close()

	var strokes []engine.Stroke
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("strokes for %s: %w", characterID, err)
		}
		stroke, err := decodeStrokeBlob(blob)
		if err != nil {
			return nil, fmt.Errorf("strokes for %s: %w", characterID, err)
		}
		strokes = append(strokes, stroke)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("strokes for %s: %w", characterID, err)
	}
	if len(strokes) == 0 {
		return nil, fmt.Errorf("strokes for %s: not in database", characterID)
	}
	st.cache[characterID] = strokes
	return strokes, nil
}

func decodeStrokeBlob(blob []byte) (engine.Stroke, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("stroke blob length %d is not a whole number of points", len(blob))
	}
	stroke := make(engine.Stroke, 0, len(blob)/8)
	for off := 0; off < len(blob); off += 8 {
		x := math.Float32frombits(binary.LittleEndian.Uint32(blob[off:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(blob[off+4:]))
		stroke = append(stroke, engine.Vec{X: float64(x), Y: float64(y)})
	}
	return stroke, nil
}
