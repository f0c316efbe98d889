package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"beatkanji/beatmap"
	"beatkanji/engine"
)

type SessionReport struct {
	Song       string      `json:"song"`
	Title      string      `json:"title,omitempty"`
	Difficulty int         `json:"difficulty"`
	Seed       uint64      `json:"seed"`
	Runs       []RunResult `json:"runs"`
}

func main() {
	song := flag.String("song", "", "beatmap JSON file")
	db := flag.String("db", "kanji.sqlite", "kanji database")
	tags := flag.String("tags", "", "comma-separated character tags (n5,hiragana,...)")
	difficulty := flag.Int("difficulty", 2, "difficulty 1..3")
	seed := flag.Uint64("seed", 1, "base random seed")
	lives := flag.Int("lives", engine.DefaultMaxLives, "starting lives")
	jitter := flag.Float64("jitter", 0.03, "simulated pen offset")
	skip := flag.Float64("skip", 0.0, "chance to let a stroke time out")
	runs := flag.Int("runs", 1, "sessions to simulate")
	out := flag.String("out", "", "write a JSON report here")
	fetchURL := flag.String("fetch", "", "sync content from this base URL first")
	content := flag.String("content", "content", "content directory for -fetch")
	flag.Parse()

	if *fetchURL != "" {
		if err := FetchContent(*fetchURL, *content); err != nil {
			panic(err)
		}
		if *song == "" {
			return
		}
	}
	if *song == "" {
		fmt.Println("no -song given")
		flag.Usage()
		os.Exit(2)
	}

	bm, err := beatmap.DecodeFile(*song)
	if err != nil {
		panic(err)
	}

	store, err := OpenKanjiStore(*db)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	var tagList []string
	if *tags != "" {
		tagList = strings.Split(*tags, ",")
	}
	pool, err := store.Characters(tagList)
	if err != nil {
		panic(err)
	}
	if len(pool) == 0 {
		PanicF("no characters match tags %q", *tags)
	}
	fmt.Printf("%s: %d notes, %d characters in pool\n", bm.Meta.Title, len(bm.Notes), len(pool))

	report := SessionReport{
		Song:       *song,
		Title:      bm.Meta.Title,
		Difficulty: *difficulty,
		Seed:       *seed,
	}
	for run := range *runs {
		runSeed := *seed + uint64(run)
		sess, err := engine.NewSession(pool, bm, *difficulty, store,
			engine.WithSeed(runSeed),
			engine.WithMaxLives(*lives),
		)
		if err != nil {
			panic(err)
		}
		result := NewAutoplay(runSeed, *jitter, *skip).Play(sess, bm.Meta.TotalDuration)
		fmt.Printf("run %d: %s, score %d/%d, %d lives left, %d timeouts\n",
			run, result.Outcome, result.Score, result.MaxScore, result.LivesLeft, result.Timeouts)
		report.Runs = append(report.Runs, result)
	}

	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			panic(err)
		}
		data, _ := json.MarshalIndent(report, "", "\t")
		if _, err := file.Write(data); err != nil {
			panic(err)
		}
		file.Close()
	}
}
