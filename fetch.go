package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/levigross/grequests"
)

const fetchTimeout = 2 * time.Minute

// ContentToken authorizes against private content mirrors; empty for the
// public server.
var ContentToken = os.Getenv("BEATKANJI_TOKEN")

// ContentIndex is the manifest a content server publishes at /index.json.
type ContentIndex struct {
	Database string    `json:"database"` // kanji sqlite file, e.g. "kanji.sqlite"
	Songs    []SongRef `json:"songs"`
}

type SongRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

func requestOptions() *grequests.RequestOptions {
	headers := map[string]string{"Accept": "application/json"}
	if ContentToken != "" {
		headers["Authorization"] = "Bearer " + ContentToken
	}
	return &grequests.RequestOptions{
		Headers:        headers,
		RequestTimeout: fetchTimeout,
	}
}

// FetchContent downloads the content index, the kanji database, and every
// listed song beatmap into dir. Existing files are kept.
func FetchContent(baseURL, dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "songs"), 0o777); err != nil {
		return err
	}

	Throttle()
	resp, err := grequests.Get(baseURL+"/index.json", grequests.FromRequestOptions(requestOptions()))
	if err != nil {
		return fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("fetch index: status %d", resp.StatusCode)
	}
	var index ContentIndex
	if err := resp.JSON(&index); err != nil {
		return fmt.Errorf("fetch index: %w", err)
	}

	if index.Database != "" {
		if err := fetchFile(baseURL+"/"+index.Database, filepath.Join(dir, index.Database)); err != nil {
			return err
		}
	}

	wg := sync.WaitGroup{}
	for _, song := range index.Songs {
		if song.Filename == "" {
			continue
		}
		dest := filepath.Join(dir, "songs", song.Filename)
		if _, err := os.Stat(dest); err == nil {
			fmt.Printf("%s already downloaded\n", song.Filename)
			continue
		}
		wg.Add(1)
		Run(func() {
			defer wg.Done()
			if err := fetchFile(baseURL+"/songs/"+song.Filename, dest); err != nil {
				Fail(filepath.Join(dir, "_skips"), song.Filename, err.Error())
			}
		})
	}
	wg.Wait()
	fmt.Printf("content synced to %s (%d songs)\n", dir, len(index.Songs))
	return nil
}

func fetchFile(url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	done := AcquireFetch()
	defer done()
	Throttle()

	fmt.Printf("downloading %s\n", url)
	resp, err := grequests.Get(url, grequests.FromRequestOptions(requestOptions()))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	if err := resp.DownloadToFile(dest); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
