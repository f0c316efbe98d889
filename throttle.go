package main

import (
	"sync"
	"time"
)

// Content servers hosting the song packs are small; stay polite.
const (
	requestsPerWindow    = 20
	throttleWindow       = time.Minute
	maxConcurrentFetches = 3
)

var ticker = time.NewTicker(throttleWindow / requestsPerWindow)
var recent []time.Time
var recentLock sync.Mutex

var fetchSlots = make(chan struct{}, maxConcurrentFetches)

func init() {
	for range maxConcurrentFetches {
		fetchSlots <- struct{}{}
	}
}

// AcquireFetch blocks until a download slot is free; call the returned
// function to release it.
func AcquireFetch() func() {
	<-fetchSlots
	return func() {
		fetchSlots <- struct{}{}
	}
}

// Throttle blocks until the sliding request window has room.
func Throttle() {
	for range ticker.C {
		recentLock.Lock()
		att := recent
		if len(att) < requestsPerWindow || time.Since(att[0]) > throttleWindow {
			att = append(att, time.Now())
			if len(att) > requestsPerWindow {
				att = att[1:]
			}
			recent = att
			recentLock.Unlock()
			return
		}
		recentLock.Unlock()
	}
	panic("throttle ticker stopped")
}
