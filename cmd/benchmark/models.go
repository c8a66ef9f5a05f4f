package main

import "time"

type BenchResult struct {
	Sample   string
	Strategy string
	Duration time.Duration
	Valid    bool
	Cached   bool
	Size     int
	Err      error
}

type Agg struct {
	Count      int
	Valid      int
	Cached     int
	Failed     int
	Total      time.Duration
	TotalBytes int
}
