package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule is a named collection of recurring weekly blocks
type Schedule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Blocks    []Block   `json:"blocks,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Block is one recurring weekly time slot belonging to a Schedule.
// Day must match a full weekday name exactly ("Monday", not "monday").
// StartTime and EndTime are wall-clock HH:MM strings; an end before the
// start means the block crosses midnight into the next day.
type Block struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Activity  string `json:"activity"`
	Location  string `json:"location,omitempty"`
	Tag       string `json:"tag,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ParseWeekday resolves a block's day name. The match is case-sensitive
// and only the seven full English names are recognized.
func ParseWeekday(day string) (time.Weekday, error) {
	wd, ok := weekdays[day]
	if !ok {
		return 0, fmt.Errorf("unrecognized day of week: %q", day)
	}
	return wd, nil
}

// ParseClock parses an HH:MM 24-hour wall-clock string
func ParseClock(s string) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed time of day %q", s)
	}
	h, err1 := strconv.Atoi(hs)
	m, err2 := strconv.Atoi(ms)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("malformed time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}
	return h, m, nil
}
