package handlers

import (
	"errors"
	"time"
)

// Accepted layouts for reservation start instants. HTML datetime-local
// inputs send the first form, API clients tend to send RFC 3339.
var startLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseStartTime(raw string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable start time")
}
