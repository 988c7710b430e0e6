package stamp

import (
	"fmt"
	"strings"
	"time"
)

// RunStartedAtEnv holds the instant a CI run started, for example 2025-12-23T19:58:12Z.
const RunStartedAtEnv = "GITHUB_RUN_STARTED_AT"

const (
	utcLayout   = "2006-01-02 15:04 UTC"
	localLayout = "2006-01-02 15:04"
)

var instantLayouts = isoLayouts()

// isoLayouts lists the extended and basic ISO-8601 date-time forms, most
// specific first: seconds, minutes or hours only, with a "Z", "±hh:mm",
// "±hhmm", "±hh" or no offset.
func isoLayouts() []string {
	zones := []string{"Z07:00", "Z0700", "Z07", ""}
	forms := []struct {
		date  string
		seps  []string
		times []string
	}{
		{date: "2006-01-02", seps: []string{"T", " "}, times: []string{"15:04:05.999999999", "15:04", "15"}},
		{date: "20060102", seps: []string{"T"}, times: []string{"150405.999999999", "1504", "15"}},
	}
	var layouts []string
	for _, form := range forms {
		for _, sep := range form.seps {
			for _, clock := range form.times {
				for _, zone := range zones {
					layouts = append(layouts, form.date+sep+clock+zone)
				}
			}
		}
	}
	return append(layouts, time.DateOnly, "20060102")
}

// FormatTimestamp formats runStartedAt with a UTC label when it is set and now
// otherwise. The wall-clock time of runStartedAt is kept as given.
// A malformed runStartedAt is an error; only an empty value falls back to now.
func FormatTimestamp(runStartedAt string, now time.Time) (string, error) {
	runStartedAt = strings.TrimSpace(runStartedAt)
	if runStartedAt == "" {
		return now.Format(localLayout), nil
	}
	t, err := parseInstant(runStartedAt)
	if err != nil {
		return "", err
	}
	return t.Format(utcLayout), nil
}

// parseInstant accepts ISO-8601 date-times with or without an offset.
// Values without an offset are read as UTC.
func parseInstant(value string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q is not an ISO-8601 instant", RunStartedAtEnv, value)
}
