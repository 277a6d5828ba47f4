package views

import (
	"strings"
	"time"
)

// QuickAdd is the result of parsing a quick-add line
type QuickAdd struct {
	Text    string
	Tag     string
	DueDate *time.Time
}

// ParseQuickAdd parses a task line with inline @tag and due: markers,
// e.g. "Buy groceries @Errands due:tomorrow". The first @word sets the
// tag; unrecognized markers stay part of the task text.
func ParseQuickAdd(text string) QuickAdd {
	var parsed QuickAdd

	words := strings.Fields(text)
	var textParts []string

	for _, word := range words {
		switch {
		// Tag (@Errands, @Work, etc.)
		case strings.HasPrefix(word, "@") && len(word) > 1:
			if parsed.Tag == "" {
				parsed.Tag = strings.TrimPrefix(word, "@")
			} else {
				textParts = append(textParts, word)
			}

		// Due date (due:tomorrow, due:friday, due:2026-01-15)
		case strings.HasPrefix(strings.ToLower(word), "due:"):
			dateStr := strings.TrimPrefix(strings.ToLower(word), "due:")
			if parsedDate := ParseNaturalDate(dateStr); parsedDate != nil {
				parsed.DueDate = parsedDate
			} else {
				textParts = append(textParts, word)
			}

		default:
			textParts = append(textParts, word)
		}
	}

	parsed.Text = strings.Join(textParts, " ")
	return parsed
}

// ParseNaturalDate resolves a natural-language date string to a
// concrete due date at end of day. Returns nil when it can't.
func ParseNaturalDate(s string) *time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	switch strings.ToLower(s) {
	case "today":
		return &today
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t
	case "monday", "mon":
		return nextWeekday(time.Monday)
	case "tuesday", "tue":
		return nextWeekday(time.Tuesday)
	case "wednesday", "wed":
		return nextWeekday(time.Wednesday)
	case "thursday", "thu":
		return nextWeekday(time.Thursday)
	case "friday", "fri":
		return nextWeekday(time.Friday)
	case "saturday", "sat":
		return nextWeekday(time.Saturday)
	case "sunday", "sun":
		return nextWeekday(time.Sunday)
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t
	}

	// Try parsing as date
	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"01-02-2006",
		"Jan 2",
		"Jan 2, 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			// If no year, use current year
			if t.Year() == 0 {
				t = time.Date(now.Year(), t.Month(), t.Day(), 23, 59, 59, 0, now.Location())
			}
			return &t
		}
	}

	return nil
}

func nextWeekday(target time.Weekday) *time.Time {
	now := time.Now()
	t := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	for {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() == target {
			return &t
		}
	}
}
