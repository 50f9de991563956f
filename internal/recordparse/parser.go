// Package recordparse extracts work records from arbitrary text produced by
// the structuring collaborator. The collaborator is a text generator with no
// output contract, so this package is the resilience boundary between it and
// structured storage: extraction never fails outward, and malformed input
// yields an empty slice rather than a partial or garbage record.
package recordparse

import (
	"encoding/json"
	"strings"
	"time"

	"worklogbot/internal/domain"
)

// payload mirrors the JSON object shape the structuring prompt requests.
// All fields are optional; defaults are applied during normalization.
type payload struct {
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	ObjectName string   `json:"object_name"`
	Location   string   `json:"location"`
	WorkDone   string   `json:"work_done"`
	Workers    []string `json:"workers"`
	Income     float64  `json:"income"`
}

// Records extracts a normalized record slice from s. The input is expected
// to contain a JSON array, possibly wrapped in prose: the first balanced
// [...] span is tried first, then the whole string. Anything unparseable
// yields an empty slice.
//
// Date and time carried in the payload are parsed best-effort only; the
// ingestion flow stamps both from its reference timestamp afterwards.
func Records(s string) []domain.WorkRecord {
	payloads := parseArray(s)

	records := make([]domain.WorkRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, p.normalize())
	}
	return records
}

func parseArray(s string) []payload {
	if span, ok := firstArraySpan(s); ok {
		var out []payload
		if err := json.Unmarshal([]byte(span), &out); err == nil {
			return out
		}
	}

	var out []payload
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &out); err == nil {
		return out
	}
	return nil
}

// firstArraySpan returns the first balanced [...] span in s. Brackets inside
// JSON string literals (and escaped quotes inside those) are ignored.
func firstArraySpan(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func (p payload) normalize() domain.WorkRecord {
	name := strings.TrimSpace(p.ObjectName)
	if name == "" {
		name = domain.DefaultObjectName
	}

	income := p.Income
	if income < 0 {
		income = 0
	}

	workers := p.Workers
	if workers == nil {
		workers = []string{}
	}

	// Proposed date is carried through for visibility only; it is overridden
	// by the reference timestamp before persistence.
	date, _ := time.ParseInLocation(time.DateOnly, strings.TrimSpace(p.Date), time.UTC)

	return domain.WorkRecord{
		Date:       date,
		Time:       strings.TrimSpace(p.Time),
		ObjectName: name,
		Location:   strings.TrimSpace(p.Location),
		WorkDone:   strings.TrimSpace(p.WorkDone),
		Workers:    workers,
		Income:     income,
	}
}
