// Package calendar implements the stateless date-selection menu.
//
// Every menu level is encoded entirely in the navigation token, so there is
// no server-side session: a user can reopen any level at any time and the
// process can restart between steps without losing anything.
//
// Token grammar:
//
//	year_<YYYY>
//	month_<YYYY>_<MM>
//	day_<YYYY>_<MM>_<DD>
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	monthsPerRow = 3
	daysPerRow   = 7
)

// Button is one pressable menu option carrying the next navigation token.
type Button struct {
	Label string
	Token string
}

// Menu is a transport-agnostic menu level; the webhook layer renders it as
// a Telegram inline keyboard.
type Menu struct {
	Prompt string
	Rows   [][]Button
}

// Step is the outcome of one navigation move: either the next menu to show
// or a terminal date selection, never both.
type Step struct {
	Menu *Menu
	Date *time.Time
}

// Entry returns the top menu: the current year and its two neighbors.
func Entry(now time.Time) Menu {
	year := now.UTC().Year()

	rows := make([][]Button, 0, 3)
	for y := year - 1; y <= year+1; y++ {
		rows = append(rows, []Button{{
			Label: strconv.Itoa(y),
			Token: fmt.Sprintf("year_%04d", y),
		}})
	}

	return Menu{Prompt: "Pick a year:", Rows: rows}
}

// Next maps a navigation token to the following step. It is a pure function
// of the token; malformed tokens return an error.
func Next(token string, now time.Time) (Step, error) {
	parts := strings.Split(token, "_")

	switch parts[0] {
	case "year":
		if len(parts) != 2 {
			return Step{}, fmt.Errorf("token %q: want year_<YYYY>", token)
		}
		year, err := parseComponent(parts[1], 1, 9999)
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		m := monthMenu(year)
		return Step{Menu: &m}, nil

	case "month":
		if len(parts) != 3 {
			return Step{}, fmt.Errorf("token %q: want month_<YYYY>_<MM>", token)
		}
		year, err := parseComponent(parts[1], 1, 9999)
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		month, err := parseComponent(parts[2], 1, 12)
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		m := dayMenu(year, time.Month(month))
		return Step{Menu: &m}, nil

	case "day":
		if len(parts) != 4 {
			return Step{}, fmt.Errorf("token %q: want day_<YYYY>_<MM>_<DD>", token)
		}
		year, err := parseComponent(parts[1], 1, 9999)
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		month, err := parseComponent(parts[2], 1, 12)
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		day, err := parseComponent(parts[3], 1, DaysIn(year, time.Month(month)))
		if err != nil {
			return Step{}, fmt.Errorf("token %q: %w", token, err)
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return Step{Date: &date}, nil
	}

	return Step{}, fmt.Errorf("token %q: unknown prefix", token)
}

// IsToken reports whether data looks like a navigation token.
func IsToken(data string) bool {
	return strings.HasPrefix(data, "year_") ||
		strings.HasPrefix(data, "month_") ||
		strings.HasPrefix(data, "day_")
}

// DaysIn returns the true number of days in the given month, leap years
// included. Day 0 of the next month normalizes to the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthMenu(year int) Menu {
	rows := make([][]Button, 0, 4)
	row := make([]Button, 0, monthsPerRow)

	for m := 1; m <= 12; m++ {
		row = append(row, Button{
			Label: fmt.Sprintf("%02d", m),
			Token: fmt.Sprintf("month_%04d_%02d", year, m),
		})
		if len(row) == monthsPerRow {
			rows = append(rows, row)
			row = make([]Button, 0, monthsPerRow)
		}
	}

	return Menu{Prompt: fmt.Sprintf("Pick a month of %d:", year), Rows: rows}
}

func dayMenu(year int, month time.Month) Menu {
	days := DaysIn(year, month)

	var rows [][]Button
	row := make([]Button, 0, daysPerRow)

	for d := 1; d <= days; d++ {
		row = append(row, Button{
			Label: fmt.Sprintf("%02d", d),
			Token: fmt.Sprintf("day_%04d_%02d_%02d", year, month, d),
		})
		if len(row) == daysPerRow {
			rows = append(rows, row)
			row = make([]Button, 0, daysPerRow)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return Menu{Prompt: fmt.Sprintf("Pick a day of %04d-%02d:", year, month), Rows: rows}
}

func parseComponent(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("component %q is not a number", s)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("component %d out of range [%d, %d]", n, min, max)
	}
	return n, nil
}

// Buttons flattens a menu into a single slice, mainly for tests.
func (m Menu) Buttons() []Button {
	var out []Button
	for _, row := range m.Rows {
		out = append(out, row...)
	}
	return out
}
