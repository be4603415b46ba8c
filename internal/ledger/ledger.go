// Package ledger holds the attendance check-in/check-out rules. Functions
// never mutate the slice they are given; they return a new ledger.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"biopay/internal/models"
	"biopay/pkg/clockfmt"
)

var ErrNoOpenEntry = errors.New("no active check-in found for today")

// IDFunc generates attendance entry ids.
type IDFunc func() string

// CheckIn opens a new entry dated and stamped from now and prepends it, so
// the ledger stays newest-first. An already open entry for the same day is
// left alone.
func CheckIn(entries []models.AttendanceEntry, employeeID string, now time.Time, newID IDFunc) ([]models.AttendanceEntry, models.AttendanceEntry) {
	entry := models.AttendanceEntry{
		ID:         newID(),
		EmployeeID: employeeID,
		Date:       clockfmt.FormatDate(now),
		CheckIn:    clockfmt.FormatClock(now),
		TotalHours: 0,
		Status:     models.StatusPresent,
	}

	out := make([]models.AttendanceEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	return out, entry
}

// OpenEntry finds the entry a check-out on date would close: the open entry
// with the latest check-in time. Equal check-in times resolve to the one that
// comes first in the ledger.
func OpenEntry(entries []models.AttendanceEntry, employeeID, date string) (int, bool) {
	best, bestMinutes := -1, -1
	for i := range entries {
		e := &entries[i]
		if e.EmployeeID != employeeID || e.Date != date || !e.IsOpen() {
			continue
		}
		minutes := clockfmt.ParseTimeToMinutes(e.CheckIn)
		if minutes > bestMinutes {
			best, bestMinutes = i, minutes
		}
	}
	return best, best >= 0
}

// CheckOut closes today's open entry for employeeID. On error the returned
// ledger is the input unchanged.
func CheckOut(entries []models.AttendanceEntry, employeeID string, now time.Time) ([]models.AttendanceEntry, models.AttendanceEntry, error) {
	idx, ok := OpenEntry(entries, employeeID, clockfmt.FormatDate(now))
	if !ok {
		return entries, models.AttendanceEntry{}, ErrNoOpenEntry
	}

	inMinutes, err := clockfmt.ParseClock(entries[idx].CheckIn)
	if err != nil {
		return entries, models.AttendanceEntry{}, fmt.Errorf("entry %s: %w", entries[idx].ID, err)
	}

	diff := max(0, clockfmt.MinutesOf(now)-inMinutes)

	out := append([]models.AttendanceEntry(nil), entries...)
	out[idx].CheckOut = clockfmt.FormatClock(now)
	out[idx].TotalHours = RoundHours(float64(diff) / 60)
	return out, out[idx], nil
}

// ForEmployee returns one employee's entries in ledger order.
func ForEmployee(entries []models.AttendanceEntry, employeeID string) []models.AttendanceEntry {
	var out []models.AttendanceEntry
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEmployee drops every entry owned by employeeID and reports the ids
// it removed.
func RemoveEmployee(entries []models.AttendanceEntry, employeeID string) ([]models.AttendanceEntry, []string) {
	out := make([]models.AttendanceEntry, 0, len(entries))
	var removed []string
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			removed = append(removed, e.ID)
			continue
		}
		out = append(out, e)
	}
	return out, removed
}

// RoundHours rounds to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
