package ledger

import (
	"fmt"
	"testing"
	"time"

	"biopay/internal/models"
	"biopay/pkg/clockfmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, time.UTC)
}

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a-%d", n)
	}
}

func TestCheckIn(t *testing.T) {
	existing := []models.AttendanceEntry{{ID: "old", EmployeeID: "w2", Date: "2026-10-13", CheckIn: "08:00 AM", CheckOut: "05:00 PM", TotalHours: 9, Status: models.StatusPresent}}

	got, entry := CheckIn(existing, "w1", at(14, 8, 30), sequentialIDs())

	require.Len(t, got, 2)
	assert.Equal(t, entry, got[0], "new entry is prepended")
	assert.Equal(t, "a-1", entry.ID)
	assert.Equal(t, "w1", entry.EmployeeID)
	assert.Equal(t, "2026-10-14", entry.Date)
	assert.Equal(t, "08:30 AM", entry.CheckIn)
	assert.True(t, entry.IsOpen())
	assert.Equal(t, 0.0, entry.TotalHours)
	assert.Equal(t, models.StatusPresent, entry.Status)
	assert.Len(t, existing, 1, "input is not modified")
}

func TestCheckIn_AllowsSecondOpenEntry(t *testing.T) {
	ids := sequentialIDs()
	entries, _ := CheckIn(nil, "w1", at(14, 8, 0), ids)
	entries, _ = CheckIn(entries, "w1", at(14, 9, 0), ids)

	open := 0
	for _, e := range entries {
		if e.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 2, open)
}

func TestCheckInCheckOut_RoundTrip(t *testing.T) {
	cases := []struct {
		in, out   time.Time
		wantHours float64
	}{
		{at(14, 8, 0), at(14, 17, 0), 9},
		{at(14, 8, 30), at(14, 8, 30), 0},
		{at(14, 9, 0), at(14, 9, 20), 0.33},
		{at(14, 11, 45), at(14, 13, 5), 1.33},
		{at(14, 0, 10), at(14, 23, 59), 23.82},
	}
	for _, c := range cases {
		entries, opened := CheckIn(nil, "w1", c.in, sequentialIDs())
		got, closed, err := CheckOut(entries, "w1", c.out)
		require.NoError(t, err)

		assert.Equal(t, opened.ID, closed.ID)
		assert.Equal(t, c.wantHours, closed.TotalHours)
		assert.Equal(t, clockfmt.FormatClock(c.out), closed.CheckOut)
		assert.Equal(t, models.StatusPresent, closed.Status)
		assert.Equal(t, closed, got[0])
		assert.True(t, entries[0].IsOpen(), "input ledger keeps the open entry")
	}
}

func TestCheckOut_NoOpenEntry(t *testing.T) {
	entries := []models.AttendanceEntry{
		{ID: "a1", EmployeeID: "w2", Date: "2026-10-14", CheckIn: "08:00 AM", Status: models.StatusPresent},
		{ID: "a2", EmployeeID: "w1", Date: "2026-10-13", CheckIn: "08:00 AM", Status: models.StatusPresent},
		{ID: "a3", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "08:00 AM", CheckOut: "10:00 AM", TotalHours: 2, Status: models.StatusPresent},
	}
	before := append([]models.AttendanceEntry(nil), entries...)

	got, closed, err := CheckOut(entries, "w1", at(14, 18, 0))

	assert.ErrorIs(t, err, ErrNoOpenEntry)
	assert.Equal(t, models.AttendanceEntry{}, closed)
	assert.Equal(t, before, got)
	assert.Equal(t, before, entries)
}

func TestCheckOut_ClockEarlierThanCheckIn(t *testing.T) {
	entries := []models.AttendanceEntry{{ID: "a1", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "03:00 PM", Status: models.StatusPresent}}

	_, closed, err := CheckOut(entries, "w1", at(14, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, closed.TotalHours)
	assert.Equal(t, "02:00 PM", closed.CheckOut)
}

func TestCheckOut_ClosesMostRecentlyOpened(t *testing.T) {
	// Oldest-first ordering: the first match in collection order is not the
	// latest check-in.
	entries := []models.AttendanceEntry{
		{ID: "early", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "08:00 AM", Status: models.StatusPresent},
		{ID: "late", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "01:00 PM", Status: models.StatusPresent},
	}

	got, closed, err := CheckOut(entries, "w1", at(14, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, "late", closed.ID)
	assert.Equal(t, 2.0, closed.TotalHours)
	assert.True(t, got[0].IsOpen())

	got, closed, err = CheckOut(got, "w1", at(14, 16, 0))
	require.NoError(t, err)
	assert.Equal(t, "early", closed.ID)
	assert.Equal(t, 8.0, closed.TotalHours)

	_, _, err = CheckOut(got, "w1", at(14, 17, 0))
	assert.ErrorIs(t, err, ErrNoOpenEntry)
}

func TestCheckOut_TieResolvesToLedgerOrder(t *testing.T) {
	entries := []models.AttendanceEntry{
		{ID: "first", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "08:00 AM", Status: models.StatusPresent},
		{ID: "second", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "08:00 AM", Status: models.StatusPresent},
	}
	_, closed, err := CheckOut(entries, "w1", at(14, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, "first", closed.ID)
}

func TestCheckOut_MalformedCheckIn(t *testing.T) {
	entries := []models.AttendanceEntry{{ID: "a1", EmployeeID: "w1", Date: "2026-10-14", CheckIn: "morning", Status: models.StatusPresent}}

	got, _, err := CheckOut(entries, "w1", at(14, 17, 0))
	assert.ErrorIs(t, err, clockfmt.ErrMalformedTime)
	assert.True(t, got[0].IsOpen())
}

func TestCheckOut_NextDayDoesNotCloseYesterday(t *testing.T) {
	entries, _ := CheckIn(nil, "w1", at(14, 22, 0), sequentialIDs())
	_, _, err := CheckOut(entries, "w1", at(15, 6, 0))
	assert.ErrorIs(t, err, ErrNoOpenEntry)
}

func TestForEmployeeAndRemoveEmployee(t *testing.T) {
	entries := []models.AttendanceEntry{
		{ID: "a1", EmployeeID: "w1"},
		{ID: "a2", EmployeeID: "w2"},
		{ID: "a3", EmployeeID: "w1"},
	}

	mine := ForEmployee(entries, "w1")
	require.Len(t, mine, 2)
	assert.Equal(t, "a1", mine[0].ID)
	assert.Equal(t, "a3", mine[1].ID)

	rest, removed := RemoveEmployee(entries, "w1")
	assert.Equal(t, []string{"a1", "a3"}, removed)
	require.Len(t, rest, 1)
	assert.Equal(t, "a2", rest[0].ID)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.33, RoundHours(20.0/60))
	assert.Equal(t, 1.67, RoundHours(100.0/60))
	assert.Equal(t, 8.0, RoundHours(8))
}
