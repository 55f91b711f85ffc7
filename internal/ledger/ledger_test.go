package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(memberID uuid.UUID, aidType string, amount float64, completed, ignored bool) Entry {
	return Entry{
		EventID:   uuid.New(),
		MemberID:  memberID,
		AidType:   aidType,
		Amount:    amount,
		GivenOn:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Completed: completed,
		Ignored:   ignored,
	}
}

func TestTotalGiven_ExcludesIgnoredAndPending(t *testing.T) {
	member := uuid.New()
	entries := []Entry{
		entry(member, "living_expense", 1_000_000, true, false),
		entry(member, "living_expense", 500_000, true, true),  // ignored
		entry(member, "medical", 300_000, false, false),       // pending
	}

	assert.Equal(t, 1_000_000.0, TotalGiven(entries))
}

func TestTotalGiven_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalGiven(nil))
}

func TestSummarize(t *testing.T) {
	member := uuid.New()
	entries := []Entry{
		entry(member, "medical", 200_000, true, false),
		entry(member, "medical", 400_000, true, false),
		entry(member, "education", 1_500_000, true, false),
		entry(member, "education", 900_000, true, true), // ignored, excluded
	}

	summary := Summarize(entries)
	assert.Equal(t, 2_100_000.0, summary.TotalAmount)
	assert.Equal(t, 3, summary.TotalCount)

	medical, ok := summary.ByType["medical"]
	require.True(t, ok)
	assert.Equal(t, 600_000.0, medical.TotalAmount)
	assert.Equal(t, 2, medical.Count)
	assert.Equal(t, 300_000.0, medical.Average)

	education := summary.ByType["education"]
	assert.Equal(t, 1, education.Count)
	assert.Equal(t, 1_500_000.0, education.Average)
}

func TestSummarize_NoEntries(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0.0, summary.TotalAmount)
	assert.Equal(t, 0, summary.TotalCount)
	assert.Empty(t, summary.ByType)
}

func TestMemberTotals(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	entries := []Entry{
		entry(alice, "medical", 100_000, true, false),
		entry(alice, "education", 250_000, true, false),
		entry(bob, "medical", 50_000, true, false),
		entry(bob, "medical", 80_000, true, true), // ignored
	}

	totals := MemberTotals(entries)
	assert.Equal(t, 350_000.0, totals[alice])
	assert.Equal(t, 50_000.0, totals[bob])
}

func TestFilterRange(t *testing.T) {
	member := uuid.New()
	jan := entry(member, "medical", 1, true, false)
	jan.GivenOn = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	jun := entry(member, "medical", 2, true, false)
	jun.GivenOn = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	entries := []Entry{jan, jun}

	got := FilterRange(entries, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	require.Len(t, got, 1)
	assert.Equal(t, jun.EventID, got[0].EventID)

	got = FilterRange(entries, time.Time{}, time.Time{})
	assert.Len(t, got, 2)
}
