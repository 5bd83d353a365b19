package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	require.NoError(t, err)
	return parsed
}

func TestCurrentStreak(t *testing.T) {
	now := day(t, "2025-03-10")

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(nil, now))
	})

	t.Run("consecutive run ending today", func(t *testing.T) {
		dates := []time.Time{day(t, "2025-03-10"), day(t, "2025-03-09"), day(t, "2025-03-08")}
		assert.Equal(t, 3, CurrentStreak(dates, now))
	})

	t.Run("consecutive run ending yesterday still counts", func(t *testing.T) {
		dates := []time.Time{day(t, "2025-03-09"), day(t, "2025-03-08")}
		assert.Equal(t, 2, CurrentStreak(dates, now))
	})

	t.Run("expired when last check-in is older than yesterday", func(t *testing.T) {
		dates := []time.Time{day(t, "2025-03-08"), day(t, "2025-03-07")}
		assert.Equal(t, 0, CurrentStreak(dates, now))
	})

	t.Run("stops at first gap", func(t *testing.T) {
		dates := []time.Time{
			day(t, "2025-03-10"),
			day(t, "2025-03-09"),
			day(t, "2025-03-07"),
			day(t, "2025-03-06"),
		}
		assert.Equal(t, 2, CurrentStreak(dates, now))
	})
}

func TestLongestStreak(t *testing.T) {
	assert.Equal(t, 0, LongestStreak(nil))
	assert.Equal(t, 1, LongestStreak([]time.Time{day(t, "2025-03-01")}))

	dates := []time.Time{
		day(t, "2025-03-01"),
		day(t, "2025-03-02"),
		day(t, "2025-03-03"),
		day(t, "2025-03-07"),
		day(t, "2025-03-08"),
	}
	assert.Equal(t, 3, LongestStreak(dates))

	// Order must not matter.
	reversed := []time.Time{
		day(t, "2025-03-08"),
		day(t, "2025-03-07"),
		day(t, "2025-03-03"),
		day(t, "2025-03-02"),
		day(t, "2025-03-01"),
	}
	assert.Equal(t, 3, LongestStreak(reversed))
}

func TestLongestStreakAtLeastCurrent(t *testing.T) {
	now := day(t, "2025-03-10")
	dates := []time.Time{
		day(t, "2025-03-10"),
		day(t, "2025-03-09"),
		day(t, "2025-03-05"),
	}
	current := CurrentStreak(dates, now)
	longest := LongestStreak(dates)
	assert.Equal(t, 2, current)
	assert.GreaterOrEqual(t, longest, current)
}

func TestRecordCheckInIdempotentPerDay(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewCheckInService(log, repos.NewCheckInRepo(db, log))
	ctx := context.Background()

	first, err := svc.RecordCheckIn(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, first.IsNewCheckIn)

	second, err := svc.RecordCheckIn(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, second.IsNewCheckIn)
	assert.Equal(t, first.CheckInDate, second.CheckInDate)

	var count int64
	require.NoError(t, db.Model(&types.CheckIn{}).Where("user_id = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A different user on the same day is unaffected.
	other, err := svc.RecordCheckIn(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, other.IsNewCheckIn)
}

func TestGetCheckInsCalendar(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	repo := repos.NewCheckInRepo(db, log)
	svc := NewCheckInService(log, repo)
	ctx := context.Background()

	for _, d := range []string{"2025-03-01", "2025-03-02", "2025-02-27"} {
		_, err := repo.Create(ctx, nil, &types.CheckIn{UserID: "a@x.com", CheckInDate: day(t, d)})
		require.NoError(t, err)
	}

	// month is 0-based: 2 == March.
	calendar, err := svc.GetCheckIns(ctx, "a@x.com", 2, 2025)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2025-03-01", "2025-03-02"}, calendar.CheckInDates)
	assert.Equal(t, 2, calendar.Month)
	assert.Equal(t, 2025, calendar.Year)
	assert.Equal(t, 31, calendar.DaysInMonth)
	assert.Equal(t, int(day(t, "2025-03-01").Weekday()), calendar.FirstDayOfWeek)
	assert.GreaterOrEqual(t, calendar.LongestStreak, calendar.CurrentStreak)
	assert.Equal(t, 2, calendar.LongestStreak)
}
