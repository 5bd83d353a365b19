package services

import (
	"context"
	"sort"
	"time"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type CheckInResult struct {
	CheckInDate  time.Time `json:"checkInDate"`
	IsNewCheckIn bool      `json:"isNewCheckIn"`
}

// CheckInCalendar is the combined month view + streak payload the
// dashboard renders. Month is 0-based (January = 0), matching the
// client's calendar arithmetic.
type CheckInCalendar struct {
	CheckInDates   []string `json:"checkInDates"`
	CurrentStreak  int      `json:"currentStreak"`
	LongestStreak  int      `json:"longestStreak"`
	Month          int      `json:"month"`
	Year           int      `json:"year"`
	DaysInMonth    int      `json:"daysInMonth"`
	FirstDayOfWeek int      `json:"firstDayOfWeek"`
}

type CheckInService interface {
	RecordCheckIn(ctx context.Context, userID string) (*CheckInResult, error)
	GetCheckIns(ctx context.Context, userID string, month, year int) (*CheckInCalendar, error)
}

type checkInService struct {
	log         *logger.Logger
	checkInRepo repos.CheckInRepo
}

func NewCheckInService(log *logger.Logger, checkInRepo repos.CheckInRepo) CheckInService {
	return &checkInService{
		log:         log.With("service", "CheckInService"),
		checkInRepo: checkInRepo,
	}
}

// RecordCheckIn marks the user active for today (midnight-normalized,
// server-local). Checking in twice on the same day is a benign outcome
// reported through IsNewCheckIn, never an error.
func (cis *checkInService) RecordCheckIn(ctx context.Context, userID string) (*CheckInResult, error) {
	today := TruncateToDay(time.Now())
	created, err := cis.checkInRepo.Create(ctx, nil, &types.CheckIn{
		UserID:      userID,
		CheckInDate: today,
	})
	if err != nil {
		return nil, err
	}
	if created {
		cis.log.Info("check-in recorded", "userID", userID, "checkInDate", today)
	}
	return &CheckInResult{CheckInDate: today, IsNewCheckIn: created}, nil
}

func (cis *checkInService) GetCheckIns(ctx context.Context, userID string, month, year int) (*CheckInCalendar, error) {
	startOfMonth := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	monthCheckIns, err := cis.checkInRepo.GetByUserBetween(ctx, nil, userID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	checkInDates := make([]string, 0, len(monthCheckIns))
	for _, c := range monthCheckIns {
		checkInDates = append(checkInDates, c.CheckInDate.Format("2006-01-02"))
	}

	allCheckIns, err := cis.checkInRepo.GetByUserDesc(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	datesDesc := make([]time.Time, 0, len(allCheckIns))
	for _, c := range allCheckIns {
		datesDesc = append(datesDesc, c.CheckInDate)
	}

	return &CheckInCalendar{
		CheckInDates:   checkInDates,
		CurrentStreak:  CurrentStreak(datesDesc, time.Now()),
		LongestStreak:  LongestStreak(datesDesc),
		Month:          month,
		Year:           year,
		DaysInMonth:    time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.Local).Day(),
		FirstDayOfWeek: int(startOfMonth.Weekday()),
	}, nil
}

// TruncateToDay normalizes a timestamp to midnight in its own location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CurrentStreak counts consecutive check-in days walking backward from
// the most recent one. The streak only counts as alive when the most
// recent check-in is today or yesterday; one missed day is tolerated
// until the next calculation, after which the streak reads 0. datesDesc
// must be sorted most recent first.
func CurrentStreak(datesDesc []time.Time, now time.Time) int {
	if len(datesDesc) == 0 {
		return 0
	}
	today := TruncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)
	last := TruncateToDay(datesDesc[0])
	if !last.Equal(today) && !last.Equal(yesterday) {
		return 0
	}

	streak := 0
	expected := last
	for _, d := range datesDesc {
		d = TruncateToDay(d)
		if d.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
		} else if d.Before(expected) {
			break
		}
	}
	return streak
}

// LongestStreak scans all check-in days in ascending order, resetting
// the running counter on any gap that is not exactly one day. Returns 0
// only when there are no check-ins at all.
func LongestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	asc := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		asc = append(asc, TruncateToDay(d))
	}
	sort.Slice(asc, func(i, j int) bool { return asc[i].Before(asc[j]) })

	longest, current := 1, 1
	for i := 1; i < len(asc); i++ {
		if asc[i].Equal(asc[i-1].AddDate(0, 0, 1)) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}
