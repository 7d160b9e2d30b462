package service

import (
	"context"
	"testing"
	"time"

	"najia-backend/internal/apperr"
	"najia-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestWorshipService(t *testing.T) (WorshipService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewWorshipService(repository.NewWorshipRecordRepository(db))
	svc.(*worshipServiceImpl).now = func() time.Time { return fixedTime }
	return svc, db
}

func TestRecordSelawatAccumulates(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	record, err := svc.RecordSelawat(ctx, "user-1", 10, "")
	require.NoError(t, err)
	assert.Equal(t, 10, record.Count)

	record, err = svc.RecordSelawat(ctx, "user-1", 25, "")
	require.NoError(t, err)
	assert.Equal(t, 35, record.Count)

	record, err = svc.RecordSelawat(ctx, "user-1", 5, "")
	require.NoError(t, err)
	assert.Equal(t, 40, record.Count)
}

func TestRecordCountRejectsNonPositive(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	_, err := svc.RecordSelawat(context.Background(), "user-1", 0, "")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.RecordIstigfar(context.Background(), "user-1", -3, "")
	assert.True(t, apperr.IsValidation(err))
}

func TestRecordQuranMinutesAccumulateCountStaysOne(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	record, err := svc.RecordQuran(ctx, "user-1", 15, "")
	require.NoError(t, err)
	assert.Equal(t, 15, record.Minutes)
	assert.Equal(t, 1, record.Count)

	record, err = svc.RecordQuran(ctx, "user-1", 20, "")
	require.NoError(t, err)
	assert.Equal(t, 35, record.Minutes)
	assert.Equal(t, 1, record.Count, "count must not grow with repeat sessions")
}

func TestWorshipTypesAreIndependentBuckets(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	_, err := svc.RecordSelawat(ctx, "user-1", 10, "")
	require.NoError(t, err)
	_, err = svc.RecordIstigfar(ctx, "user-1", 7, "")
	require.NoError(t, err)
	_, err = svc.RecordQuran(ctx, "user-1", 30, "")
	require.NoError(t, err)

	summary, err := svc.DailyProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Selawat)
	assert.Equal(t, 7, summary.Istigfar)
	assert.Equal(t, 30, summary.Quran.Minutes)
}

func TestDailyProgressEmptyDayIsAllZero(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	summary, err := svc.DailyProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, summary.Selawat)
	assert.Zero(t, summary.Istigfar)
	assert.Zero(t, summary.Quran.Minutes)
}

func TestWeeklyProgressZeroFillsSevenDays(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	_, err := svc.RecordSelawat(ctx, "user-1", 12, "")
	require.NoError(t, err)
	_, err = svc.RecordQuran(ctx, "user-1", 45, "")
	require.NoError(t, err)

	progress, err := svc.WeeklyProgress(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, progress.DailyProgress, 7)

	// Wednesday of a Sunday-start week is index 3
	assert.Equal(t, 12, progress.DailyProgress[3].Selawat)
	assert.Equal(t, 45, progress.DailyProgress[3].Quran.Minutes)

	for i, day := range progress.DailyProgress {
		if i == 3 {
			continue
		}
		assert.Zero(t, day.Selawat, "day %d should be zero-filled", i)
		assert.Zero(t, day.Quran.Minutes, "day %d should be zero-filled", i)
	}

	assert.Equal(t, 12, progress.Totals.Selawat)
	assert.Equal(t, 45, progress.Totals.Quran.Minutes)
}

func TestMonthlyProgressCoversWholeMonth(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	_, err := svc.RecordIstigfar(ctx, "user-1", 33, "")
	require.NoError(t, err)

	progress, err := svc.MonthlyProgress(ctx, "user-1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, progress.DailyProgress, 31) // March
	assert.Equal(t, 2, progress.Metadata.Month)
	assert.Equal(t, 2026, progress.Metadata.Year)
	assert.Equal(t, 33, progress.Totals.Istigfar)
}

func TestMonthlyProgressExplicitMonthOverride(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	month, year := 1, 2026 // February
	progress, err := svc.MonthlyProgress(context.Background(), "user-1", &month, &year)
	require.NoError(t, err)
	assert.Len(t, progress.DailyProgress, 28)
	assert.Equal(t, 1, progress.Metadata.Month)
}

func TestMonthlyProgressRejectsOutOfRangeMonth(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	month, year := 12, 2026
	_, err := svc.MonthlyProgress(context.Background(), "user-1", &month, &year)
	assert.True(t, apperr.IsValidation(err))
}

func TestLeaderboardOrdersByQuranThenSelawatThenIstigfar(t *testing.T) {
	svc, db := newTestWorshipService(t)
	ctx := context.Background()

	seedUser(t, db, "reader", "Aisyah")
	seedUser(t, db, "reciter", "Bilal")
	seedUser(t, db, "tied", "Chairil")

	// reader leads on quran minutes despite fewer counts
	_, err := svc.RecordQuran(ctx, "reader", 60, "")
	require.NoError(t, err)
	_, err = svc.RecordSelawat(ctx, "reader", 1, "")
	require.NoError(t, err)

	_, err = svc.RecordQuran(ctx, "reciter", 30, "")
	require.NoError(t, err)
	_, err = svc.RecordSelawat(ctx, "reciter", 500, "")
	require.NoError(t, err)

	// tied with reciter on quran, fewer selawat
	_, err = svc.RecordQuran(ctx, "tied", 30, "")
	require.NoError(t, err)
	_, err = svc.RecordSelawat(ctx, "tied", 100, "")
	require.NoError(t, err)

	entries, err := svc.WeeklyLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "reader", entries[0].UserID)
	assert.Equal(t, "reciter", entries[1].UserID)
	assert.Equal(t, "tied", entries[2].UserID)
	assert.Equal(t, "Aisyah", entries[0].Name)
}

func TestLeaderboardDefaultsMissingProfileName(t *testing.T) {
	svc, _ := newTestWorshipService(t)
	ctx := context.Background()

	// no users row for this id
	_, err := svc.RecordQuran(ctx, "ghost", 10, "")
	require.NoError(t, err)

	entries, err := svc.WeeklyLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown User", entries[0].Name)
}

func TestUserRankFirstPlace(t *testing.T) {
	svc, db := newTestWorshipService(t)
	ctx := context.Background()

	seedUser(t, db, "top", "Top")
	seedUser(t, db, "second", "Second")

	_, err := svc.RecordQuran(ctx, "top", 60, "")
	require.NoError(t, err)
	_, err = svc.RecordQuran(ctx, "second", 20, "")
	require.NoError(t, err)

	rank, err := svc.UserRank(ctx, "top", "weekly")
	require.NoError(t, err)
	assert.Equal(t, 1, rank.Rank)
	assert.Equal(t, 2, rank.TotalParticipants)
	assert.Equal(t, 60, rank.Stats.QuranMinutes)
}

func TestUserRankAbsentUserGetsSentinel(t *testing.T) {
	svc, db := newTestWorshipService(t)
	ctx := context.Background()

	seedUser(t, db, "active", "Active")
	_, err := svc.RecordQuran(ctx, "active", 60, "")
	require.NoError(t, err)

	rank, err := svc.UserRank(ctx, "inactive", "weekly")
	require.NoError(t, err)
	assert.Equal(t, 2, rank.Rank, "absent user ranks one past the board")
	assert.Equal(t, 1, rank.TotalParticipants)
	assert.Zero(t, rank.Stats.Selawat)
	assert.Zero(t, rank.Stats.Istigfar)
	assert.Zero(t, rank.Stats.QuranMinutes)
}

func TestUserRankEmptyBoardIsRankOne(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	rank, err := svc.UserRank(context.Background(), "anyone", "monthly")
	require.NoError(t, err)
	assert.Equal(t, 1, rank.Rank)
	assert.Zero(t, rank.TotalParticipants)
}

func TestUserRankRejectsUnknownPeriod(t *testing.T) {
	svc, _ := newTestWorshipService(t)

	_, err := svc.UserRank(context.Background(), "user-1", "daily")
	assert.True(t, apperr.IsValidation(err))
}

func TestLeaderboardExcludesRecordsOutsideRange(t *testing.T) {
	svc, db := newTestWorshipService(t)
	ctx := context.Background()

	seedUser(t, db, "user-1", "Current")

	// record in the current week
	_, err := svc.RecordQuran(ctx, "user-1", 10, "")
	require.NoError(t, err)

	// shift the clock two weeks back and record again: must not count
	impl := svc.(*worshipServiceImpl)
	impl.now = func() time.Time { return fixedTime.AddDate(0, 0, -14) }
	_, err = svc.RecordQuran(ctx, "user-1", 100, "")
	require.NoError(t, err)

	impl.now = func() time.Time { return fixedTime }
	entries, err := svc.WeeklyLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].QuranMinutes)
}
