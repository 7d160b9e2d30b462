package service

import (
	"context"
	"testing"
	"time"

	"najia-backend/internal/apperr"
	"najia-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQadaService(t *testing.T) QadaService {
	t.Helper()
	return NewQadaService(repository.NewQadaRepository(setupTestDB(t)))
}

func newTestPuasaService(t *testing.T) *qadaPuasaServiceImpl {
	t.Helper()

	svc := NewQadaPuasaService(repository.NewQadaPuasaRepository(setupTestDB(t)))
	impl := svc.(*qadaPuasaServiceImpl)
	impl.now = func() time.Time { return fixedTime }
	return impl
}

func TestQadaCreateSizesTracker(t *testing.T) {
	svc := newTestQadaService(t)

	progress, err := svc.Create(context.Background(), "user-1", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, progress.TotalYears)
	assert.Equal(t, 3650, progress.TotalSalah)
	assert.Equal(t, 730, progress.RemainingPer)
	assert.Equal(t, 3650, progress.TotalRemaining)
}

func TestQadaCreateRejectsZeroYears(t *testing.T) {
	svc := newTestQadaService(t)

	_, err := svc.Create(context.Background(), "user-1", 0)
	assert.True(t, apperr.IsValidation(err))
}

func TestQadaRepeatCreateKeepsOriginal(t *testing.T) {
	svc := newTestQadaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", 1)
	require.NoError(t, err)

	again, err := svc.Create(ctx, "user-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, again.TotalYears, "first tracker wins")
	assert.Equal(t, 1825, again.TotalSalah)
}

func TestQadaRecordPrayerCountsDown(t *testing.T) {
	svc := newTestQadaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", 1)
	require.NoError(t, err)

	progress, err := svc.RecordPrayer(ctx, "user-1", "Subuh")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedSubuh)
	assert.Equal(t, 1824, progress.TotalRemaining)

	progress, err = svc.RecordPrayer(ctx, "user-1", "Maghrib")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedMaghrib)
	assert.Equal(t, 1, progress.CompletedSubuh)
	assert.Equal(t, 1823, progress.TotalRemaining)
}

func TestQadaRecordPrayerUnknownType(t *testing.T) {
	svc := newTestQadaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", 1)
	require.NoError(t, err)

	_, err = svc.RecordPrayer(ctx, "user-1", "Tahajjud")
	assert.True(t, apperr.IsValidation(err))
}

func TestQadaRecordPrayerWithoutTracker(t *testing.T) {
	svc := newTestQadaService(t)

	_, err := svc.RecordPrayer(context.Background(), "user-1", "Subuh")
	assert.True(t, apperr.IsNotFound(err))
}

func TestQadaProgressWithoutTracker(t *testing.T) {
	svc := newTestQadaService(t)

	_, err := svc.Progress(context.Background(), "user-1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestPuasaCreateSizesTracker(t *testing.T) {
	svc := newTestPuasaService(t)

	progress, err := svc.Create(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalYears)
	assert.Equal(t, 90, progress.TotalDays)
	assert.Equal(t, 0, progress.CompletedDays)
}

func TestPuasaRecordDayAndHistory(t *testing.T) {
	svc := newTestPuasaService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", 1)
	require.NoError(t, err)

	progress, err := svc.RecordDay(ctx, "user-1", "fasted on a Monday")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedDays)

	svc.now = func() time.Time { return fixedTime.Add(24 * time.Hour) }
	progress, err = svc.RecordDay(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CompletedDays)

	history, err := svc.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "fasted on a Monday", history[0].Notes)
	assert.True(t, history[0].Date.Equal(fixedTime))
	assert.True(t, history[1].Date.Equal(fixedTime.Add(24*time.Hour)))
}

func TestPuasaRecordDayWithoutTracker(t *testing.T) {
	svc := newTestPuasaService(t)

	_, err := svc.RecordDay(context.Background(), "user-1", "")
	assert.True(t, apperr.IsNotFound(err))
}
