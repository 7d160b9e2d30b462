package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/dateutil"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"time"
)

const leaderboardSize = 20

type WorshipService interface {
	RecordSelawat(ctx context.Context, userID string, count int, notes string) (*model.WorshipRecord, error)
	RecordIstigfar(ctx context.Context, userID string, count int, notes string) (*model.WorshipRecord, error)
	RecordQuran(ctx context.Context, userID string, minutes int, notes string) (*model.WorshipRecord, error)

	DailyProgress(ctx context.Context, userID string) (*dto.DaySummary, error)
	WeeklyProgress(ctx context.Context, userID string) (*dto.RangeProgress, error)
	// MonthlyProgress uses the current month when month or year is nil.
	// month is zero-based.
	MonthlyProgress(ctx context.Context, userID string, month, year *int) (*dto.MonthlyProgress, error)

	WeeklyLeaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error)
	MonthlyLeaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error)
	UserRank(ctx context.Context, userID, period string) (*dto.UserRank, error)
}

type worshipServiceImpl struct {
	recordRepo repository.WorshipRecordRepository
	now        func() time.Time
}

func NewWorshipService(recordRepo repository.WorshipRecordRepository) WorshipService {
	return &worshipServiceImpl{
		recordRepo: recordRepo,
		now:        time.Now,
	}
}

func (s *worshipServiceImpl) RecordSelawat(ctx context.Context, userID string, count int, notes string) (*model.WorshipRecord, error) {
	return s.recordCount(ctx, userID, model.WorshipTypeSelawat, count, notes)
}

func (s *worshipServiceImpl) RecordIstigfar(ctx context.Context, userID string, count int, notes string) (*model.WorshipRecord, error) {
	return s.recordCount(ctx, userID, model.WorshipTypeIstigfar, count, notes)
}

func (s *worshipServiceImpl) recordCount(ctx context.Context, userID, worshipType string, count int, notes string) (*model.WorshipRecord, error) {
	if count < 1 {
		return nil, apperr.Validation("count must be at least 1")
	}

	today := dateutil.DayStart(s.now())
	record, err := s.recordRepo.IncrementCount(ctx, userID, worshipType, count, notes, today)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", worshipType, err)
	}
	return record, nil
}

func (s *worshipServiceImpl) RecordQuran(ctx context.Context, userID string, minutes int, notes string) (*model.WorshipRecord, error) {
	if minutes < 1 {
		return nil, apperr.Validation("minutes must be at least 1")
	}

	today := dateutil.DayStart(s.now())
	record, err := s.recordRepo.IncrementMinutes(ctx, userID, minutes, notes, today)
	if err != nil {
		return nil, fmt.Errorf("record quran minutes: %w", err)
	}
	return record, nil
}

func (s *worshipServiceImpl) DailyProgress(ctx context.Context, userID string) (*dto.DaySummary, error) {
	today := dateutil.DayStart(s.now())

	records, err := s.recordRepo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("fetch daily records: %w", err)
	}

	summary := summarizeDay(today, records)
	return &summary, nil
}

func (s *worshipServiceImpl) WeeklyProgress(ctx context.Context, userID string) (*dto.RangeProgress, error) {
	start, end := dateutil.WeekRange(s.now())
	return s.rangeProgress(ctx, userID, start, end)
}

func (s *worshipServiceImpl) MonthlyProgress(ctx context.Context, userID string, month, year *int) (*dto.MonthlyProgress, error) {
	var start, end time.Time
	if month != nil && year != nil {
		if *month < 0 || *month > 11 {
			return nil, apperr.Validation("month must be between 0 and 11")
		}
		start, end = dateutil.MonthRangeOf(*year, *month)
	} else {
		start, end = dateutil.MonthRange(s.now())
	}

	progress, err := s.rangeProgress(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyProgress{
		RangeProgress: *progress,
		Metadata: dto.MonthMetadata{
			Month:     int(start.Month()) - 1,
			Year:      start.Year(),
			StartDate: start,
			EndDate:   end,
		},
	}, nil
}

// rangeProgress emits one summary per calendar day in [start, end], zero
// filled for days without records, plus totals over the range.
func (s *worshipServiceImpl) rangeProgress(ctx context.Context, userID string, start, end time.Time) (*dto.RangeProgress, error) {
	records, err := s.recordRepo.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch range records: %w", err)
	}

	byDay := make(map[string][]*model.WorshipRecord)
	for _, record := range records {
		key := dateutil.DayKey(record.RecordDate)
		byDay[key] = append(byDay[key], record)
	}

	progress := &dto.RangeProgress{
		DailyProgress: make([]dto.DaySummary, 0, 31),
	}
	for _, day := range dateutil.DaysBetween(start, end) {
		summary := summarizeDay(day, byDay[dateutil.DayKey(day)])
		progress.DailyProgress = append(progress.DailyProgress, summary)

		progress.Totals.Selawat += summary.Selawat
		progress.Totals.Istigfar += summary.Istigfar
		progress.Totals.Quran.Minutes += summary.Quran.Minutes
	}

	return progress, nil
}

func summarizeDay(day time.Time, records []*model.WorshipRecord) dto.DaySummary {
	summary := dto.DaySummary{Date: day}
	for _, record := range records {
		switch record.Type {
		case model.WorshipTypeSelawat:
			summary.Selawat = record.Count
		case model.WorshipTypeIstigfar:
			summary.Istigfar = record.Count
		case model.WorshipTypeQuran:
			summary.Quran.Minutes = record.Minutes
		}
	}
	return summary
}

func (s *worshipServiceImpl) WeeklyLeaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error) {
	start, end := dateutil.WeekRange(s.now())
	return s.leaderboard(ctx, start, end)
}

func (s *worshipServiceImpl) MonthlyLeaderboard(ctx context.Context) ([]*dto.LeaderboardEntry, error) {
	start, end := dateutil.MonthRange(s.now())
	return s.leaderboard(ctx, start, end)
}

func (s *worshipServiceImpl) leaderboard(ctx context.Context, start, end time.Time) ([]*dto.LeaderboardEntry, error) {
	rows, err := s.recordRepo.AggregateRange(ctx, start, end, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("aggregate leaderboard: %w", err)
	}

	entries := make([]*dto.LeaderboardEntry, len(rows))
	for i, row := range rows {
		name := row.Name
		if name == "" {
			name = "Unknown User"
		}
		entries[i] = &dto.LeaderboardEntry{
			UserID:       row.UserID,
			Selawat:      row.Selawat,
			Istigfar:     row.Istigfar,
			QuranMinutes: row.QuranMinutes,
			Name:         name,
			Email:        row.Email,
			PhoneNumber:  row.PhoneNumber,
			AccountType:  row.AccountType,
		}
	}

	return entries, nil
}

func (s *worshipServiceImpl) UserRank(ctx context.Context, userID, period string) (*dto.UserRank, error) {
	var start, end time.Time
	switch period {
	case "weekly":
		start, end = dateutil.WeekRange(s.now())
	case "monthly":
		start, end = dateutil.MonthRange(s.now())
	default:
		return nil, apperr.Validation("period must be weekly or monthly")
	}

	leaderboard, err := s.leaderboard(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// absent users rank below everyone: len+1, never zero
	rank := len(leaderboard) + 1
	stats := &dto.RankStats{}
	for i, entry := range leaderboard {
		if entry.UserID == userID {
			rank = i + 1
			stats = &dto.RankStats{
				Selawat:      entry.Selawat,
				Istigfar:     entry.Istigfar,
				QuranMinutes: entry.QuranMinutes,
			}
			break
		}
	}

	return &dto.UserRank{
		Rank:              rank,
		TotalParticipants: len(leaderboard),
		Stats:             stats,
	}, nil
}
