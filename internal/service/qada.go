package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"time"
)

// QadaService tracks missed obligatory prayers being made up over time.
type QadaService interface {
	// Create sets up a tracker sized by years of missed prayers. A second
	// create returns the existing tracker unchanged.
	Create(ctx context.Context, userID string, totalYears int) (*dto.QadaProgress, error)
	RecordPrayer(ctx context.Context, userID, prayerType string) (*dto.QadaProgress, error)
	Progress(ctx context.Context, userID string) (*dto.QadaProgress, error)
}

type qadaServiceImpl struct {
	qadaRepo repository.QadaRepository
}

func NewQadaService(qadaRepo repository.QadaRepository) QadaService {
	return &qadaServiceImpl{
		qadaRepo: qadaRepo,
	}
}

func (s *qadaServiceImpl) Create(ctx context.Context, userID string, totalYears int) (*dto.QadaProgress, error) {
	if totalYears < 1 {
		return nil, apperr.Validation("total_years must be at least 1")
	}

	existing, err := s.qadaRepo.FindByUser(ctx, userID)
	if err == nil {
		return qadaProgressDTO(existing), nil
	}
	if !repository.IsNotFoundErr(err) {
		return nil, fmt.Errorf("check existing tracker: %w", err)
	}

	// five daily prayers per missed day
	totalSalah := totalYears * 365 * 5
	tracker := &model.QadaTracker{
		UserID:       userID,
		TotalYears:   totalYears,
		TotalSalah:   totalSalah,
		RemainingPer: totalSalah / 5,
	}
	if err := s.qadaRepo.Create(ctx, tracker); err != nil {
		return nil, fmt.Errorf("create qada tracker: %w", err)
	}
	return qadaProgressDTO(tracker), nil
}

func (s *qadaServiceImpl) RecordPrayer(ctx context.Context, userID, prayerType string) (*dto.QadaProgress, error) {
	if !repository.ValidPrayerType(prayerType) {
		return nil, apperr.Validation("unknown prayer type %q", prayerType)
	}

	tracker, err := s.qadaRepo.IncrementPrayer(ctx, userID, prayerType)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("qada tracker not found")
	}
	if err != nil {
		return nil, fmt.Errorf("record qada prayer: %w", err)
	}
	return qadaProgressDTO(tracker), nil
}

func (s *qadaServiceImpl) Progress(ctx context.Context, userID string) (*dto.QadaProgress, error) {
	tracker, err := s.qadaRepo.FindByUser(ctx, userID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("qada tracker not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load qada tracker: %w", err)
	}
	return qadaProgressDTO(tracker), nil
}

func qadaProgressDTO(t *model.QadaTracker) *dto.QadaProgress {
	completed := t.CompletedSubuh + t.CompletedZohor + t.CompletedAsar +
		t.CompletedMaghrib + t.CompletedIsya
	return &dto.QadaProgress{
		TotalYears:       t.TotalYears,
		TotalSalah:       t.TotalSalah,
		RemainingPer:     t.RemainingPer,
		CompletedSubuh:   t.CompletedSubuh,
		CompletedZohor:   t.CompletedZohor,
		CompletedAsar:    t.CompletedAsar,
		CompletedMaghrib: t.CompletedMaghrib,
		CompletedIsya:    t.CompletedIsya,
		TotalRemaining:   t.TotalSalah - completed,
	}
}

// QadaPuasaService tracks missed fasting days.
type QadaPuasaService interface {
	Create(ctx context.Context, userID string, totalYears int) (*dto.QadaPuasaProgress, error)
	RecordDay(ctx context.Context, userID, notes string) (*dto.QadaPuasaProgress, error)
	Progress(ctx context.Context, userID string) (*dto.QadaPuasaProgress, error)
	History(ctx context.Context, userID string) ([]*dto.QadaPuasaHistoryEntry, error)
}

type qadaPuasaServiceImpl struct {
	puasaRepo repository.QadaPuasaRepository
	now       func() time.Time
}

func NewQadaPuasaService(puasaRepo repository.QadaPuasaRepository) QadaPuasaService {
	return &qadaPuasaServiceImpl{
		puasaRepo: puasaRepo,
		now:       time.Now,
	}
}

func (s *qadaPuasaServiceImpl) Create(ctx context.Context, userID string, totalYears int) (*dto.QadaPuasaProgress, error) {
	if totalYears < 1 {
		return nil, apperr.Validation("total_years must be at least 1")
	}

	existing, err := s.puasaRepo.FindByUser(ctx, userID)
	if err == nil {
		return puasaProgressDTO(existing), nil
	}
	if !repository.IsNotFoundErr(err) {
		return nil, fmt.Errorf("check existing tracker: %w", err)
	}

	tracker := &model.QadaPuasa{
		UserID:     userID,
		TotalYears: totalYears,
		TotalDays:  totalYears * 30,
	}
	if err := s.puasaRepo.Create(ctx, tracker); err != nil {
		return nil, fmt.Errorf("create qada puasa tracker: %w", err)
	}
	return puasaProgressDTO(tracker), nil
}

func (s *qadaPuasaServiceImpl) RecordDay(ctx context.Context, userID, notes string) (*dto.QadaPuasaProgress, error) {
	tracker, err := s.puasaRepo.RecordDay(ctx, userID, notes, s.now())
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("qada puasa tracker not found")
	}
	if err != nil {
		return nil, fmt.Errorf("record qada puasa day: %w", err)
	}
	return puasaProgressDTO(tracker), nil
}

func (s *qadaPuasaServiceImpl) Progress(ctx context.Context, userID string) (*dto.QadaPuasaProgress, error) {
	tracker, err := s.puasaRepo.FindByUser(ctx, userID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("qada puasa tracker not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load qada puasa tracker: %w", err)
	}
	return puasaProgressDTO(tracker), nil
}

func (s *qadaPuasaServiceImpl) History(ctx context.Context, userID string) ([]*dto.QadaPuasaHistoryEntry, error) {
	history, err := s.puasaRepo.History(ctx, userID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("qada puasa tracker not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load qada puasa history: %w", err)
	}

	entries := make([]*dto.QadaPuasaHistoryEntry, len(history))
	for i, h := range history {
		entries[i] = &dto.QadaPuasaHistoryEntry{
			Date:  h.RecordedAt,
			Notes: h.Notes,
		}
	}
	return entries, nil
}

func puasaProgressDTO(t *model.QadaPuasa) *dto.QadaPuasaProgress {
	return &dto.QadaPuasaProgress{
		TotalYears:    t.TotalYears,
		TotalDays:     t.TotalDays,
		CompletedDays: t.CompletedDays,
	}
}
