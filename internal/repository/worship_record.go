package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardRow is one user's aggregated totals over a date range, with
// profile fields left-joined in.
type LeaderboardRow struct {
	UserID       string
	Selawat      int
	Istigfar     int
	QuranMinutes int
	Name         string
	Email        string
	PhoneNumber  string
	AccountType  string
}

type WorshipRecordRepository interface {
	// IncrementCount upserts the (user, type, day) record, adding count
	// and appending notes. Atomic at the storage layer.
	IncrementCount(ctx context.Context, userID, worshipType string, count int, notes string, recordDate time.Time) (*model.WorshipRecord, error)
	// IncrementMinutes upserts the QURAN record for the day. Minutes
	// accumulate; count stays 1 from creation onward.
	IncrementMinutes(ctx context.Context, userID string, minutes int, notes string, recordDate time.Time) (*model.WorshipRecord, error)
	FindByUserAndDate(ctx context.Context, userID string, recordDate time.Time) ([]*model.WorshipRecord, error)
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*model.WorshipRecord, error)
	AggregateRange(ctx context.Context, start, end time.Time, limit int) ([]*LeaderboardRow, error)
}

type worshipRecordRepoImpl struct {
	db *gorm.DB
}

func NewWorshipRecordRepository(db *gorm.DB) WorshipRecordRepository {
	return &worshipRecordRepoImpl{
		db: db,
	}
}

func (r *worshipRecordRepoImpl) IncrementCount(ctx context.Context, userID, worshipType string, count int, notes string, recordDate time.Time) (*model.WorshipRecord, error) {
	record := model.WorshipRecord{
		UserID:     userID,
		Type:       worshipType,
		Count:      count,
		Notes:      notes,
		RecordDate: recordDate,
	}

	assignments := map[string]interface{}{
		"count":      gorm.Expr("worship_records.count + ?", count),
		"updated_at": time.Now(),
	}
	if notes != "" {
		assignments["notes"] = appendNotesExpr(notes)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "record_date"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	return r.reload(ctx, userID, worshipType, recordDate)
}

// appendNotesExpr newline-joins a new note onto any existing ones.
// CONCAT is understood by both mysql and the bundled sqlite.
func appendNotesExpr(notes string) interface{} {
	return gorm.Expr(
		"CASE WHEN worship_records.notes = '' OR worship_records.notes IS NULL THEN ? ELSE CONCAT(worship_records.notes, ?) END",
		notes, "\n"+notes,
	)
}

func (r *worshipRecordRepoImpl) IncrementMinutes(ctx context.Context, userID string, minutes int, notes string, recordDate time.Time) (*model.WorshipRecord, error) {
	record := model.WorshipRecord{
		UserID:     userID,
		Type:       model.WorshipTypeQuran,
		Count:      1,
		Minutes:    minutes,
		Notes:      notes,
		RecordDate: recordDate,
	}

	// count deliberately untouched on conflict
	assignments := map[string]interface{}{
		"minutes":    gorm.Expr("worship_records.minutes + ?", minutes),
		"updated_at": time.Now(),
	}
	if notes != "" {
		assignments["notes"] = appendNotesExpr(notes)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "record_date"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	return r.reload(ctx, userID, model.WorshipTypeQuran, recordDate)
}

func (r *worshipRecordRepoImpl) reload(ctx context.Context, userID, worshipType string, recordDate time.Time) (*model.WorshipRecord, error) {
	var record model.WorshipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND record_date = ?", userID, worshipType, recordDate).
		First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *worshipRecordRepoImpl) FindByUserAndDate(ctx context.Context, userID string, recordDate time.Time) ([]*model.WorshipRecord, error) {
	var records []*model.WorshipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", userID, recordDate).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *worshipRecordRepoImpl) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*model.WorshipRecord, error) {
	var records []*model.WorshipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("record_date BETWEEN ? AND ?", start, end).
		Order("record_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *worshipRecordRepoImpl) AggregateRange(ctx context.Context, start, end time.Time, limit int) ([]*LeaderboardRow, error) {
	var rows []*LeaderboardRow
	err := r.db.WithContext(ctx).Model(&model.WorshipRecord{}).
		Select(`
			worship_records.user_id AS user_id,
			SUM(CASE WHEN worship_records.type = 'SELAWAT' THEN worship_records.count ELSE 0 END) AS selawat,
			SUM(CASE WHEN worship_records.type = 'ISTIGFAR' THEN worship_records.count ELSE 0 END) AS istigfar,
			SUM(CASE WHEN worship_records.type = 'QURAN' THEN worship_records.minutes ELSE 0 END) AS quran_minutes,
			COALESCE(users.name, 'Unknown User') AS name,
			COALESCE(users.email, '') AS email,
			COALESCE(users.phone_number, '') AS phone_number,
			COALESCE(users.account_type, '') AS account_type
		`).
		Joins("LEFT JOIN users ON users.id = worship_records.user_id").
		Where("worship_records.record_date BETWEEN ? AND ?", start, end).
		Group("worship_records.user_id, users.name, users.email, users.phone_number, users.account_type").
		Order("quran_minutes DESC, selawat DESC, istigfar DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
