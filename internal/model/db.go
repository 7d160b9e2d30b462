package model

import "time"

const (
	WorshipTypeSelawat  = "SELAWAT"
	WorshipTypeIstigfar = "ISTIGFAR"
	WorshipTypeQuran    = "QURAN"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"

	AccountTypeBasic   = "basic"
	AccountTypePremium = "premium"
)

type User struct {
	ID                string `gorm:"primaryKey;size:36;not null"`
	FirebaseUID       string `gorm:"size:128;uniqueIndex;not null"`
	PhoneNumber       string `gorm:"size:32;index;not null"`
	Email             string `gorm:"size:128;index"`
	Name              string `gorm:"size:128"`
	DateOfBirth       *time.Time
	Gender            string `gorm:"size:16"`
	IsProfileComplete bool   `gorm:"not null;default:false"`
	AccountType       string `gorm:"size:16;not null;default:basic"` // basic, premium
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WorshipRecord holds one user's running totals for a worship type on a
// single bucketed day. RecordDate is always a UTC-materialized day start.
type WorshipRecord struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"size:36;index:idx_worship_unique,unique;not null"`
	Type   string `gorm:"size:16;index:idx_worship_unique,unique;not null"` // SELAWAT, ISTIGFAR, QURAN
	// Count accumulates for SELAWAT/ISTIGFAR; fixed at 1 for QURAN.
	Count      int       `gorm:"not null"`
	Minutes    int       `gorm:"not null;default:0"` // QURAN only
	Notes      string    `gorm:"type:text"`
	RecordDate time.Time `gorm:"index:idx_worship_unique,unique;index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Payment struct {
	ID                    uint   `gorm:"primaryKey"`
	UserID                string `gorm:"size:36;index;not null"`
	PlanType              string `gorm:"size:32;not null"` // monthly, yearly
	Amount                int64  `gorm:"not null"`         // minor currency units
	OriginalAmount        int64
	DiscountAmount        int64
	VoucherCode           string `gorm:"size:64"`
	Status                string `gorm:"size:16;index;not null"` // pending, completed, failed
	StripePaymentIntentID string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Subscription struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:36;uniqueIndex;not null"` // one row per user
	PlanType  string `gorm:"size:32;not null"`
	StartDate time.Time
	EndDate   time.Time `gorm:"index"`
	Status    string    `gorm:"size:16;not null;default:active"` // active, expired
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

type Otp struct {
	ID        uint   `gorm:"primaryKey"`
	Contact   string `gorm:"size:128;uniqueIndex;not null"` // phone or email
	Code      string `gorm:"size:8;not null"`
	ExpiresAt time.Time
	Attempts  int  `gorm:"not null;default:0"`
	Verified  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type QadaTracker struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"size:36;uniqueIndex;not null"`
	TotalYears       int    `gorm:"not null"`
	TotalSalah       int    `gorm:"not null"`
	RemainingPer     int    `gorm:"not null"`
	CompletedSubuh   int    `gorm:"not null;default:0"`
	CompletedZohor   int    `gorm:"not null;default:0"`
	CompletedAsar    int    `gorm:"not null;default:0"`
	CompletedMaghrib int    `gorm:"not null;default:0"`
	CompletedIsya    int    `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type QadaPuasa struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"size:36;uniqueIndex;not null"`
	TotalYears    int    `gorm:"not null"`
	TotalDays     int    `gorm:"not null"`
	CompletedDays int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type QadaPuasaHistory struct {
	ID          uint   `gorm:"primaryKey"`
	QadaPuasaID uint   `gorm:"index;not null"`
	Notes       string `gorm:"type:text"`
	RecordedAt  time.Time
	CreatedAt   time.Time
}

type Child struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	ParentID     string `gorm:"size:36;index;not null"`
	Name         string `gorm:"size:128;not null"`
	Age          int
	LoginCode    string `gorm:"size:16;uniqueIndex;not null"`
	Stars        int    `gorm:"not null;default:0"`
	CurrentLevel int    `gorm:"not null;default:1"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Task struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	ChildID      string `gorm:"size:36;index;not null"`
	Title        string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text"`
	Stars        int    `gorm:"not null;default:0"`
	IsCompleted  bool   `gorm:"not null;default:false"`
	IsValidated  bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
	AssignedDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type GroceryRequest struct {
	ID              string `gorm:"primaryKey;size:36;not null"`
	UserID          string `gorm:"size:36;index;not null"`
	Items           string `gorm:"type:text"`
	AmountRequested int64  `gorm:"not null"`               // minor currency units
	Status          string `gorm:"size:16;index;not null"` // pending, approved, rejected
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
