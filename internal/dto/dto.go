package dto

import "time"

// -------- auth --------

type RequestOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type VerifyOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	IsNewUser bool         `json:"is_new_user"`
	User      *UserProfile `json:"user"`
}

// -------- user --------

type UserProfile struct {
	ID                string `json:"id"`
	PhoneNumber       string `json:"phone_number"`
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	Gender            string `json:"gender,omitempty"`
	IsProfileComplete bool   `json:"is_profile_complete"`
	AccountType       string `json:"account_type"`
}

type CompleteProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Gender      string `json:"gender"`
}

type EditProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// -------- daily worship --------

type RecordCountRequest struct {
	Count int    `json:"count"`
	Notes string `json:"notes,omitempty"`
}

type RecordQuranRequest struct {
	Minutes int    `json:"minutes"`
	Notes   string `json:"notes,omitempty"`
}

type DaySummary struct {
	Date     time.Time `json:"date"`
	Selawat  int       `json:"selawat"`
	Istigfar int       `json:"istigfar"`
	Quran    QuranPart `json:"quran"`
}

type QuranPart struct {
	Minutes int `json:"minutes"`
}

type ProgressTotals struct {
	Selawat  int       `json:"selawat"`
	Istigfar int       `json:"istigfar"`
	Quran    QuranPart `json:"quran"`
}

type RangeProgress struct {
	DailyProgress []DaySummary   `json:"daily_progress"`
	Totals        ProgressTotals `json:"totals"`
}

type MonthlyProgress struct {
	RangeProgress
	Metadata MonthMetadata `json:"metadata"`
}

type MonthMetadata struct {
	Month     int       `json:"month"` // zero-based
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	Selawat      int    `json:"selawat"`
	Istigfar     int    `json:"istigfar"`
	QuranMinutes int    `json:"quran_minutes"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	AccountType  string `json:"account_type,omitempty"`
}

type UserRank struct {
	Rank              int        `json:"rank"`
	TotalParticipants int        `json:"total_participants"`
	Stats             *RankStats `json:"stats"`
}

type RankStats struct {
	Selawat      int `json:"selawat"`
	Istigfar     int `json:"istigfar"`
	QuranMinutes int `json:"quran_minutes"`
}

// -------- payments --------

type CreateIntentRequest struct {
	PlanType    string `json:"plan_type"`
	Amount      int64  `json:"amount"` // minor currency units
	Currency    string `json:"currency"`
	VoucherCode string `json:"voucher_code,omitempty"`
}

type CreateIntentResponse struct {
	ID             string `json:"id"`
	ClientSecret   string `json:"client_secret"`
	Amount         int64  `json:"amount"`
	DiscountAmount int64  `json:"discount_amount"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type ValidateVoucherRequest struct {
	Code string `json:"code"`
}

type VoucherInfo struct {
	Code         string  `json:"code"`
	DiscountType string  `json:"discount_type"` // percentage, fixed
	PercentOff   float64 `json:"percent_off,omitempty"`
	AmountOff    int64   `json:"amount_off,omitempty"`
}

type CreateVoucherRequest struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	PercentOff float64 `json:"percent_off,omitempty"`
	AmountOff  int64   `json:"amount_off,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

// -------- qada --------

type CreateQadaRequest struct {
	TotalYears int `json:"total_years"`
}

type QadaProgress struct {
	TotalYears       int `json:"total_years"`
	TotalSalah       int `json:"total_salah"`
	RemainingPer     int `json:"remaining_per_prayer"`
	CompletedSubuh   int `json:"completed_subuh"`
	CompletedZohor   int `json:"completed_zohor"`
	CompletedAsar    int `json:"completed_asar"`
	CompletedMaghrib int `json:"completed_maghrib"`
	CompletedIsya    int `json:"completed_isya"`
	TotalRemaining   int `json:"total_remaining"`
}

type RecordQadaPuasaRequest struct {
	Notes string `json:"notes,omitempty"`
}

type QadaPuasaProgress struct {
	TotalYears    int `json:"total_years"`
	TotalDays     int `json:"total_days"`
	CompletedDays int `json:"completed_days"`
}

type QadaPuasaHistoryEntry struct {
	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`
}

// -------- children / tasks --------

type ChildLoginRequest struct {
	LoginCode string `json:"login_code"`
}

type CreateChildRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type ChildInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	LoginCode    string `json:"login_code,omitempty"`
	Stars        int    `json:"stars"`
	CurrentLevel int    `json:"current_level"`
}

type AssignTaskRequest struct {
	ChildID     string `json:"child_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars"`
}

type TaskInfo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Stars        int       `json:"stars"`
	IsCompleted  bool      `json:"is_completed"`
	IsValidated  bool      `json:"is_validated"`
	AssignedDate time.Time `json:"assigned_date"`
}

type CompleteTaskRequest struct {
	LoginCode string `json:"login_code"`
	TaskID    string `json:"task_id"`
}

type ChildDashboard struct {
	ChildInfo      ChildInfo  `json:"child_info"`
	PendingTasks   []TaskInfo `json:"pending_tasks"`
	CompletedTasks []TaskInfo `json:"completed_tasks"`
	ValidatedTasks []TaskInfo `json:"validated_tasks"`
}

// -------- groceries --------

type CreateGroceryRequest struct {
	Items           string `json:"items"`
	AmountRequested int64  `json:"amount_requested"` // minor currency units
}

// -------- storage --------

type PresignResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
