package db

import (
	"time"
)

// Category is a matching context with its own filter and scoring rules.
type Category string

const (
	CategoryRoommate      Category = "ROOMMATE"
	CategoryMentor        Category = "MENTOR"
	CategoryCommunication Category = "COMMUNICATION"
)

// Categories lists every matching category, in recompute order.
var Categories = []Category{CategoryRoommate, CategoryMentor, CategoryCommunication}

// Match status values.
const (
	MatchStatusPending  = "PENDING"
	MatchStatusAccepted = "ACCEPTED"
	MatchStatusRejected = "REJECTED"
	MatchStatusExpired  = "EXPIRED"
)

// Profile visibility values. PRIVATE profiles are skipped by the bulk sweep.
const (
	VisibilityPublic      = "PUBLIC"
	VisibilityMatchesOnly = "MATCHES_ONLY"
	VisibilityPrivate     = "PRIVATE"
)

// Smoking preference values.
const (
	SmokingNoPreference  = "NO_PREFERENCE"
	SmokingNonSmokerOnly = "NON_SMOKER_ONLY"
)

// Sleep schedule values.
const (
	SleepNoPreference = "NO_PREFERENCE"
	SleepEarlyBird    = "EARLY_BIRD"
	SleepNightOwl     = "NIGHT_OWL"
)

// User table. Accounts are owned by the auth subsystem; the matcher only
// reads the Active flag when enumerating users for the bulk sweep.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Active       bool      `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Profile holds the attributes relevant to matching. Owned by the profile
// subsystem and read-only here.
type Profile struct {
	UserID                 uint64    `gorm:"primaryKey"`
	FirstName              string    `gorm:"size:64"`
	LastName               string    `gorm:"size:64"`
	Gender                 string    `gorm:"size:16;not null"`
	DestinationCountryID   *uint64   `gorm:"index:idx_profile_country_term,priority:1"`
	AcademicTerm           *string   `gorm:"size:32;index:idx_profile_country_term,priority:2"`
	HasReturnedFromProgram bool      `gorm:"not null;default:false"`
	Visibility             string    `gorm:"size:16;not null;default:PUBLIC"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`

	Preferences *MatchPreferences `gorm:"foreignKey:UserID;references:UserID"`
}

// MatchPreferences is one-to-one with Profile. Nil pointer fields mean the
// user expressed no preference on that axis.
type MatchPreferences struct {
	UserID             uint64    `gorm:"primaryKey"`
	PreferredGender    *string   `gorm:"size:16"`
	Cleanliness        *int      // 1-5 scale
	SmokingPreference  string    `gorm:"size:24;not null;default:NO_PREFERENCE"`
	SleepSchedule      string    `gorm:"size:24;not null;default:NO_PREFERENCE"`
	IsMentor           bool      `gorm:"not null;default:false"`
	LookingForMentor   bool      `gorm:"not null;default:false"`
	LookingForRoommate bool      `gorm:"not null;default:false"`
	ActivityTypes      []string  `gorm:"serializer:json"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// Like is a directional interest edge within a category.
//
// Unique index on (liker_id, liked_id, category): a duplicate like attempt is
// rejected, never overwritten.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	LikerID   uint64    `gorm:"not null;uniqueIndex:idx_liker_liked_category,priority:1;index:idx_liked_category,priority:2"`
	LikedID   uint64    `gorm:"not null;uniqueIndex:idx_liker_liked_category,priority:2;index:idx_liked_category,priority:1"`
	Category  Category  `gorm:"size:16;not null;uniqueIndex:idx_liker_liked_category,priority:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Match is a persisted recommendation computed by the recompute pipeline.
//
// Rows for a given user_from_id are replaced wholesale (delete + reinsert)
// so partial writers cannot interleave into an inconsistent set. The same
// pair may hold one row per category.
type Match struct {
	ID                  uint64         `gorm:"primaryKey;autoIncrement"`
	UserFromID          uint64         `gorm:"not null;uniqueIndex:idx_match_from_to_category,priority:1"`
	UserToID            uint64         `gorm:"not null;uniqueIndex:idx_match_from_to_category,priority:2"`
	Category            Category       `gorm:"size:16;not null;uniqueIndex:idx_match_from_to_category,priority:3"`
	MatchScore          int            `gorm:"not null"`
	ScoreBreakdown      map[string]int `gorm:"serializer:json"`
	Status              string         `gorm:"size:16;not null;default:PENDING"`
	ContactSharedByFrom bool           `gorm:"not null;default:false"`
	ContactSharedByTo   bool           `gorm:"not null;default:false"`
	ContactSharedAt     *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

// Notification row written when a recompute job finds matches. Delivery is
// handled by the notification subsystem; the matcher only creates rows.
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	Type      string    `gorm:"size:32;not null"`
	Title     string    `gorm:"size:128;not null"`
	Message   string    `gorm:"size:255;not null"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
