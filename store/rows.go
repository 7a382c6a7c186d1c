package store

import (
	"encoding/json"
	"time"
)

// Row structs mirror the cloud schema exactly: snake_case columns, nullable
// fields as pointers, JSON blobs left raw so reads can fall back to typed
// defaults instead of failing on malformed data.

type ProfileRow struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	Username         string          `gorm:"not null"`
	AvatarEmoji      string          `gorm:"size:10;default:'👤'"`
	Region           string          `gorm:"size:8;default:'ZW'"`
	Points           int             `gorm:"default:0"`
	StreakDays       int             `gorm:"default:0"`
	Badges           json.RawMessage `gorm:"type:jsonb"`
	AlertPreferences json.RawMessage `gorm:"type:jsonb"`
	FeatureFlags     json.RawMessage `gorm:"type:jsonb"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

func (ProfileRow) TableName() string { return "profiles" }

type ReportRow struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	UserID        *string         `gorm:"index"`
	Timestamp     time.Time       `gorm:"index;not null"`
	Title         string          `gorm:"not null"`
	Description   string          `gorm:"type:text"`
	Location      *string         ``
	Latitude      *float64        ``
	Longitude     *float64        ``
	Images        json.RawMessage `gorm:"type:jsonb"`
	Status        string          `gorm:"size:16;default:'submitted'"`
	Verifications json.RawMessage `gorm:"type:jsonb"`
	Reactions     json.RawMessage `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (ReportRow) TableName() string { return "reports" }

type QuizAttemptRow struct {
	ID                string          `gorm:"primaryKey;type:uuid"`
	UserID            string          `gorm:"index;not null"`
	Date              string          `gorm:"index;size:10;not null"` // calendar day, "2006-01-02"
	Correct           int             ``
	Total             int             ``
	QuestionsAnswered json.RawMessage `gorm:"type:jsonb"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
}

func (QuizAttemptRow) TableName() string { return "quiz_attempts" }

type SensorReadingRow struct {
	ID              string    `gorm:"primaryKey"`
	Timestamp       time.Time `gorm:"index;not null"`
	Temperature     float64   ``
	PHLevel         float64   `gorm:"column:ph_level"`
	DissolvedOxygen float64   ``
	Turbidity       float64   ``
	EColi           int       `gorm:"column:e_coli"`
	TotalColiform   int       ``
	BacteriaATP     int       `gorm:"column:bacteria_atp"`
	Latitude        *float64  ``
	Longitude       *float64  ``
	LocationName    *string   ``
	IsAnomaly       *bool     ``
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (SensorReadingRow) TableName() string { return "sensor_readings" }
