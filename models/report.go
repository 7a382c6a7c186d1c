package models

import (
	"time"
)

// ReportStatus tracks a report through review
type ReportStatus string

const (
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusClosed    ReportStatus = "closed"
)

// ReactionType is the fixed set of reactions a report can receive
type ReactionType string

const (
	ReactionHelpful    ReactionType = "helpful"
	ReactionConcerning ReactionType = "concerning"
	ReactionThankful   ReactionType = "thankful"
	ReactionVerified   ReactionType = "verified"
)

// Report is a user-submitted water quality observation.
type Report struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location,omitempty"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	Images        []string       `json:"images"`
	Status        ReportStatus   `json:"status"`
	Verifications []Verification `json:"verifications"`
	Reactions     []Reaction     `json:"reactions"`
}

// Verification is a community accuracy judgment attached to a report.
// Append-only; the same user may verify a report more than once.
type Verification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	IsAccurate bool      `json:"isAccurate"`
	Notes      string    `json:"notes,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Reaction is toggled per (user, type) pair: reacting again with the same
// type removes the earlier entry instead of accumulating.
type Reaction struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Username  string       `json:"username"`
	Type      ReactionType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
}
