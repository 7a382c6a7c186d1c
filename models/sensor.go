package models

import (
	"time"
)

// SensorReading is one measurement from the lake monitoring stations.
// IsAnomaly is a static threshold flag set at ingestion, nothing smarter.
type SensorReading struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Temperature     float64   `json:"temperature"`
	PHLevel         float64   `json:"ph_level"`
	DissolvedOxygen float64   `json:"dissolved_oxygen"`
	Turbidity       float64   `json:"turbidity"`
	EColi           int       `json:"e_coli"`
	TotalColiform   int       `json:"total_coliform"`
	BacteriaATP     int       `json:"bacteria_atp"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	LocationName    string    `json:"location_name,omitempty"`
	IsAnomaly       bool      `json:"is_anomaly"`
}

// Prediction is a forecast point. Predictions are generated locally and never
// persisted to the cloud backend.
type Prediction struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Temperature     float64   `json:"temperature"`
	PHLevel         float64   `json:"ph_level"`
	DissolvedOxygen float64   `json:"dissolved_oxygen"`
	Turbidity       float64   `json:"turbidity"`
	IsAnomaly       bool      `json:"is_anomaly"`
}
