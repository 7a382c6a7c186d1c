package store

import (
	"time"

	"water-monitor-system/models"
)

// GetLatestReadings returns the five most recent sensor readings.
func (s *DataStore) GetLatestReadings() ([]models.SensorReading, error) {
	if !s.useCloud() {
		readings, err := s.localReadings()
		if err != nil {
			return nil, err
		}
		if len(readings) > 5 {
			readings = readings[:5]
		}
		return readings, nil
	}

	var rows []SensorReadingRow
	if err := s.db.
		Order("timestamp DESC").
		Limit(5).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.SensorReading, len(rows))
	for i := range rows {
		out[i] = transformReading(&rows[i])
	}
	return out, nil
}

// GetHistory returns readings inside the trailing time window.
func (s *DataStore) GetHistory(hours int) ([]models.SensorReading, error) {
	if hours <= 0 {
		hours = 24
	}
	cutoff := s.now().Add(-time.Duration(hours) * time.Hour)

	if !s.useCloud() {
		readings, err := s.localReadings()
		if err != nil {
			return nil, err
		}
		out := make([]models.SensorReading, 0, len(readings))
		for _, r := range readings {
			if !r.Timestamp.Before(cutoff) {
				out = append(out, r)
			}
		}
		return out, nil
	}

	var rows []SensorReadingRow
	if err := s.db.
		Where("timestamp >= ?", cutoff).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.SensorReading, len(rows))
	for i := range rows {
		out[i] = transformReading(&rows[i])
	}
	return out, nil
}

// GetPredictions returns up to hours of forecast points. Predictions are
// always generated locally, regardless of backend mode.
func (s *DataStore) GetPredictions(hours int) ([]models.Prediction, error) {
	if hours <= 0 {
		hours = 24
	}
	predictions, err := s.localPredictions()
	if err != nil {
		return nil, err
	}
	if len(predictions) > hours {
		predictions = predictions[:hours]
	}
	return predictions, nil
}
