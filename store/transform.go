package store

import (
	"encoding/json"

	"water-monitor-system/logger"
	"water-monitor-system/models"
)

// Decoders for the JSONB blobs. A malformed blob never fails the read: the
// documented default is substituted and the fallback is logged, so the
// degradation is visible without breaking the caller.

func decodeBadges(raw json.RawMessage, profileID string) []models.Badge {
	if len(raw) == 0 {
		return []models.Badge{}
	}
	var badges []models.Badge
	if err := json.Unmarshal(raw, &badges); err != nil {
		logger.Warn().Err(err).Str("profile_id", profileID).Msg("malformed badges blob, defaulting to empty")
		return []models.Badge{}
	}
	for _, b := range badges {
		if b.Code == "" || b.Title == "" {
			logger.Warn().Str("profile_id", profileID).Msg("badge entries missing code/title, defaulting to empty")
			return []models.Badge{}
		}
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return badges
}

func decodeAlertPrefs(raw json.RawMessage, profileID string) models.AlertPreferences {
	if len(raw) == 0 {
		return models.DefaultAlertPreferences()
	}
	var prefs models.AlertPreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		logger.Warn().Err(err).Str("profile_id", profileID).Msg("malformed alert_preferences blob, using defaults")
		return models.DefaultAlertPreferences()
	}
	// A blob that decodes but carries no thresholds is as useless as garbage.
	if prefs.PHMin == 0 && prefs.PHMax == 0 && prefs.TurbidityMax == 0 {
		logger.Warn().Str("profile_id", profileID).Msg("empty alert_preferences blob, using defaults")
		return models.DefaultAlertPreferences()
	}
	return prefs
}

func decodeFlags(raw json.RawMessage, profileID string, cloudConfigured bool) models.FeatureFlags {
	if len(raw) == 0 {
		return models.DefaultFeatureFlags(cloudConfigured)
	}
	var flags models.FeatureFlags
	if err := json.Unmarshal(raw, &flags); err != nil {
		logger.Warn().Err(err).Str("profile_id", profileID).Msg("malformed feature_flags blob, using defaults")
		return models.DefaultFeatureFlags(cloudConfigured)
	}
	return flags
}

func decodeStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func decodeVerifications(raw json.RawMessage) []models.Verification {
	if len(raw) == 0 {
		return []models.Verification{}
	}
	var out []models.Verification
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []models.Verification{}
	}
	return out
}

func decodeReactions(raw json.RawMessage) []models.Reaction {
	if len(raw) == 0 {
		return []models.Reaction{}
	}
	var out []models.Reaction
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []models.Reaction{}
	}
	return out
}

func decodeInts(raw json.RawMessage) []int {
	if len(raw) == 0 {
		return []int{}
	}
	var out []int
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []int{}
	}
	return out
}

// Row -> model mapping

func transformProfile(row *ProfileRow, cloudConfigured bool) *models.Profile {
	return &models.Profile{
		ID:          row.ID,
		Username:    row.Username,
		AvatarEmoji: row.AvatarEmoji,
		Region:      row.Region,
		Points:      row.Points,
		StreakDays:  row.StreakDays,
		Badges:      decodeBadges(row.Badges, row.ID),
		AlertPrefs:  decodeAlertPrefs(row.AlertPreferences, row.ID),
		Flags:       decodeFlags(row.FeatureFlags, row.ID, cloudConfigured),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func transformReport(row *ReportRow) models.Report {
	r := models.Report{
		ID:            row.ID,
		Timestamp:     row.Timestamp,
		Title:         row.Title,
		Description:   row.Description,
		Latitude:      row.Latitude,
		Longitude:     row.Longitude,
		Images:        decodeStrings(row.Images),
		Status:        models.ReportStatus(row.Status),
		Verifications: decodeVerifications(row.Verifications),
		Reactions:     decodeReactions(row.Reactions),
	}
	if row.UserID != nil {
		r.UserID = *row.UserID
	}
	if row.Location != nil {
		r.Location = *row.Location
	}
	return r
}

func transformReading(row *SensorReadingRow) models.SensorReading {
	r := models.SensorReading{
		ID:              row.ID,
		Timestamp:       row.Timestamp,
		Temperature:     row.Temperature,
		PHLevel:         row.PHLevel,
		DissolvedOxygen: row.DissolvedOxygen,
		Turbidity:       row.Turbidity,
		EColi:           row.EColi,
		TotalColiform:   row.TotalColiform,
		BacteriaATP:     row.BacteriaATP,
		Latitude:        row.Latitude,
		Longitude:       row.Longitude,
	}
	if row.LocationName != nil {
		r.LocationName = *row.LocationName
	}
	if row.IsAnomaly != nil {
		r.IsAnomaly = *row.IsAnomaly
	}
	return r
}

func transformAttempt(row *QuizAttemptRow) *models.QuizAttempt {
	return &models.QuizAttempt{
		ID:                row.ID,
		UserID:            row.UserID,
		Date:              row.Date,
		Correct:           row.Correct,
		Total:             row.Total,
		QuestionsAnswered: decodeInts(row.QuestionsAnswered),
	}
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		// All inputs are our own structs; marshalling them cannot fail.
		panic(err)
	}
	return raw
}
