package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"water-monitor-system/models"
)

// ListReports returns every report, newest first.
func (s *DataStore) ListReports() ([]models.Report, error) {
	if !s.useCloud() {
		return s.localReports()
	}

	var rows []ReportRow
	if err := s.db.
		Order("timestamp DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.Report, len(rows))
	for i := range rows {
		out[i] = transformReport(&rows[i])
	}
	return out, nil
}

// CreateReport persists a new observation. ID and timestamp are assigned
// here; the caller supplies everything else.
func (s *DataStore) CreateReport(userID string, r models.Report) (models.Report, error) {
	now := s.now()

	if !s.useCloud() {
		reports, err := s.localReports()
		if err != nil {
			return models.Report{}, err
		}
		r.ID = uuid.NewString()
		r.UserID = DemoUserID
		r.Timestamp = now
		if r.Images == nil {
			r.Images = []string{}
		}
		r.Verifications = []models.Verification{}
		r.Reactions = []models.Reaction{}
		reports = append([]models.Report{r}, reports...)
		if err := s.local.Put(keyReports, reports); err != nil {
			return models.Report{}, err
		}
		return r, nil
	}

	if userID == "" {
		return models.Report{}, ErrNotAuthenticated
	}

	row := ReportRow{
		ID:            uuid.NewString(),
		UserID:        &userID,
		Timestamp:     now,
		Title:         r.Title,
		Description:   r.Description,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Images:        mustJSON(orEmpty(r.Images)),
		Status:        string(r.Status),
		Verifications: mustJSON([]models.Verification{}),
		Reactions:     mustJSON([]models.Reaction{}),
	}
	if r.Location != "" {
		row.Location = &r.Location
	}
	if row.Status == "" {
		row.Status = string(models.ReportStatusSubmitted)
	}

	if err := s.db.Create(&row).Error; err != nil {
		return models.Report{}, err
	}
	return transformReport(&row), nil
}

// VerifyReport appends an accuracy judgment. Verifications are append-only
// and deliberately not deduplicated: the same user may verify twice.
func (s *DataStore) VerifyReport(reportID, userID, username string, isAccurate bool, notes string) error {
	verification := models.Verification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Username:   username,
		IsAccurate: isAccurate,
		Notes:      notes,
		Timestamp:  s.now(),
	}

	if !s.useCloud() {
		verification.UserID = DemoUserID
		if verification.Username == "" {
			verification.Username = "Demo User"
		}
		reports, err := s.localReports()
		if err != nil {
			return err
		}
		for i := range reports {
			if reports[i].ID == reportID {
				reports[i].Verifications = append(reports[i].Verifications, verification)
				return s.local.Put(keyReports, reports)
			}
		}
		return nil // unknown report is a no-op, matching the local backend's tolerance
	}

	if userID == "" {
		return ErrNotAuthenticated
	}

	var row ReportRow
	if err := s.db.Where("id = ?", reportID).First(&row).Error; err != nil {
		return err
	}

	verifications := append(decodeVerifications(row.Verifications), verification)
	return s.db.Model(&ReportRow{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"verifications": mustJSON(verifications),
			"updated_at":    s.now(),
		}).Error
}

// ReactToReport toggles a reaction for (user, type): present -> removed,
// absent -> appended. The whole list is written back, last writer wins.
func (s *DataStore) ReactToReport(reportID, userID, username string, reactionType models.ReactionType) error {
	if !s.useCloud() {
		reports, err := s.localReports()
		if err != nil {
			return err
		}
		for i := range reports {
			if reports[i].ID != reportID {
				continue
			}
			name := username
			if name == "" {
				name = "Demo User"
			}
			reports[i].Reactions = toggleReaction(reports[i].Reactions, DemoUserID, name, reactionType, s.now())
			return s.local.Put(keyReports, reports)
		}
		return nil
	}

	if userID == "" {
		return ErrNotAuthenticated
	}

	var row ReportRow
	if err := s.db.Select("id", "reactions").Where("id = ?", reportID).First(&row).Error; err != nil {
		return err
	}

	reactions := toggleReaction(decodeReactions(row.Reactions), userID, username, reactionType, s.now())
	return s.db.Model(&ReportRow{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"reactions":  mustJSON(reactions),
			"updated_at": s.now(),
		}).Error
}

func toggleReaction(reactions []models.Reaction, userID, username string, reactionType models.ReactionType, now time.Time) []models.Reaction {
	for i, r := range reactions {
		if r.UserID == userID && r.Type == reactionType {
			return append(reactions[:i], reactions[i+1:]...)
		}
	}
	if username == "" {
		username = "Anonymous"
	}
	return append(reactions, models.Reaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Type:      reactionType,
		Timestamp: now,
	})
}

// UpdateReportStatus moves a report through the review lifecycle.
func (s *DataStore) UpdateReportStatus(reportID string, status models.ReportStatus) error {
	if !s.useCloud() {
		reports, err := s.localReports()
		if err != nil {
			return err
		}
		for i := range reports {
			if reports[i].ID == reportID {
				reports[i].Status = status
				return s.local.Put(keyReports, reports)
			}
		}
		return nil
	}

	res := s.db.Model(&ReportRow{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
