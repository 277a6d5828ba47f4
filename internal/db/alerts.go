package db

import (
	"database/sql"

	"github.com/hollis/taskflow/internal/model"
)

// The methods below implement alerts.Store over the sqlite database,
// giving the delivery sink durable settings and history.

// LoadAlertSettings returns the persisted settings, or defaults if none
// were ever saved
func (db *DB) LoadAlertSettings() (model.AlertSettings, error) {
	var sound, push, mute int
	err := db.QueryRow(`
		SELECT sound, browser_push, mute FROM alert_settings WHERE id = 1
	`).Scan(&sound, &push, &mute)
	if err == sql.ErrNoRows {
		return model.DefaultAlertSettings(), nil
	}
	if err != nil {
		return model.DefaultAlertSettings(), err
	}
	return model.AlertSettings{
		Sound:       sound == 1,
		BrowserPush: push == 1,
		Mute:        mute == 1,
	}, nil
}

// SaveAlertSettings upserts the single settings row
func (db *DB) SaveAlertSettings(s model.AlertSettings) error {
	_, err := db.Exec(`
		INSERT INTO alert_settings (id, sound, browser_push, mute)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sound = excluded.sound,
			browser_push = excluded.browser_push,
			mute = excluded.mute
	`, boolToInt(s.Sound), boolToInt(s.BrowserPush), boolToInt(s.Mute))
	return err
}

// LoadAlertHistory returns up to limit records, newest first
func (db *DB) LoadAlertHistory(limit int) ([]model.AlertRecord, error) {
	rows, err := db.Query(`
		SELECT id, message, related_id, created_at
		FROM alert_history
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AlertRecord
	for rows.Next() {
		var r model.AlertRecord
		var related *string
		if err := rows.Scan(&r.ID, &r.Message, &related, &r.CreatedAt); err != nil {
			return nil, err
		}
		if related != nil {
			r.RelatedID = *related
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AppendAlertRecord stores one record and trims the table beyond limit
func (db *DB) AppendAlertRecord(rec model.AlertRecord, limit int) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO alert_history (id, message, related_id, created_at)
			VALUES (?, ?, ?, ?)
		`, rec.ID, rec.Message, nullable(rec.RelatedID), rec.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM alert_history WHERE id NOT IN (
				SELECT id FROM alert_history ORDER BY created_at DESC, id LIMIT ?
			)
		`, limit)
		return err
	})
}

// ClearAlertHistory removes every retained record
func (db *DB) ClearAlertHistory() error {
	_, err := db.Exec(`DELETE FROM alert_history`)
	return err
}
