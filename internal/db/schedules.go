package db

import (
	"database/sql"
	"fmt"

	"github.com/hollis/taskflow/internal/model"
)

// GetSchedules returns all cached schedules with their blocks attached
func (db *DB) GetSchedules() ([]model.Schedule, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at FROM schedules ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		schedules = append(schedules, s)
	}
	// Close before the per-schedule block queries; only one connection
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		blocks, err := db.getBlocks(schedules[i].ID)
		if err != nil {
			return nil, err
		}
		schedules[i].Blocks = blocks
	}
	return schedules, nil
}

func (db *DB) getBlocks(scheduleID string) ([]model.Block, error) {
	rows, err := db.Query(`
		SELECT id, day, start_time, end_time, activity, location, tag
		FROM schedule_blocks
		WHERE schedule_id = ?
		ORDER BY position, id
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []model.Block
	for rows.Next() {
		var b model.Block
		var location, tag *string
		if err := rows.Scan(&b.ID, &b.Day, &b.StartTime, &b.EndTime, &b.Activity, &location, &tag); err != nil {
			return nil, err
		}
		if location != nil {
			b.Location = *location
		}
		if tag != nil {
			b.Tag = *tag
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// ReplaceSchedules swaps the cached schedule snapshot for a fresh one
func (db *DB) ReplaceSchedules(schedules []model.Schedule) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM schedules`); err != nil {
			return err
		}
		for _, s := range schedules {
			if _, err := tx.Exec(`
				INSERT INTO schedules (id, name, created_at) VALUES (?, ?, ?)
			`, s.ID, s.Name, s.CreatedAt); err != nil {
				return fmt.Errorf("inserting schedule %s: %w", s.ID, err)
			}
			for pos, b := range s.Blocks {
				if _, err := tx.Exec(`
					INSERT INTO schedule_blocks (id, schedule_id, day, start_time, end_time, activity, location, tag, position)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				`, b.ID, s.ID, b.Day, b.StartTime, b.EndTime, b.Activity, nullable(b.Location), nullable(b.Tag), pos); err != nil {
					return fmt.Errorf("inserting block %s: %w", b.ID, err)
				}
			}
		}
		return nil
	})
}
