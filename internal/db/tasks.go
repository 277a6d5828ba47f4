package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/taskflow/internal/model"
)

// GetTasks returns the cached task snapshot in insertion order
func (db *DB) GetTasks() ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT id, text, completed, due_date, tag, owner_id, parent_id,
		       created_at, updated_at
		FROM tasks
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask returns a single task by ID, nil if absent
func (db *DB) GetTask(id string) (*model.Task, error) {
	row := db.QueryRow(`
		SELECT id, text, completed, due_date, tag, owner_id, parent_id,
		       created_at, updated_at
		FROM tasks WHERE id = ?
	`, id)

	t, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// ReplaceTasks swaps the whole cached snapshot for a fresh one from
// the backend
func (db *DB) ReplaceTasks(tasks []model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return err
		}
		for _, t := range tasks {
			var due interface{}
			if t.DueDate != nil {
				due = t.DueDate.Format(time.RFC3339)
			}
			_, err := tx.Exec(`
				INSERT INTO tasks (id, text, completed, due_date, tag, owner_id, parent_id, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, t.ID, t.Text, boolToInt(t.Completed), due, nullable(t.Tag), t.OwnerID, t.ParentID, t.CreatedAt, t.UpdatedAt)
			if err != nil {
				return fmt.Errorf("inserting task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// CreateTask inserts a locally quick-added task into the cache
func (db *DB) CreateTask(text, tag string, dueDate *time.Time) (*model.Task, error) {
	id := uuid.New().String()
	now := time.Now()

	var due interface{}
	if dueDate != nil {
		due = dueDate.Format(time.RFC3339)
	}

	_, err := db.Exec(`
		INSERT INTO tasks (id, text, completed, due_date, tag, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?, ?, ?)
	`, id, text, due, nullable(tag), now, now)
	if err != nil {
		return nil, err
	}

	return &model.Task{
		ID:        id,
		Text:      text,
		Tag:       tag,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ToggleTask flips a task's completed flag
func (db *DB) ToggleTask(id string) error {
	now := time.Now()
	_, err := db.Exec(`
		UPDATE tasks SET completed = 1 - completed, updated_at = ? WHERE id = ?
	`, now, id)
	return err
}

// DeleteTask removes a task from the cache
func (db *DB) DeleteTask(id string) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// Helper functions

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var completed int
	var dueDate, tag *string

	err := s.Scan(
		&t.ID, &t.Text, &completed, &dueDate, &tag,
		&t.OwnerID, &t.ParentID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Completed = completed == 1
	if tag != nil {
		t.Tag = *tag
	}

	// An unparseable stored date leaves DueDate nil; downstream already
	// treats that as "no deadline"
	if dueDate != nil {
		if parsed, err := time.Parse(time.RFC3339, *dueDate); err == nil {
			t.DueDate = &parsed
		}
	}

	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
