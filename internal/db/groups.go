package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tgienger/board/internal/models"
)

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListGroups returns every group in insertion order
func (db *DB) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := db.QueryContext(ctx, "SELECT record FROM groups ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		g, err := decodeGroup(record)
		if err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup retrieves a group by ID. It returns ErrNotFound when absent.
func (db *DB) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return getGroup(ctx, db.DB, id)
}

// PutGroup inserts g or overwrites the stored record with the same ID.
// The whole record is replaced; nothing is merged.
func (db *DB) PutGroup(ctx context.Context, g models.Group) error {
	return putGroup(ctx, db.DB, g)
}

// DeleteGroup deletes a group and its tasks. Deleting a missing group is a no-op.
func (db *DB) DeleteGroup(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return nil
}

// GroupCount returns the number of groups
func (db *DB) GroupCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups").Scan(&count)
	return count, err
}

// UpdateGroup reads the group, lets fn mutate it and writes it back, all in
// one transaction.
func (db *DB) UpdateGroup(ctx context.Context, id string, fn func(*models.Group) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update group %s: %w", id, err)
	}
	defer tx.Rollback()

	g, err := getGroup(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := fn(g); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}

	if err := putGroup(ctx, tx, *g); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update group %s: %w", id, err)
	}
	return nil
}

// UpdateGroupTitle renames a group
func (db *DB) UpdateGroupTitle(ctx context.Context, id, title string) error {
	return db.UpdateGroup(ctx, id, func(g *models.Group) error {
		g.Title = title
		return nil
	})
}

func getGroup(ctx context.Context, q querier, id string) (*models.Group, error) {
	var record string
	err := q.QueryRowContext(ctx, "SELECT record FROM groups WHERE id = ?", id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}

	g, err := decodeGroup(record)
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return g, nil
}

func putGroup(ctx context.Context, q querier, g models.Group) error {
	g.Normalize()
	record, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode group %s: %w", g.ID, err)
	}

	// ON CONFLICT keeps the rowid, so overwritten groups keep their position
	_, err = q.ExecContext(ctx, `
		INSERT INTO groups (id, record) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record
	`, g.ID, string(record))
	if err != nil {
		return fmt.Errorf("put group %s: %w", g.ID, err)
	}
	return nil
}

func decodeGroup(record string) (*models.Group, error) {
	g := &models.Group{}
	if err := json.Unmarshal([]byte(record), g); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	g.Normalize()
	return g, nil
}
