package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/tgienger/board/internal/models"
)

// AddTask appends task to the group's task list. It returns
// ErrDuplicateTask if a sibling already has the same ID.
func (db *DB) AddTask(ctx context.Context, groupID string, task models.Task) error {
	return db.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		if g.TaskIndex(task.ID) >= 0 {
			return fmt.Errorf("add task %d to group %s: %w", task.ID, groupID, ErrDuplicateTask)
		}
		g.Tasks = append(g.Tasks, task)
		return nil
	})
}

// RemoveTask removes a task from its group. A missing task is a no-op.
func (db *DB) RemoveTask(ctx context.Context, groupID string, taskID int64) error {
	return db.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		if g.TaskIndex(taskID) < 0 {
			return errNoChange
		}
		g.Tasks = slices.DeleteFunc(g.Tasks, func(t models.Task) bool {
			return t.ID == taskID
		})
		return nil
	})
}

// UpdateTaskTitle renames a task. A missing task is a no-op.
func (db *DB) UpdateTaskTitle(ctx context.Context, groupID string, taskID int64, title string) error {
	return db.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		i := g.TaskIndex(taskID)
		if i < 0 {
			return errNoChange
		}
		g.Tasks[i].Title = title
		return nil
	})
}
