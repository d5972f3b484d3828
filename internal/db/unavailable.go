package db

import (
	"context"
	"fmt"

	"github.com/tgienger/board/internal/models"
)

// Unavailable stands in for a store that could not be opened. The board
// keeps working in memory while every call reports ErrUnavailable.
type Unavailable struct {
	cause error
}

// NewUnavailable returns a store that always fails with cause
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{cause: cause}
}

func (u *Unavailable) err() error {
	return fmt.Errorf("%w: %w", ErrUnavailable, u.cause)
}

func (u *Unavailable) ListGroups(context.Context) ([]models.Group, error) { return nil, u.err() }
func (u *Unavailable) GetGroup(context.Context, string) (*models.Group, error) {
	return nil, u.err()
}
func (u *Unavailable) PutGroup(context.Context, models.Group) error           { return u.err() }
func (u *Unavailable) DeleteGroup(context.Context, string) error              { return u.err() }
func (u *Unavailable) UpdateGroupTitle(context.Context, string, string) error { return u.err() }
func (u *Unavailable) AddTask(context.Context, string, models.Task) error     { return u.err() }
func (u *Unavailable) RemoveTask(context.Context, string, int64) error        { return u.err() }
func (u *Unavailable) UpdateTaskTitle(context.Context, string, int64, string) error {
	return u.err()
}
func (u *Unavailable) Close() error { return nil }
