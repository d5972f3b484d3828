package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tgienger/board/internal/models"
)

func TestUnavailableFailsEveryCall(t *testing.T) {
	cause := errors.New("disk on fire")
	u := NewUnavailable(cause)
	ctx := context.Background()

	_, err := u.ListGroups(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = u.GetGroup(ctx, "g")
	assert.ErrorIs(t, err, ErrUnavailable)

	for _, err := range []error{
		u.PutGroup(ctx, models.NewGroup("g", "t")),
		u.DeleteGroup(ctx, "g"),
		u.UpdateGroupTitle(ctx, "g", "t"),
		u.AddTask(ctx, "g", models.Task{ID: 1}),
		u.RemoveTask(ctx, "g", 1),
		u.UpdateTaskTitle(ctx, "g", 1, "t"),
	} {
		assert.ErrorIs(t, err, ErrUnavailable)
	}
	assert.NoError(t, u.Close())
}
