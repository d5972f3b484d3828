package views

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreQueueRunsJobsInOrder(t *testing.T) {
	q := newStoreQueue(context.Background())

	var order []int
	for i := 0; i < 100; i++ {
		i := i
		q.enqueue(func(context.Context) tea.Msg {
			order = append(order, i)
			return nil
		})
	}
	require.NoError(t, q.Close())

	require.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestStoreQueueDeliversResults(t *testing.T) {
	q := newStoreQueue(context.Background())
	q.enqueue(func(context.Context) tea.Msg { return "first" })
	q.enqueue(func(context.Context) tea.Msg { return nil })
	q.enqueue(func(context.Context) tea.Msg { return "second" })

	assert.Equal(t, "first", q.wait())
	assert.Equal(t, "second", q.wait())

	require.NoError(t, q.Close())
	assert.Nil(t, q.wait(), "a closed, drained queue has nothing to report")
}

func TestStoreQueueCloseIsIdempotent(t *testing.T) {
	q := newStoreQueue(context.Background())
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	ran := false
	q.enqueue(func(context.Context) tea.Msg {
		ran = true
		return nil
	})
	assert.False(t, ran)
}
