package views

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tgienger/board/internal/db"
	"github.com/tgienger/board/internal/models"
)

// memStore is an in-memory GroupStore that records every call
type memStore struct {
	mu     sync.Mutex
	groups []models.Group
	calls  []string
	fail   error
}

func (s *memStore) record(call string) error {
	s.calls = append(s.calls, call)
	return s.fail
}

func (s *memStore) index(id string) int {
	return slices.IndexFunc(s.groups, func(g models.Group) bool { return g.ID == id })
}

func (s *memStore) ListGroups(context.Context) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("list"); err != nil {
		return nil, err
	}
	return slices.Clone(s.groups), nil
}

func (s *memStore) PutGroup(_ context.Context, g models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("put " + g.ID); err != nil {
		return err
	}
	g.Tasks = slices.Clone(g.Tasks)
	if i := s.index(g.ID); i >= 0 {
		s.groups[i] = g
	} else {
		s.groups = append(s.groups, g)
	}
	return nil
}

func (s *memStore) DeleteGroup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete " + id); err != nil {
		return err
	}
	if i := s.index(id); i >= 0 {
		s.groups = slices.Delete(s.groups, i, i+1)
	}
	return nil
}

func (s *memStore) update(call, id string, fn func(*models.Group)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(call); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("group %s: %w", id, db.ErrNotFound)
	}
	fn(&s.groups[i])
	return nil
}

func (s *memStore) UpdateGroupTitle(_ context.Context, id, title string) error {
	return s.update("title "+id, id, func(g *models.Group) { g.Title = title })
}

func (s *memStore) AddTask(_ context.Context, groupID string, task models.Task) error {
	return s.update("add "+groupID, groupID, func(g *models.Group) { g.Tasks = append(g.Tasks, task) })
}

func (s *memStore) RemoveTask(_ context.Context, groupID string, taskID int64) error {
	return s.update("remove "+groupID, groupID, func(g *models.Group) {
		g.Tasks = slices.DeleteFunc(g.Tasks, func(t models.Task) bool { return t.ID == taskID })
	})
}

func (s *memStore) UpdateTaskTitle(_ context.Context, groupID string, taskID int64, title string) error {
	return s.update("task title "+groupID, groupID, func(g *models.Group) {
		if i := g.TaskIndex(taskID); i >= 0 {
			g.Tasks[i].Title = title
		}
	})
}

func (s *memStore) get(id string) (models.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.groups[i], true
	}
	return models.Group{}, false
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
