package models

import "time"

// DefaultDateLayout renders dates as DD.MM.YY
const DefaultDateLayout = "02.01.06"

// Group is a named collection of tasks and the unit of persistence.
// Tasks are embedded; every task change rewrites the whole group.
type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Task is a titled, dated item owned by exactly one group
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// NewGroup returns an empty group ready to be stored
func NewGroup(id, title string) Group {
	return Group{ID: id, Title: title, Tasks: []Task{}}
}

// NewTask returns a task stamped with the formatted creation date
func NewTask(id int64, title string, created time.Time, layout string) Task {
	return Task{ID: id, Title: title, Date: FormatDate(created, layout)}
}

// FormatDate formats t with layout, falling back to DefaultDateLayout.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// TaskIndex returns the position of the task with id, or -1
func (g *Group) TaskIndex(id int64) int {
	for i, t := range g.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Normalize makes sure Tasks is never nil so records always carry an array.
func (g *Group) Normalize() {
	if g.Tasks == nil {
		g.Tasks = []Task{}
	}
}
