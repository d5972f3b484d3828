package render

import "github.com/tgienger/board/internal/models"

// Labels are the texts of a group's controls
type Labels struct {
	Delete     string
	CreateTask string
}

// Group builds the node tree for g: title, delete control, one task node
// per task in list order, then the create-task control.
func Group(g models.Group, l Labels) *Node {
	list := &Node{Kind: KindTaskList, GroupID: g.ID}
	for _, t := range g.Tasks {
		list.Append(Task(g.ID, t))
	}

	return &Node{
		Kind:    KindGroup,
		GroupID: g.ID,
		Children: []*Node{
			{Kind: KindGroupTitle, GroupID: g.ID, Text: g.Title},
			{Kind: KindDeleteGroup, GroupID: g.ID, Text: l.Delete},
			list,
			{Kind: KindCreateTask, GroupID: g.ID, Text: l.CreateTask},
		},
	}
}

// Task builds the node tree for one task of group groupID.
func Task(groupID string, t models.Task) *Node {
	return &Node{
		Kind:    KindTask,
		GroupID: groupID,
		TaskID:  t.ID,
		Children: []*Node{
			{Kind: KindTaskTitle, GroupID: groupID, TaskID: t.ID, Text: t.Title},
			{Kind: KindTaskDate, GroupID: groupID, TaskID: t.ID, Text: t.Date},
		},
	}
}
