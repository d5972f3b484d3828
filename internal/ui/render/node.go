// Package render turns groups into view-node trees. It has no store access
// and no styling; the board view draws the trees and patches them in place.
package render

// Kind identifies what a node represents
type Kind int

const (
	KindGroup Kind = iota
	KindGroupTitle
	KindDeleteGroup
	KindTaskList
	KindTask
	KindTaskTitle
	KindTaskDate
	KindCreateTask
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindGroupTitle:
		return "group_title"
	case KindDeleteGroup:
		return "group_delete"
	case KindTaskList:
		return "group_tasks"
	case KindTask:
		return "task"
	case KindTaskTitle:
		return "task_title"
	case KindTaskDate:
		return "task_date"
	case KindCreateTask:
		return "create_task"
	default:
		return "unknown"
	}
}

// Node is one element of a rendered group. GroupID is set on every node of
// a group subtree; TaskID on every node of a task subtree.
type Node struct {
	Kind     Kind
	GroupID  string
	TaskID   int64
	Text     string
	Children []*Node
}

// Find returns the first node of kind in depth-first order, n included.
func (n *Node) Find(kind Kind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// Append adds child at the end of n's children.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Remove drops the first direct child matching match and reports whether
// one was removed.
func (n *Node) Remove(match func(*Node) bool) bool {
	for i, c := range n.Children {
		if match(c) {
			n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// TaskNode returns the task subtree with id, or nil.
func (n *Node) TaskNode(id int64) *Node {
	list := n.Find(KindTaskList)
	if list == nil {
		return nil
	}
	for _, c := range list.Children {
		if c.Kind == KindTask && c.TaskID == id {
			return c
		}
	}
	return nil
}
