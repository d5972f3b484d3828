package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/tgienger/board/internal/config"
	"github.com/tgienger/board/internal/db"
	"github.com/tgienger/board/internal/ids"
	"github.com/tgienger/board/internal/logging"
	"github.com/tgienger/board/internal/models"
	"github.com/tgienger/board/internal/ui/keys"
	"github.com/tgienger/board/internal/ui/render"
	"github.com/tgienger/board/internal/ui/styles"
)

// GroupStore is the persistence the board needs
type GroupStore interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	PutGroup(ctx context.Context, g models.Group) error
	DeleteGroup(ctx context.Context, id string) error
	UpdateGroupTitle(ctx context.Context, id, title string) error
	AddTask(ctx context.Context, groupID string, task models.Task) error
	RemoveTask(ctx context.Context, groupID string, taskID int64) error
	UpdateTaskTitle(ctx context.Context, groupID string, taskID int64, title string) error
}

// Options configures a BoardView
type Options struct {
	IDs        ids.Generator
	Now        func() time.Time
	Labels     config.Labels
	DateLayout string
	Logger     *slog.Logger
}

type targetKind int

const (
	targetGroupTitle targetKind = iota
	targetDeleteGroup
	targetTask
	targetCreateTask
	targetNewGroup
)

// target is one focusable element of the board
type target struct {
	kind    targetKind
	groupID string
	taskID  int64
}

// BoardView shows every group and mirrors gestures into the store.
// View state is patched first; store calls then run one at a time, in
// gesture order, on a store queue that reports failures back as
// storeFailedMsg.
type BoardView struct {
	store  GroupStore
	queue  *storeQueue
	ids    ids.Generator
	now    func() time.Time
	labels config.Labels
	layout string
	log    *slog.Logger
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// groups is the rendered board, in insertion order
	groups  []*render.Node
	loaded  bool
	cursor  int
	scrollY int

	edit  *editSession
	armed *target // task waiting for the second delete press

	status      string
	statusError bool

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewBoardView creates the board view
func NewBoardView(ctx context.Context, store GroupStore, opts Options) *BoardView {
	if opts.IDs == nil {
		opts.IDs = ids.NewTimestamp(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Labels == (config.Labels{}) {
		opts.Labels = config.LabelsFor("en")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &BoardView{
		store:  store,
		queue:  newStoreQueue(ctx),
		ids:    opts.IDs,
		now:    opts.Now,
		labels: opts.Labels,
		layout: opts.DateLayout,
		log:    opts.Logger,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

type groupsLoadedMsg struct {
	groups []models.Group
}

// storeFailedMsg reports a store call that did not persist
type storeFailedMsg struct {
	op      string
	groupID string
	err     error
}

// Init loads the stored groups and starts listening for store results
func (v *BoardView) Init() tea.Cmd {
	v.queue.enqueue(v.loadGroups)
	return v.waitForStore
}

// Close waits for queued store calls to finish. Call it after the
// program exits and before closing the store.
func (v *BoardView) Close() error {
	return v.queue.Close()
}

func (v *BoardView) waitForStore() tea.Msg {
	return v.queue.wait()
}

func (v *BoardView) loadGroups(ctx context.Context) tea.Msg {
	groups, err := v.store.ListGroups(ctx)
	if err != nil {
		return storeFailedMsg{op: "load groups", err: err}
	}
	return groupsLoadedMsg{groups: groups}
}

// SetStatus shows a message in the status line
func (v *BoardView) SetStatus(msg string, isError bool) {
	v.status = msg
	v.statusError = isError
}

// persist queues fn behind every earlier store call; an error comes back
// as a storeFailedMsg
func (v *BoardView) persist(op, groupID string, fn func(ctx context.Context) error) {
	v.queue.enqueue(func(ctx context.Context) tea.Msg {
		if err := fn(ctx); err != nil {
			return storeFailedMsg{op: op, groupID: groupID, err: err}
		}
		return nil
	})
}

// Update handles messages
func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case groupsLoadedMsg:
		for _, g := range msg.groups {
			v.groups = append(v.groups, render.Group(g, v.renderLabels()))
		}
		v.loaded = true
		v.log.Debug("groups loaded", "count", len(msg.groups))
		return v, v.waitForStore

	case storeFailedMsg:
		v.handleStoreFailure(msg)
		return v, v.waitForStore

	case tea.BlurMsg:
		// losing terminal focus ends an edit the same way enter does
		v.commitEdit()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.edit != nil {
			return v.updateEditing(msg)
		}

		return v.updateNormal(msg)
	}

	if v.edit != nil {
		return v, v.edit.forward(msg)
	}
	return v, nil
}

func (v *BoardView) handleStoreFailure(msg storeFailedMsg) {
	if msg.op == "load groups" {
		v.loaded = true
	}

	// The target vanished between gesture and store call; nothing to save.
	if errors.Is(msg.err, db.ErrNotFound) {
		v.log.Debug("store target missing", "op", msg.op, "group", msg.groupID, "err", msg.err)
		return
	}

	if errors.Is(msg.err, db.ErrUnavailable) {
		v.log.Warn("store unavailable", "op", msg.op, "group", msg.groupID, "err", msg.err)
		v.SetStatus("Storage unavailable, changes will not be saved", true)
		return
	}

	v.log.Error("store operation failed", "op", msg.op, "group", msg.groupID, "err", msg.err)
	v.SetStatus(fmt.Sprintf("Not saved (%s): %v", msg.op, msg.err), true)
}

func (v *BoardView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		v.commitEdit()
		return v, tea.Quit
	}
	if commitTrigger(msg) {
		v.commitEdit()
		return v, nil
	}
	return v, v.edit.update(msg)
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key other than a second delete press disarms
	if !key.Matches(msg, v.keys.Delete) {
		v.armed = nil
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up), key.Matches(msg, v.keys.ShiftTab):
		v.moveCursor(-1)
		return v, nil

	case key.Matches(msg, v.keys.Down), key.Matches(msg, v.keys.Tab):
		v.moveCursor(1)
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Back):
		v.SetStatus("", false)
		return v, nil

	case key.Matches(msg, v.keys.NewGroup):
		v.createGroup()
		return v, nil

	case key.Matches(msg, v.keys.NewTask):
		if t, ok := v.current(); ok && t.groupID != "" {
			v.createTask(t.groupID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.activate()
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		return v, v.startEdit()

	case key.Matches(msg, v.keys.Delete):
		v.deleteTaskPress()
		return v, nil
	}

	return v, nil
}

// activate handles enter on the focused control
func (v *BoardView) activate() {
	t, ok := v.current()
	if !ok {
		return
	}
	switch t.kind {
	case targetDeleteGroup:
		v.deleteGroup(t.groupID)
	case targetCreateTask:
		v.createTask(t.groupID)
	case targetNewGroup:
		v.createGroup()
	}
}

func (v *BoardView) createGroup() {
	g := models.NewGroup(v.ids.GroupID(), v.labels.NewGroup)
	v.groups = append(v.groups, render.Group(g, v.renderLabels()))
	v.focusOn(target{kind: targetGroupTitle, groupID: g.ID})
	v.log.Debug("group created", "group", g.ID)

	v.persist("create group", g.ID, func(ctx context.Context) error {
		return v.store.PutGroup(ctx, g)
	})
}

func (v *BoardView) deleteGroup(groupID string) {
	// the cursor lands on whatever follows the removed group
	for i, t := range v.targets() {
		if t.groupID == groupID {
			v.cursor = i
			break
		}
	}
	for i, n := range v.groups {
		if n.GroupID == groupID {
			v.groups = append(v.groups[:i:i], v.groups[i+1:]...)
			break
		}
	}
	v.clampCursor()
	v.log.Debug("group deleted", "group", groupID)

	v.persist("delete group", groupID, func(ctx context.Context) error {
		return v.store.DeleteGroup(ctx, groupID)
	})
}

// createTask appends the task to the view without waiting for the store
func (v *BoardView) createTask(groupID string) {
	group := v.groupNode(groupID)
	if group == nil {
		return
	}

	cur, hasCursor := v.current()
	task := models.NewTask(v.ids.TaskID(), v.labels.NewTask, v.now(), v.layout)
	group.Find(render.KindTaskList).Append(render.Task(groupID, task))
	if hasCursor {
		v.focusOn(cur)
	}
	v.log.Debug("task created", "group", groupID, "task", task.ID)

	v.persist("create task", groupID, func(ctx context.Context) error {
		return v.store.AddTask(ctx, groupID, task)
	})
}

// deleteTaskPress arms on the first press and deletes on the second
func (v *BoardView) deleteTaskPress() {
	t, ok := v.current()
	if !ok || t.kind != targetTask {
		v.armed = nil
		return
	}

	if v.armed == nil || *v.armed != t {
		v.armed = &t
		v.SetStatus("Press d again to delete the task", false)
		return
	}

	v.armed = nil
	v.SetStatus("", false)
	v.deleteTask(t.groupID, t.taskID)
}

func (v *BoardView) deleteTask(groupID string, taskID int64) {
	group := v.groupNode(groupID)
	if group == nil {
		return
	}
	group.Find(render.KindTaskList).Remove(func(n *render.Node) bool {
		return n.TaskID == taskID
	})
	v.clampCursor()
	v.log.Debug("task deleted", "group", groupID, "task", taskID)

	v.persist("delete task", groupID, func(ctx context.Context) error {
		return v.store.RemoveTask(ctx, groupID, taskID)
	})
}

// startEdit opens an edit session on the focused group or task title
func (v *BoardView) startEdit() tea.Cmd {
	t, ok := v.current()
	if !ok || (t.kind != targetGroupTitle && t.kind != targetTask) {
		return nil
	}
	label := v.labelNode(t)
	if label == nil {
		return nil
	}

	v.edit = newEditSession(t, label.Text, v.innerWidth())
	return v.edit.start()
}

// commitEdit finishes the edit session and persists the new title
func (v *BoardView) commitEdit() {
	session := v.edit
	v.edit = nil
	if session == nil {
		return
	}
	text, ok := session.commit()
	if !ok {
		return
	}

	t := session.target
	label := v.labelNode(t)
	if label == nil {
		return
	}
	label.Text = text

	if t.kind == targetGroupTitle {
		v.persist("rename group", t.groupID, func(ctx context.Context) error {
			return v.store.UpdateGroupTitle(ctx, t.groupID, text)
		})
		return
	}
	v.persist("rename task", t.groupID, func(ctx context.Context) error {
		return v.store.UpdateTaskTitle(ctx, t.groupID, t.taskID, text)
	})
}

func (v *BoardView) renderLabels() render.Labels {
	return render.Labels{Delete: v.labels.Delete, CreateTask: v.labels.CreateTask}
}

func (v *BoardView) groupNode(groupID string) *render.Node {
	for _, n := range v.groups {
		if n.GroupID == groupID {
			return n
		}
	}
	return nil
}

// labelNode returns the text node a title target edits
func (v *BoardView) labelNode(t target) *render.Node {
	group := v.groupNode(t.groupID)
	if group == nil {
		return nil
	}
	switch t.kind {
	case targetGroupTitle:
		return group.Find(render.KindGroupTitle)
	case targetTask:
		return group.TaskNode(t.taskID).Find(render.KindTaskTitle)
	}
	return nil
}

// targets lists focusable elements in display order
func (v *BoardView) targets() []target {
	var out []target
	for _, g := range v.groups {
		out = append(out,
			target{kind: targetGroupTitle, groupID: g.GroupID},
			target{kind: targetDeleteGroup, groupID: g.GroupID},
		)
		for _, task := range g.Find(render.KindTaskList).Children {
			out = append(out, target{kind: targetTask, groupID: g.GroupID, taskID: task.TaskID})
		}
		out = append(out, target{kind: targetCreateTask, groupID: g.GroupID})
	}
	return append(out, target{kind: targetNewGroup})
}

func (v *BoardView) current() (target, bool) {
	ts := v.targets()
	if v.cursor < 0 || v.cursor >= len(ts) {
		return target{}, false
	}
	return ts[v.cursor], true
}

func (v *BoardView) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *BoardView) focusOn(t target) {
	for i, candidate := range v.targets() {
		if candidate == t {
			v.cursor = i
			break
		}
	}
	v.ensureVisible()
}

func (v *BoardView) clampCursor() {
	v.cursor = clamp(v.cursor, 0, len(v.targets())-1)
	v.ensureVisible()
}

// ensureVisible scrolls so the cursor line is on screen
func (v *BoardView) ensureVisible() {
	visible := v.visibleLines()
	if visible <= 0 {
		v.scrollY = 0
		return
	}
	_, cursorLine := v.boardLines()
	if cursorLine < v.scrollY {
		v.scrollY = cursorLine
	} else if cursorLine >= v.scrollY+visible {
		v.scrollY = cursorLine - visible + 1
	}
}

// visibleLines is the height left for groups, or 0 when unknown
func (v *BoardView) visibleLines() int {
	if v.height == 0 {
		return 0
	}
	// header (2), status (1), help (3)
	return max(v.height-6, 3)
}

func (v *BoardView) contentWidth() int {
	if v.width == 0 {
		return styles.MaxWidth
	}
	return styles.ContentWidth(v.width)
}

// innerWidth is the text width inside a group box
func (v *BoardView) innerWidth() int {
	return max(v.contentWidth()-4, 20)
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val > maxVal {
		val = maxVal
	}
	if val < minVal {
		val = minVal
	}
	return val
}

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	lines, _ := v.boardLines()
	if visible := v.visibleLines(); visible > 0 {
		end := min(v.scrollY+visible, len(lines))
		start := min(v.scrollY, end)
		lines = lines[start:end]
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

// boardLines renders every group and the new-group control as lines and
// reports which line holds the cursor.
func (v *BoardView) boardLines() ([]string, int) {
	cur, _ := v.current()
	var lines []string
	cursorLine := 0

	if len(v.groups) == 0 {
		lines = append(lines, v.styles.TitleMuted.Render("No groups yet. Press 'n' to create one."), "")
	}

	for _, g := range v.groups {
		rows, focusRow := v.renderGroupRows(g, cur)
		block := v.styles.Group.Width(v.innerWidth() + 2).Render(strings.Join(rows, "\n"))
		if focusRow >= 0 {
			// +1 for the top border
			cursorLine = len(lines) + 1 + focusRow
		}
		lines = append(lines, strings.Split(block, "\n")...)
	}

	if cur.kind == targetNewGroup {
		cursorLine = len(lines)
		lines = append(lines, v.styles.ControlFocused.Render(v.labels.CreateGroup))
	} else {
		lines = append(lines, v.styles.Control.Render(v.labels.CreateGroup))
	}
	return lines, cursorLine
}

// renderGroupRows returns one row per line of the group and the row index
// holding cur, or -1.
func (v *BoardView) renderGroupRows(g *render.Node, cur target) ([]string, int) {
	s := v.styles
	width := v.innerWidth()
	focusRow := -1

	// title row: editable title on the left, delete control on the right
	titleTarget := target{kind: targetGroupTitle, groupID: g.GroupID}
	deleteTarget := target{kind: targetDeleteGroup, groupID: g.GroupID}

	deleteStyle := s.Delete
	if cur == deleteTarget {
		deleteStyle = s.DeleteFocused
		focusRow = 0
	}
	right := deleteStyle.Render(g.Find(render.KindDeleteGroup).Text)

	titleStyle := s.GroupTitle
	if cur == titleTarget {
		titleStyle = s.GroupSelected
		focusRow = 0
	}
	left := v.renderLabel(titleTarget, g.Find(render.KindGroupTitle).Text, width-lipgloss.Width(right)-1, titleStyle)
	rows := []string{spread(left, right, width)}

	for _, task := range g.Find(render.KindTaskList).Children {
		t := target{kind: targetTask, groupID: g.GroupID, taskID: task.TaskID}

		style := s.TaskItem
		switch {
		case v.armed != nil && *v.armed == t:
			style = s.TaskArmed
			focusRow = len(rows)
		case cur == t:
			style = s.TaskSelected
			focusRow = len(rows)
		}

		date := s.TaskDate.Render(task.Find(render.KindTaskDate).Text)
		title := v.renderLabel(t, task.Find(render.KindTaskTitle).Text, width-lipgloss.Width(date)-1, style)
		rows = append(rows, spread(title, date, width))
	}

	createTarget := target{kind: targetCreateTask, groupID: g.GroupID}
	createStyle := s.Control
	if cur == createTarget {
		createStyle = s.ControlFocused
		focusRow = len(rows)
	}
	rows = append(rows, createStyle.Render(g.Find(render.KindCreateTask).Text))

	return rows, focusRow
}

// renderLabel draws a title, or the live editor when t is being edited
func (v *BoardView) renderLabel(t target, text string, width int, style lipgloss.Style) string {
	if v.edit != nil && v.edit.target == t && v.edit.editing() {
		if v.edit.selected {
			return v.styles.Input.Reverse(true).Render(v.edit.input.Value())
		}
		return v.styles.Input.Render(v.edit.input.View())
	}
	width -= style.GetHorizontalFrameSize()
	if width < 1 {
		width = 1
	}
	return style.Render(truncate.StringWithTail(text, uint(width), "…"))
}

// spread puts left and right at the two ends of a width-wide row
func spread(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (v *BoardView) renderHeader() string {
	s := v.styles
	count := fmt.Sprintf("%d groups", len(v.groups))
	if len(v.groups) == 1 {
		count = "1 group"
	}
	return s.Title.Render("Board") + "  " + s.TitleMuted.Render(count)
}

func (v *BoardView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	if v.statusError {
		return v.styles.StatusError.Render(v.status)
	}
	return v.styles.StatusBar.Render(v.status)
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	if v.edit != nil {
		return s.Help.Render(s.HelpKey.Render("↵") + " save • " + s.HelpKey.Render("esc") + " done")
	}

	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	return s.Help.Render(
		fmt.Sprintf("%s activate • %s group • %s task • %s rename • %s delete task • %s quit",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("a"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("dd"),
			s.HelpKey.Render("q"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↑/↓") + "    move",
		s.HelpKey.Render("↵") + "      activate control",
		s.HelpKey.Render("n") + "      new group",
		s.HelpKey.Render("a") + "      add task to group",
		s.HelpKey.Render("e") + "      rename group or task",
		s.HelpKey.Render("dd") + "     delete task",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
