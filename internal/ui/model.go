package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/effortum/effortum/internal/report"
	"github.com/effortum/effortum/internal/state"
	"github.com/effortum/effortum/internal/store"
	"github.com/effortum/effortum/internal/validate"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// Model owns Bubble Tea state for the main TUI experience: one day of tasks,
// the per-project summary for that day, and a single-line add form.
type Model struct {
	ctx context.Context
	app *state.App

	currentDate string
	selected    int

	mode  mode
	input textinput.Model

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeAdd
)

type reloadedMsg struct {
	err error
}

type addResultMsg struct {
	task store.Task
	err  error
}

type stopResultMsg struct {
	id  store.ID
	end string
	err error
}

type copyResultMsg struct {
	project string
	err     error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, app *state.App) Model {
	input := textinput.New()
	input.Placeholder = "HH:MM[-HH:MM] project comment..."
	input.CharLimit = 200

	return Model{
		ctx:         ctx,
		app:         app,
		currentDate: time.Now().Format("2006-01-02"),
		mode:        modeNormal,
		input:       input,
		loading:     true,
		statusLine:  "Loading tasks...",
	}
}

// Init triggers the initial cache hydration.
func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case reloadedMsg:
		return m.handleReloaded(msg)
	case addResultMsg:
		return m.handleAddResult(msg)
	case stopResultMsg:
		return m.handleStopResult(msg)
	case copyResultMsg:
		return m.handleCopyResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeAdd {
		return m.handleAddKey(msg)
	}

	tasks := m.dayTasks()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if len(tasks) > 0 && m.selected < len(tasks)-1 {
			m.selected++
			m.errorLine = ""
		}
	case "up", "k":
		if len(tasks) > 0 && m.selected > 0 {
			m.selected--
			m.errorLine = ""
		}
	case "left", "h", "p":
		return m.gotoDate(m.currentDate, -1)
	case "right", "l", "n":
		return m.gotoDate(m.currentDate, 1)
	case "t":
		m.currentDate = time.Now().Format("2006-01-02")
		m.selected = 0
		m.statusLine = ""
		m.errorLine = ""
	case "r":
		m.loading = true
		m.statusLine = "Reloading..."
		return m, m.reloadCmd()
	case "a":
		return m.beginAdd()
	case "s":
		return m.stopSelected()
	case "c":
		return m.copySelected()
	}

	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitAdd()
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.statusLine = "Cancelled."
		m.errorLine = ""
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) gotoDate(date string, days int) (tea.Model, tea.Cmd) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return m, nil
	}
	m.currentDate = parsed.AddDate(0, 0, days).Format("2006-01-02")
	m.selected = 0
	m.statusLine = ""
	m.errorLine = ""
	return m, nil
}

func (m Model) beginAdd() (tea.Model, tea.Cmd) {
	if open := m.app.OpenTask(); open != nil {
		m.errorLine = fmt.Sprintf("%s is still open; stop it first.", open.Project)
		return m, nil
	}

	m.mode = modeAdd
	m.input.SetValue("")
	m.statusLine = ""
	m.errorLine = ""
	return m, m.input.Focus()
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	start, end, project, comment, err := parseAddInput(m.input.Value())
	if err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	if start == "" {
		// Prefer continuing where the last stop left off.
		if last := m.app.EndTimeOfLastStopped(); last != "" {
			start = last
		} else {
			start = time.Now().Format("15:04")
		}
	}

	for _, message := range []string{
		validate.Date(m.currentDate),
		validate.Start(start),
		validate.End(end, start),
		validate.Project(project),
	} {
		if message != "" {
			m.errorLine = message
			return m, nil
		}
	}

	task := store.Task{
		ID:        store.ID(uuid.NewString()),
		Date:      m.currentDate,
		TimeStart: start,
		TimeEnd:   end,
		Project:   project,
		Comment:   comment,
	}

	m.mode = modeNormal
	m.input.Blur()
	m.statusLine = "Saving task..."
	m.errorLine = ""
	return m, m.addTaskCmd(task)
}

func (m Model) stopSelected() (tea.Model, tea.Cmd) {
	tasks := m.dayTasks()
	if len(tasks) == 0 {
		return m, nil
	}
	task := tasks[m.selected]
	if task.TimeEnd != "" {
		m.errorLine = "Task already has an end time."
		return m, nil
	}

	m.statusLine = "Stopping task..."
	m.errorLine = ""
	return m, m.stopTaskCmd(task.ID)
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	tasks := m.dayTasks()
	if len(tasks) == 0 {
		return m, nil
	}
	project := tasks[m.selected].Project

	m.statusLine = fmt.Sprintf("Copying comments of %s...", project)
	m.errorLine = ""
	return m, m.copyCommentsCmd(project)
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load tasks: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.clampSelection()
	m.statusLine = fmt.Sprintf("Loaded %d task%s.", len(m.dayTasks()), plural(len(m.dayTasks())))
	return m, nil
}

func (m Model) handleAddResult(msg addResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Add failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.clampSelection()
	m.statusLine = fmt.Sprintf("Added %s %s.", msg.task.Project, msg.task.TimeStart)
	m.errorLine = ""
	return m, nil
}

func (m Model) handleStopResult(msg stopResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Stop failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.statusLine = fmt.Sprintf("Stopped at %s.", msg.end)
	m.errorLine = ""
	return m, nil
}

func (m Model) handleCopyResult(msg copyResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to copy comments to clipboard: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.statusLine = fmt.Sprintf("Copied comments of %s.", msg.project)
	m.errorLine = ""
	return m, nil
}

func (m Model) reloadCmd() tea.Cmd {
	app := m.app
	ctx := m.ctx
	return func() tea.Msg {
		return reloadedMsg{err: app.Load(ctx)}
	}
}

func (m Model) addTaskCmd(task store.Task) tea.Cmd {
	app := m.app
	ctx := m.ctx
	return func() tea.Msg {
		if err := app.AddTask(ctx, task); err != nil {
			return addResultMsg{task: task, err: err}
		}
		return addResultMsg{task: task}
	}
}

func (m Model) stopTaskCmd(id store.ID) tea.Cmd {
	app := m.app
	ctx := m.ctx
	return func() tea.Msg {
		if err := app.StopTask(ctx, id, time.Now()); err != nil {
			return stopResultMsg{id: id, err: err}
		}
		return stopResultMsg{id: id, end: app.EndTimeOfLastStopped()}
	}
}

func (m Model) copyCommentsCmd(project string) tea.Cmd {
	app := m.app
	date := m.currentDate
	return func() tea.Msg {
		_, err := report.CopyComments(app.Tasks(), project, report.Day(date))
		return copyResultMsg{project: project, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header, err := time.Parse("2006-01-02", m.currentDate)
	title := m.currentDate
	if err == nil {
		title = header.Format("Monday, 02 January 2006")
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	tasks := m.dayTasks()
	if m.loading {
		b.WriteString("Loading...\n")
	} else if len(tasks) == 0 {
		b.WriteString("(no tasks)\n")
	} else {
		for i, task := range tasks {
			line := formatTaskLine(task)
			if i == m.selected {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	totals := report.SummarizeByProject(m.app.Tasks(), report.Day(m.currentDate))
	if len(totals) > 0 {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("Summary"))
		b.WriteByte('\n')
		for _, total := range totals {
			fmt.Fprintf(&b, "%s: %s\n", total.Project, report.FormatMinutes(total.TotalMinutes))
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString("New task (HH:MM[-HH:MM] project comment; Enter to save, Esc to cancel):\n")
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Navigation: <-/h/p prev  ->/l/n next  j/k select  t today  r reload"))
	b.WriteByte('\n')
	b.WriteString(faintStyle.Render("Actions: a add  s stop  c copy comments  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) dayTasks() []store.Task {
	return report.FilterTasks(m.app.Tasks(), report.Day(m.currentDate))
}

func (m *Model) clampSelection() {
	tasks := m.dayTasks()
	if len(tasks) == 0 {
		m.selected = 0
		return
	}
	if m.selected >= len(tasks) {
		m.selected = len(tasks) - 1
	}
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func formatTaskLine(task store.Task) string {
	end := task.TimeEnd
	if end == "" {
		end = "..."
	}

	var builder strings.Builder
	builder.Grow(32 + len(task.Project) + len(task.Comment))

	fmt.Fprintf(&builder, "%s-%s [%s] %s", task.TimeStart, end, report.Duration(task.TimeStart, task.TimeEnd), task.Project)
	if task.Comment != "" {
		builder.WriteString(": ")
		builder.WriteString(task.Comment)
	}

	return builder.String()
}

// parseAddInput splits a single add line into its parts. The leading token
// may be a start time or a start-end pair; the next token is the project and
// everything after it the comment. A missing time token leaves start empty
// for the caller to fill in.
func parseAddInput(input string) (start, end, project, comment string, err error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", "", "", "", fmt.Errorf("task cannot be empty")
	}

	rest := fields
	if looksLikeTime(fields[0]) {
		times := strings.SplitN(fields[0], "-", 2)
		start = times[0]
		if _, parseErr := time.Parse("15:04", start); parseErr != nil {
			return "", "", "", "", fmt.Errorf("invalid time %q (expected HH:MM)", start)
		}
		if len(times) == 2 {
			end = times[1]
			if _, parseErr := time.Parse("15:04", end); parseErr != nil {
				return "", "", "", "", fmt.Errorf("invalid time %q (expected HH:MM)", end)
			}
		}
		rest = fields[1:]
	}

	if len(rest) == 0 {
		return "", "", "", "", fmt.Errorf("project is required")
	}
	project = rest[0]
	comment = strings.Join(rest[1:], " ")
	return start, end, project, comment, nil
}

func looksLikeTime(token string) bool {
	if len(token) < 5 {
		return false
	}
	return token[2] == ':'
}
