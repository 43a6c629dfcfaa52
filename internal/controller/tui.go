package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// planRow is one line of the renumbering plan viewer.
type planRow struct {
	path     string
	category string
	changes  int
}

// runPlanPager shows the plan rows. Short plans print directly; longer ones
// open an interactive scrollable viewer.
func runPlanPager(output io.Writer, rows []planRow, totalChanges int) error {
	model := newPlanPagerModel(rows, totalChanges)

	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// planPagerModel is the Bubble Tea model for scrolling through a plan.
type planPagerModel struct {
	rows         []planRow
	totalChanges int
	height       int
	width        int
	offset       int
	quitting     bool
}

func newPlanPagerModel(rows []planRow, totalChanges int) planPagerModel {
	return planPagerModel{
		rows:         rows,
		totalChanges: totalChanges,
	}
}

func (pm planPagerModel) Init() tea.Cmd {
	return nil
}

func (pm planPagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

//nolint:exhaustive // Key handling requires multiple cases for UI navigation
func (pm planPagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.offset = clamp(pm.offset+1, 0, pm.maxOffset())
		return pm, nil

	case "up", "k":
		pm.offset = clamp(pm.offset-1, 0, pm.maxOffset())
		return pm, nil

	case "g", "home":
		pm.offset = 0
		return pm, nil

	case "G", "end":
		pm.offset = pm.maxOffset()
		return pm, nil

	case "d", "pgdown":
		pm.offset = clamp(pm.offset+pm.itemsPerPage(), 0, pm.maxOffset())
		return pm, nil

	case "u", "pgup":
		pm.offset = clamp(pm.offset-pm.itemsPerPage(), 0, pm.maxOffset())
		return pm, nil
	}

	return pm, nil
}

// itemsPerPage calculates how many rows fit on screen, reserving space for
// the header, totals and the key help footer.
func (pm planPagerModel) itemsPerPage() int {
	if pm.height == 0 {
		return 10
	}

	reserved := 8

	available := pm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (pm planPagerModel) maxOffset() int {
	maxOff := len(pm.rows) - pm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the list is too large to fit on screen.
func (pm planPagerModel) needsPagination() bool {
	if len(pm.rows) == 0 {
		return false
	}

	return len(pm.rows) > pm.itemsPerPage() && pm.height > 0
}

func (pm planPagerModel) View() string {
	var b strings.Builder

	b.WriteString("Planned EventId changes\n\n")

	if len(pm.rows) == 0 {
		b.WriteString("  nothing to change\n")
		return b.String()
	}

	start := pm.offset

	end := start + pm.itemsPerPage()
	if end > len(pm.rows) {
		end = len(pm.rows)
	}

	for _, row := range pm.rows[start:end] {
		fmt.Fprintf(&b, "  %-60s %-16s %4d\n", row.path, row.category, row.changes)
	}

	fmt.Fprintf(&b, "\n  %d file(s), %d EventId change(s)\n", len(pm.rows), pm.totalChanges)

	if pm.needsPagination() {
		fmt.Fprintf(&b, "  [%d-%d/%d]  j/k scroll, d/u page, g/G ends, q quit\n",
			start+1, end, len(pm.rows))
	}

	return b.String()
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
