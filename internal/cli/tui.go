package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/validate"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabPassiveStyle = lipgloss.NewStyle().Foreground(colorGray)
	headerStyle     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

type inspectTab int

const (
	tabIssues inspectTab = iota
	tabBoxes
)

// boxRow is one line of the flattened box tree.
type boxRow struct {
	depth int
	box   *layout.Box
}

// flattenBoxes lists b and its descendants in pre-order.
func flattenBoxes(b *layout.Box) []boxRow {
	var rows []boxRow
	var walk func(*layout.Box, int)
	walk = func(b *layout.Box, depth int) {
		rows = append(rows, boxRow{depth: depth, box: b})
		for _, c := range b.Children {
			walk(c, depth+1)
		}
	}
	if b != nil {
		walk(b, 0)
	}
	return rows
}

// =============================================================================
// InspectModel - Interactive issue and box browser
// =============================================================================

// InspectModel is the bubbletea model behind "roomml inspect".
type InspectModel struct {
	Source string
	Issues []validate.Issue
	Boxes  []boxRow
	Tab    inspectTab
	Cursor int
	Offset int
	Height int
}

// NewInspectModel creates a browser over a pipeline result. It opens on
// the issues when there are any, and on the boxes otherwise.
func NewInspectModel(source string, res *pipeline.Result) InspectModel {
	m := InspectModel{
		Source: source,
		Issues: res.Issues,
		Boxes:  flattenBoxes(res.Box),
		Height: 15,
	}
	if len(m.Issues) == 0 && len(m.Boxes) > 0 {
		m.Tab = tabBoxes
	}
	return m
}

func (m InspectModel) rowCount() int {
	if m.Tab == tabIssues {
		return len(m.Issues)
	}
	return len(m.Boxes)
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			if m.Tab == tabIssues {
				m.Tab = tabBoxes
			} else {
				m.Tab = tabIssues
			}
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := m.rowCount(); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.Source))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab switch  q quit"))
	b.WriteString("\n\n")

	if m.rowCount() == 0 {
		if m.Tab == tabIssues {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " no issues")
		} else {
			b.WriteString(listDimStyle.Render("no layout (the document did not parse)"))
		}
		b.WriteString("\n")
		return b.String()
	}

	if m.Tab == tabIssues {
		b.WriteString(m.issueTable())
	} else {
		b.WriteString(m.boxTable())
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rowCount())))

	return b.String()
}

func (m InspectModel) tabs() string {
	errs, warns := validate.Count(m.Issues)
	issues := fmt.Sprintf("Issues (%d errors, %d warnings)", errs, warns)
	boxes := fmt.Sprintf("Boxes (%d)", len(m.Boxes))
	if m.Tab == tabIssues {
		return tabActiveStyle.Render(issues) + "   " + tabPassiveStyle.Render(boxes)
	}
	return tabPassiveStyle.Render(issues) + "   " + tabActiveStyle.Render(boxes)
}

// window returns the visible slice bounds.
func (m InspectModel) window() (int, int) {
	return m.Offset, min(m.Offset+m.Height, m.rowCount())
}

func (m InspectModel) cursorMark(i int) string {
	if i == m.Cursor {
		return "▸ "
	}
	return "  "
}

func (m InspectModel) issueTable() string {
	start, end := m.window()
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		is := m.Issues[i]
		rows = append(rows, []string{m.cursorMark(i), string(is.Level), is.Path, is.Message})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Level", "Path", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			idx := start + row
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			if col == 1 {
				if m.Issues[idx].IsError() {
					return base.Foreground(colorRed)
				}
				return base.Foreground(colorYellow)
			}
			if col == 2 {
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}

func (m InspectModel) boxTable() string {
	start, end := m.window()
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		r := m.Boxes[i]
		rows = append(rows, []string{
			m.cursorMark(i),
			strings.Repeat("  ", r.depth) + r.box.ID,
			string(r.box.Type),
			fmt.Sprintf("%.2f, %.2f, %.2f", r.box.X, r.box.Y, r.box.Z),
			fmt.Sprintf("%.2f × %.2f × %.2f", r.box.W, r.box.D, r.box.H),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Box", "Type", "Position (x, y, z)", "Size (w × d × h)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if start+row == m.Cursor {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// printBoxTree writes the box tree as indented text, one box per line.
func printBoxTree(res *pipeline.Result) {
	for _, r := range flattenBoxes(res.Box) {
		fmt.Printf("%s%s %s  at (%.2f, %.2f, %.2f)  size %.2f × %.2f × %.2f\n",
			strings.Repeat("  ", r.depth), styleValue.Render(r.box.ID), styleDim.Render(string(r.box.Type)),
			r.box.X, r.box.Y, r.box.Z, r.box.W, r.box.D, r.box.H)
	}
}
