// Package ui provides the results browser terminal interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-eclipses/internal/eclipse"
	"github.com/litescript/ls-eclipses/internal/version"
)

// Result is the finished search handed to the browser.
type Result struct {
	Provider   string
	StartYear  int
	EndYear    int
	MaxGapDays float64
	Events     []SearchEvent
	Pairs      []eclipse.Pair
	Stats      eclipse.Stats
}

// SearchEvent pairs an enumerated event with its display row.
type SearchEvent struct {
	Row string
}

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewPairs ViewMode = iota
	ViewEvents
)

// Model is the root Bubble Tea model: a pair list with a detail panel,
// and an events view behind tab.
type Model struct {
	result Result

	viewMode ViewMode
	cursor   int
	offset   int
	width    int
	height   int
	ready    bool
}

// New creates a new browser model for a finished search.
func New(result Result) Model {
	return Model{result: result}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "e":
			if m.viewMode == ViewPairs {
				m.viewMode = ViewEvents
			} else {
				m.viewMode = ViewPairs
			}
			m.cursor = 0
			m.offset = 0

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = m.listLen() - 1
			if m.cursor < 0 {
				m.cursor = 0
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	m.clampScroll()
	return m, nil
}

func (m Model) listLen() int {
	if m.viewMode == ViewEvents {
		return len(m.result.Events)
	}
	return len(m.result.Pairs)
}

func (m *Model) clampScroll() {
	visible := m.listHeight()
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) listHeight() int {
	// Header, status line, footer, and the detail panel in pairs view.
	reserved := 4
	if m.viewMode == ViewPairs {
		reserved += detailPanelHeight
	}
	return m.height - reserved
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if m.viewMode == ViewEvents {
		b.WriteString(m.renderEventList())
	} else {
		b.WriteString(m.renderPairList())
		b.WriteString("\n")
		b.WriteString(m.renderPairDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf(" ls-eclipses %s ", version.Version))

	rangeStr := fmt.Sprintf("%s to %s", formatYear(m.result.StartYear), formatYear(m.result.EndYear))
	sub := dimStyle.Render(fmt.Sprintf("  %s · gap ≤ %.0f days · %s",
		rangeStr, m.result.MaxGapDays, m.result.Provider))

	return title + sub
}

func (m Model) renderStatus() string {
	st := m.result.Stats
	return statusStyle.Render(fmt.Sprintf(
		"%d pairs · %d candidate windows · %d visibility queries · %d recovered errors",
		len(m.result.Pairs), st.PairsConsidered, st.VisibilityQueries, st.RecoveredErrors))
}

func (m Model) renderPairList() string {
	if len(m.result.Pairs) == 0 {
		return dimStyle.Render("  No eclipse pairs found in this range.")
	}

	visible := m.listHeight()
	var lines []string

	for i := m.offset; i < len(m.result.Pairs) && i < m.offset+visible; i++ {
		p := m.result.Pairs[i]
		line := fmt.Sprintf("%3d. %-6s + %-6s  %s  %4.1fd  %d site(s)",
			i+1, p.First.Kind, p.Second.Kind,
			eclipse.FormatJD(p.First.JD), p.GapDays, len(p.Sites))

		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	return strings.Join(lines, "\n")
}

// detailPanelHeight is the fixed height of the pair detail panel.
const detailPanelHeight = 8

func (m Model) renderPairDetail() string {
	if len(m.result.Pairs) == 0 || m.cursor >= len(m.result.Pairs) {
		return ""
	}
	p := m.result.Pairs[m.cursor]

	var lines []string
	lines = append(lines, labelStyle.Render("Eclipse 1  ")+
		fmt.Sprintf("%-6s %-10s %s  mag %.3f  γ %+.3f",
			p.First.Kind, p.First.Type, eclipse.FormatJD(p.First.JD),
			p.First.Magnitude, p.First.Gamma))
	lines = append(lines, labelStyle.Render("Eclipse 2  ")+
		fmt.Sprintf("%-6s %-10s %s  mag %.3f  γ %+.3f",
			p.Second.Kind, p.Second.Type, eclipse.FormatJD(p.Second.JD),
			p.Second.Magnitude, p.Second.Gamma))
	lines = append(lines, labelStyle.Render("Gap        ")+
		fmt.Sprintf("%.2f days", p.GapDays))

	shown := 0
	for _, s := range p.Sites {
		if shown >= 3 {
			lines = append(lines, dimStyle.Render(
				fmt.Sprintf("           ... and %d more site(s)", len(p.Sites)-shown)))
			break
		}
		name := s.Site.Name
		if name == "" {
			name = fmt.Sprintf("(%.1f°, %.1f°)", s.Site.LatDeg, s.Site.LonDeg)
		}
		lines = append(lines, visibleStyle.Render("  ✓ ")+
			fmt.Sprintf("%-26s mag %.3f / %.3f", name, s.FirstMag, s.SecondMag))
		shown++
	}

	return detailStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderEventList() string {
	if len(m.result.Events) == 0 {
		return dimStyle.Render("  No eclipses found in this range.")
	}

	visible := m.listHeight()
	var lines []string

	for i := m.offset; i < len(m.result.Events) && i < m.offset+visible; i++ {
		line := m.result.Events[i].Row
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	mode := "pairs"
	if m.viewMode == ViewEvents {
		mode = "events"
	}
	return dimStyle.Render(fmt.Sprintf(
		" %s · ↑/↓ move · tab switch view · q quit", mode))
}

// formatYear renders an astronomical year for display.
func formatYear(y int) string {
	if y <= 0 {
		return fmt.Sprintf("%d BC", 1-y)
	}
	return fmt.Sprintf("AD %d", y)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("135")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)

	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CFC00"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			PaddingLeft(1).
			PaddingRight(1)
)
