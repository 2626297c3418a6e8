package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

// LevelItem is one campaign level offered by the picker.
type LevelItem struct {
	ID   string
	Name string
}

// LevelSelection holds the user's choice from the level picker.
type LevelSelection struct {
	LevelID string // Empty means start from the first level
}

// LevelMenuModel is the campaign level picker.
type LevelMenuModel struct {
	items        []LevelItem
	cursor       int // 0 is "Start from Beginning", i is items[i-1]
	width        int
	height       int
	keys         MenuKeyMap
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
}

// NewLevelMenuModel creates a level picker for the given levels.
func NewLevelMenuModel(items []LevelItem, width, height int) LevelMenuModel {
	return LevelMenuModel{
		items:    items,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		choosing: true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.items) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor > 0 {
			m.selection = LevelSelection{LevelID: m.items[m.cursor-1].ID}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems returns how many levels fit between header and footer.
func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	if m.cursor == 0 {
		m.scrollOffset = 0
		return
	}
	idx := m.cursor - 1
	visible := m.visibleItems()
	if idx < m.scrollOffset {
		m.scrollOffset = idx
	} else if idx >= m.scrollOffset+visible {
		m.scrollOffset = idx - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("C A M P A I G N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Select a garden:"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(theme.Warning.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset == 0 {
		cursor := "  "
		style := theme.MenuItemNormal
		if m.cursor == 0 {
			cursor = "> "
			style = theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+"Start from Beginning"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := theme.MenuItemNormal
		if i+1 == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, m.items[i].Name)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker.
// A nil selection means the user backed out or quit.
func RunLevelSelector(items []LevelItem, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(
		NewLevelMenuModel(items, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
