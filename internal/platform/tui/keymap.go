package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

// KeyMap holds the in-game key bindings.
// It implements help.KeyMap so the bindings double as the help line.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Place      key.Binding
	Remove     key.Binding
	Tool       key.Binding
	Check      key.Binding
	NextPiece  key.Binding
	PrevPiece  key.Binding
	Pass       key.Binding
	Power1     key.Binding
	Power2     key.Binding
	Save       key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Place:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "plant")),
		Remove:     key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "dig up")),
		Tool:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "shears")),
		Check:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check order")),
		NextPiece:  key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab", "next flower")),
		PrevPiece:  key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("shift+tab", "prev flower")),
		Pass:       key.NewBinding(key.WithKeys("."), key.WithHelp(".", "pass")),
		Power1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "score boost")),
		Power2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "slow creepers")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s", "S"), key.WithHelp("ctrl+s", "save")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Screenshot: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "screenshot")),
		Back:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu"), key.WithDisabled()),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the collapsed help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Remove, k.NextPiece, k.Check, k.Tool, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped in columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Remove, k.NextPiece, k.PrevPiece},
		{k.Tool, k.Check, k.Pass, k.Power1, k.Power2},
		{k.Save, k.Screenshot, k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// actionBindings pairs game actions with the binding that triggers them.
func (k KeyMap) actionBindings() []struct {
	action  core.Action
	binding key.Binding
} {
	return []struct {
		action  core.Action
		binding key.Binding
	}{
		{core.ActionUp, k.Up},
		{core.ActionDown, k.Down},
		{core.ActionLeft, k.Left},
		{core.ActionRight, k.Right},
		{core.ActionPlace, k.Place},
		{core.ActionRemove, k.Remove},
		{core.ActionTool, k.Tool},
		{core.ActionCheck, k.Check},
		{core.ActionNextPiece, k.NextPiece},
		{core.ActionPrevPiece, k.PrevPiece},
		{core.ActionPass, k.Pass},
		{core.ActionPower1, k.Power1},
		{core.ActionPower2, k.Power2},
		{core.ActionSave, k.Save},
		{core.ActionRestart, k.Restart},
		{core.ActionPause, k.Pause},
		{core.ActionQuit, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, ab := range k.actionBindings() {
		if key.Matches(msg, ab.binding) {
			return ab.action, ab.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Save and quit are handled by the platform and never reach the frame.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := k.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionSave:
	default:
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap holds the bindings shared by the pickers.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:       key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the picker bindings.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Back, k.Quit}
}

// FullHelp returns the picker bindings in one column.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Action translates a key to a menu action.
func (k MenuKeyMap) Action(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
