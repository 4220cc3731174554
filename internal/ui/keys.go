package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyDefinition is the single source of truth for a key binding
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// AllKeyDefinitions lists every binding of the tutoring screen
var AllKeyDefinitions = []KeyDefinition{
	{Name: "debug", Defaults: []string{"ctrl+d"}, Help: "toggle state panel"},
	{Name: "download", Defaults: []string{"d"}, Help: "download transcript"},
	{Name: "end", Defaults: []string{"ctrl+x"}, Help: "abandon session"},
	{Name: "extend", Defaults: []string{"ctrl+e"}, Help: "extend session"},
	{Name: "help", Defaults: []string{"f1"}, Help: "toggle help"},
	{Name: "new_session", Defaults: []string{"n"}, Help: "new session"},
	{Name: "newline", Defaults: []string{"alt+enter", "ctrl+j"}, Help: "new line"},
	{Name: "quit", Defaults: []string{"ctrl+c"}, Help: "quit"},
	{Name: "scroll_down", Defaults: []string{"pgdown"}, Help: "scroll down"},
	{Name: "scroll_up", Defaults: []string{"pgup"}, Help: "scroll up"},
	{Name: "send", Defaults: []string{"enter"}, Help: "send reply"},
}

// KeyMap holds the bindings of the tutoring screen
type KeyMap struct {
	Debug      key.Binding
	Download   key.Binding
	End        key.Binding
	Extend     key.Binding
	Help       key.Binding
	NewSession key.Binding
	Newline    key.Binding
	Quit       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Send       key.Binding
}

// NewKeyMap builds the bindings from AllKeyDefinitions
func NewKeyMap() KeyMap {
	return KeyMap{
		Debug:      buildBinding("debug"),
		Download:   buildBinding("download"),
		End:        buildBinding("end"),
		Extend:     buildBinding("extend"),
		Help:       buildBinding("help"),
		NewSession: buildBinding("new_session"),
		Newline:    buildBinding("newline"),
		Quit:       buildBinding("quit"),
		ScrollDown: buildBinding("scroll_down"),
		ScrollUp:   buildBinding("scroll_up"),
		Send:       buildBinding("send"),
	}
}

func buildBinding(name string) key.Binding {
	for _, def := range AllKeyDefinitions {
		if def.Name == name {
			return key.NewBinding(
				key.WithKeys(def.Defaults...),
				key.WithHelp(strings.Join(def.Defaults, "/"), def.Help),
			)
		}
	}
	panic("unknown key definition: " + name)
}

// chatKeys is the help.KeyMap shown while the session is live
type chatKeys struct {
	devMode bool
	keys    KeyMap
}

func (k chatKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.Send, k.keys.Extend, k.keys.End, k.keys.Help, k.keys.Quit}
}

func (k chatKeys) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{k.keys.Send, k.keys.Newline, k.keys.ScrollUp, k.keys.ScrollDown},
		{k.keys.Extend, k.keys.End, k.keys.Help, k.keys.Quit},
	}
	if k.devMode {
		groups[1] = append(groups[1], k.keys.Debug)
	}
	return groups
}

// summaryKeys is the help.KeyMap shown once the session has ended
type summaryKeys struct {
	keys KeyMap
}

func (k summaryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.Download, k.keys.NewSession, k.keys.ScrollUp, k.keys.ScrollDown, k.keys.Quit}
}

func (k summaryKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
