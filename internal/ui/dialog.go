package ui

import tea "github.com/charmbracelet/bubbletea"

// Dialog wraps a form and prepends the application header to its view.
//
//	dialog := NewDialog("Extend session", NewExtensionForm(choices, 0, "05:00"), devMode)
//	dialog.Update(msg)
//	if form, ok := dialog.Content().(*ExtensionForm); ok && form.Completed { ... }
type Dialog struct {
	content tea.Model
	devMode bool
	title   string
}

// NewDialog creates a dialog around content
func NewDialog(title string, content tea.Model, devMode bool) *Dialog {
	return &Dialog{
		content: content,
		devMode: devMode,
		title:   title,
	}
}

func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := d.content.Update(msg)
	d.content = updated
	return d, cmd
}

func (d *Dialog) View() string {
	return renderHeader(d.devMode, d.title) + "\n" + d.content.View()
}

// Content returns the wrapped form for type assertion
func (d *Dialog) Content() tea.Model {
	return d.content
}
