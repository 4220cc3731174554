package ui

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ExtensionFormResult is the student's answer to an extension offer.
// Minutes is zero when the offer was declined.
type ExtensionFormResult struct {
	Cancelled bool
	Minutes   int
}

// ExtensionForm offers to add time to the session
type ExtensionForm struct {
	Completed bool
	form      *huh.Form
	result    ExtensionFormResult
}

// NewExtensionForm creates the offer prompt for the given choices.
// selected is highlighted when it is one of them, otherwise the first choice is.
func NewExtensionForm(choices []int, selected int, remaining string) *ExtensionForm {
	ef := &ExtensionForm{}

	options := make([]huh.Option[int], 0, len(choices)+1)
	for _, minutes := range choices {
		options = append(options, huh.NewOption(fmt.Sprintf("Add %d minutes", minutes), minutes))
	}
	options = append(options, huh.NewOption("Not now", 0))
	switch {
	case slices.Contains(choices, selected):
		ef.result.Minutes = selected
	case len(choices) > 0:
		ef.result.Minutes = choices[0]
	}

	ef.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Extend the session?").
				Description(fmt.Sprintf("%s left", remaining)).
				Options(options...).
				Value(&ef.result.Minutes),
		),
	)
	return ef
}

func (ef *ExtensionForm) Init() tea.Cmd {
	return ef.form.Init()
}

func (ef *ExtensionForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		ef.result.Cancelled = true
		ef.Completed = true
		return ef, nil
	}

	form, cmd := ef.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		ef.form = f
	}

	switch ef.form.State {
	case huh.StateCompleted:
		ef.Completed = true
		return ef, nil
	case huh.StateAborted:
		ef.result.Cancelled = true
		ef.Completed = true
		return ef, nil
	}
	return ef, cmd
}

func (ef *ExtensionForm) View() string {
	return ef.form.View()
}

// Result returns the answer once the form completed
func (ef *ExtensionForm) Result() ExtensionFormResult {
	return ef.result
}
