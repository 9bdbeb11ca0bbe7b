package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
)

// Field indices of the new-package wizard, in display order.
const (
	fieldName = iota
	fieldVersion
	fieldDescription
	fieldAuthor
	fieldAuthorEmail
	fieldURL
	fieldRequires
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Version",
	"Description",
	"Author",
	"Author email",
	"URL",
	"Dependencies (comma-separated)",
}

// WizardDefaults pre-fills the wizard inputs.
type WizardDefaults struct {
	Name        string
	Version     string
	Author      string
	AuthorEmail string
	URL         string
}

// WizardResult is the outcome of a finished wizard run.
type WizardResult struct {
	// Accepted is false when the user cancelled
	Accepted bool

	// Descriptor holds the collected metadata, with scripts defaulted to
	// the single entry point named after the package
	Descriptor *descriptor.Descriptor
}

// wizardModel is the bubbletea model behind the new-package wizard.
type wizardModel struct {
	inputs  [fieldCount]textinput.Model
	focused int
	done    bool
	aborted bool
}

func newWizardModel(defaults WizardDefaults) wizardModel {
	var m wizardModel

	for i := 0; i < fieldCount; i++ {
		in := textinput.New()
		in.CharLimit = 128
		m.inputs[i] = in
	}

	m.inputs[fieldName].Placeholder = "my-plugin"
	m.inputs[fieldName].SetValue(defaults.Name)
	m.inputs[fieldVersion].Placeholder = "0.1.0"
	m.inputs[fieldVersion].SetValue(defaults.Version)
	m.inputs[fieldDescription].Placeholder = "What the package does"
	m.inputs[fieldAuthor].SetValue(defaults.Author)
	m.inputs[fieldAuthorEmail].SetValue(defaults.AuthorEmail)
	m.inputs[fieldURL].SetValue(defaults.URL)
	m.inputs[fieldRequires].Placeholder = "pyyaml, coloredlogs"

	m.inputs[fieldName].Focus()
	return m
}

// Init implements tea.Model.
func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			if m.focused == fieldCount-1 {
				m.done = true
				return m, tea.Quit
			}
			m.moveFocus(1)
			return m, nil

		case "tab", "down":
			m.moveFocus(1)
			return m, nil

		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *wizardModel) moveFocus(delta int) {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + delta + fieldCount) % fieldCount
	m.inputs[m.focused].Focus()
}

// View implements tea.Model.
func (m wizardModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("New package"))
	b.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == m.focused {
			b.WriteString(InfoStyle.Render("> " + label))
		} else {
			b.WriteString(LabelStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(SubtitleStyle.Render("enter: next field · tab/shift+tab: move · esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// result assembles the collected answers into a descriptor.
func (m wizardModel) result() *WizardResult {
	if m.aborted {
		return &WizardResult{}
	}

	name := strings.TrimSpace(m.inputs[fieldName].Value())
	version := strings.TrimSpace(m.inputs[fieldVersion].Value())
	if version == "" {
		version = "0.1.0"
	}

	var requires []string
	for _, dep := range strings.Split(m.inputs[fieldRequires].Value(), ",") {
		dep = strings.TrimSpace(dep)
		if dep != "" {
			requires = append(requires, dep)
		}
	}

	return &WizardResult{
		Accepted: true,
		Descriptor: &descriptor.Descriptor{
			Name:            name,
			Version:         version,
			Description:     strings.TrimSpace(m.inputs[fieldDescription].Value()),
			Author:          strings.TrimSpace(m.inputs[fieldAuthor].Value()),
			AuthorEmail:     strings.TrimSpace(m.inputs[fieldAuthorEmail].Value()),
			URL:             strings.TrimSpace(m.inputs[fieldURL].Value()),
			InstallRequires: requires,
			Scripts:         []string{name},
		},
	}
}

// RunWizard runs the interactive new-package wizard.
func RunWizard(defaults WizardDefaults) (*WizardResult, error) {
	program := tea.NewProgram(newWizardModel(defaults))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	model, ok := final.(wizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard model type %T", final)
	}
	return model.result(), nil
}
