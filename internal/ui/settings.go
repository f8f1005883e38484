package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/api"
	"fintrack/internal/export"
	"fintrack/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const exportFileName = "finance_data.csv"

// settingsModel shows the profile, manages the local category list, and
// exports transaction history to CSV. Category edits never leave the
// process; they only seed suggestion lists for the current run.
type settingsModel struct {
	client api.Client
	styles Styles

	gen     int
	loading bool
	banner  string
	notice  string
	profile *models.Profile

	categories []string
	cursor     int

	addInput textinput.Model
	adding   bool

	exporting bool
}

func newSettingsModel(client api.Client, styles Styles) settingsModel {
	addInput := textinput.New()
	addInput.Placeholder = "New category name"
	addInput.CharLimit = 50

	return settingsModel{
		client:     client,
		styles:     styles,
		categories: models.DefaultCategories(),
		addInput:   addInput,
	}
}

func (m *settingsModel) activate() tea.Cmd {
	m.gen++
	m.loading = true
	m.banner = ""
	m.notice = ""
	return loadProfileCmd(m.client, m.gen)
}

func (m settingsModel) typing() bool {
	return m.adding
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			if errors.Is(msg.err, export.ErrNoTransactions) {
				// Nothing to export is informational, not a failure.
				m.notice = "No transactions to export yet."
				return m, nil
			}
			m.banner = msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("Exported %d transactions to %s", msg.count, msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.adding {
		switch msg.Type {
		case tea.KeyEsc:
			m.adding = false
			m.addInput.Blur()
			m.addInput.SetValue("")
			return m, nil
		case tea.KeyEnter:
			return m.commitCategory()
		}
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	case "a":
		m.adding = true
		m.banner = ""
		m.addInput.Focus()
		return m, textinput.Blink
	case "d", "x":
		if m.cursor >= 0 && m.cursor < len(m.categories) {
			m.categories = append(m.categories[:m.cursor], m.categories[m.cursor+1:]...)
			if m.cursor >= len(m.categories) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "e":
		return m.startExport()
	case "l":
		return m, func() tea.Msg { return logoutRequestedMsg{} }
	}

	return m, nil
}

func (m settingsModel) commitCategory() (settingsModel, tea.Cmd) {
	name := strings.TrimSpace(m.addInput.Value())
	if name == "" {
		m.banner = "Category name cannot be empty"
		return m, nil
	}
	for _, existing := range m.categories {
		if strings.EqualFold(existing, name) {
			m.banner = "Category already exists"
			return m, nil
		}
	}

	m.categories = append(m.categories, name)
	m.banner = ""
	m.adding = false
	m.addInput.Blur()
	m.addInput.SetValue("")
	return m, nil
}

func (m settingsModel) startExport() (settingsModel, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	m.banner = ""
	m.notice = ""

	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		transactions, err := client.ListTransactions(ctx, 0)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		if err := export.WriteFile(transactions, exportFileName); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: exportFileName, count: len(transactions)}
	}
}

func (m settingsModel) view(width int) string {
	var b strings.Builder

	if m.banner != "" {
		b.WriteString(m.styles.ErrorBanner.Render(m.banner))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.GroupLabel.Render("Profile"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.styles.Muted.Render("Loading profile..."))
	case m.profile != nil:
		b.WriteString(fmt.Sprintf("%s\n%s", m.profile.FullName, m.styles.Muted.Render(m.profile.Email)))
	default:
		b.WriteString(m.styles.Muted.Render("Profile unavailable."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.GroupLabel.Render("Categories"))
	b.WriteString("\n")
	for i, category := range m.categories {
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> ") + category)
		} else {
			b.WriteString("  " + category)
		}
		b.WriteString("\n")
	}
	if m.adding {
		b.WriteString("  " + m.addInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.GroupLabel.Render("Data"))
	b.WriteString("\n")
	if m.exporting {
		b.WriteString(m.styles.Muted.Render("Exporting..."))
	} else {
		b.WriteString(m.styles.Muted.Render("Press e to export all transactions to " + exportFileName))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render("a add category · d delete category · e export CSV · l log out"))

	return b.String()
}
