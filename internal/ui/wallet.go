package ui

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/budget"
	"fintrack/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const progressBarWidth = 24

// walletModel is the budget screen. Saved targets live in the tracker;
// while editing, changes accumulate in a working copy that only reaches
// the store on an explicit save.
type walletModel struct {
	client  api.Client
	tracker *budget.Tracker
	styles  Styles

	gen          int
	loading      bool
	banner       string
	notice       string
	transactions []models.Transaction

	budgets map[string]decimal.Decimal
	edits   map[string]decimal.Decimal

	cursor int
	input  textinput.Model
}

func newWalletModel(client api.Client, tracker *budget.Tracker, styles Styles) walletModel {
	input := textinput.New()
	input.Placeholder = "0.00"
	input.CharLimit = 12
	input.Width = 12

	return walletModel{
		client:  client,
		tracker: tracker,
		styles:  styles,
		budgets: map[string]decimal.Decimal{},
		input:   input,
	}
}

func (m *walletModel) activate() tea.Cmd {
	m.gen++
	m.loading = true
	m.banner = ""
	m.notice = ""
	m.budgets = m.tracker.Load()
	m.edits = nil
	m.input.Blur()
	return loadTransactionsCmd(m.client, screenWallet, m.gen, 0)
}

func (m walletModel) typing() bool {
	return m.input.Focused()
}

func (m walletModel) editing() bool {
	return m.edits != nil
}

// current returns the mapping the view should render: the working copy
// while editing, the saved targets otherwise.
func (m walletModel) current() map[string]decimal.Decimal {
	if m.editing() {
		return m.edits
	}
	return m.budgets
}

func (m walletModel) update(msg tea.Msg) (walletModel, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		if msg.owner != screenWallet || msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.transactions = msg.transactions
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m walletModel) handleKey(msg tea.KeyMsg) (walletModel, tea.Cmd) {
	if m.input.Focused() {
		switch msg.Type {
		case tea.KeyEsc:
			m.input.Blur()
			return m, nil
		case tea.KeyEnter:
			return m.commitField()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	categories := m.categories()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(categories)-1 {
			m.cursor++
		}
	case "e", "enter":
		if !m.editing() {
			m.edits = cloneBudgets(m.budgets)
			m.notice = ""
		}
		return m.openField(categories)
	case "s":
		if m.editing() {
			return m.save()
		}
	case "esc":
		if m.editing() {
			m.edits = nil
			m.banner = ""
		}
	}

	return m, nil
}

func (m walletModel) openField(categories []string) (walletModel, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(categories) {
		return m, nil
	}
	category := categories[m.cursor]
	if target, ok := m.edits[category]; ok && target.IsPositive() {
		m.input.SetValue(target.StringFixed(2))
	} else {
		m.input.SetValue("")
	}
	m.input.Focus()
	m.banner = ""
	return m, textinput.Blink
}

func (m walletModel) commitField() (walletModel, tea.Cmd) {
	categories := m.categories()
	if m.cursor < 0 || m.cursor >= len(categories) {
		m.input.Blur()
		return m, nil
	}

	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		delete(m.edits, categories[m.cursor])
		m.input.Blur()
		return m, nil
	}

	target, err := decimal.NewFromString(raw)
	if err != nil || target.IsNegative() {
		m.banner = "Please enter a valid amount"
		return m, nil
	}

	m.edits[categories[m.cursor]] = target
	m.banner = ""
	m.input.Blur()
	return m, nil
}

func (m walletModel) save() (walletModel, tea.Cmd) {
	if err := m.tracker.Save(m.edits); err != nil {
		m.banner = err.Error()
		return m, nil
	}
	m.budgets = m.edits
	m.edits = nil
	m.notice = "Budgets saved."
	return m, nil
}

func (m walletModel) categories() []string {
	spending := budget.MonthlySpending(m.transactions, time.Now())
	return budget.Categories(m.current(), spending)
}

func cloneBudgets(budgets map[string]decimal.Decimal) map[string]decimal.Decimal {
	clone := make(map[string]decimal.Decimal, len(budgets))
	for category, target := range budgets {
		clone[category] = target
	}
	return clone
}

func (m walletModel) view(width int) string {
	var b strings.Builder

	if m.banner != "" {
		b.WriteString(m.styles.ErrorBanner.Render(m.banner))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading spending data..."))
		return b.String()
	}

	budgets := m.current()
	spending := budget.MonthlySpending(m.transactions, time.Now())
	categories := budget.Categories(budgets, spending)

	b.WriteString(m.overallLine(budgets, spending))
	b.WriteString("\n\n")

	for i, category := range categories {
		target := budgets[category]
		spent := spending[category]
		pct := budget.Progress(target, spent)

		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("> ")
		}

		line := fmt.Sprintf("%s%-18s %s", marker, category, m.progressBar(pct))
		b.WriteString(line)
		b.WriteString("  ")

		if i == m.cursor && m.input.Focused() {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(m.styles.CardLabel.Render(
				fmt.Sprintf("%s / %s", spent.StringFixed(2), target.StringFixed(2))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing() {
		b.WriteString(m.styles.Muted.Render("enter edit amount · s save · esc cancel"))
	} else {
		b.WriteString(m.styles.Muted.Render("j/k move · e edit budgets"))
	}

	return b.String()
}

func (m walletModel) overallLine(budgets, spending map[string]decimal.Decimal) string {
	pct := budget.Overall(budgets, spending)
	label := fmt.Sprintf("Overall: %.0f%% of budget used", pct)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.CardLabel.Render(label), "  ", m.progressBar(pct))
}

// progressBar renders a fixed-width bar. Fill color follows the same
// thresholds as the web styling: red at or over budget, yellow from 75%.
func (m walletModel) progressBar(pct float64) string {
	filled := int(pct / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	if filled < 0 {
		filled = 0
	}

	style := m.styles.BarOK
	switch {
	case pct >= 100:
		style = m.styles.BarOver
	case pct >= 75:
		style = m.styles.BarWarn
	}

	bar := style.Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("[%s] %3.0f%%", bar, pct)
}
