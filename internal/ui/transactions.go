package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/aggregate"
	"fintrack/internal/api"
	"fintrack/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// transactionsModel is the list/search/filter screen. Deletes apply
// optimistically: the row disappears immediately and the previous list
// snapshot is restored if the backend refuses.
type transactionsModel struct {
	client api.Client
	styles Styles

	gen          int
	loading      bool
	banner       string
	transactions []models.Transaction

	// snapshot holds the pre-delete list until the backend confirms.
	snapshot []models.Transaction

	search     textinput.Model
	searching  bool
	typeFilter aggregate.TypeFilter
	cursor     int
}

func newTransactionsModel(client api.Client, styles Styles) transactionsModel {
	search := textinput.New()
	search.Placeholder = "Search transactions..."
	search.CharLimit = 100

	return transactionsModel{
		client:     client,
		styles:     styles,
		search:     search,
		typeFilter: aggregate.FilterAll,
	}
}

func (m *transactionsModel) activate() tea.Cmd {
	m.gen++
	m.loading = true
	m.banner = ""
	return loadTransactionsCmd(m.client, screenTransactions, m.gen, 0)
}

func (m transactionsModel) typing() bool {
	return m.searching
}

func (m transactionsModel) update(msg tea.Msg) (transactionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		if msg.owner != screenTransactions || msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.transactions = msg.transactions
		m.cursor = 0
		return m, nil

	case transactionDeletedMsg:
		if msg.err != nil {
			// Restore the snapshot taken before the optimistic removal.
			if m.snapshot != nil {
				m.transactions = m.snapshot
			}
			m.banner = msg.err.Error()
		}
		m.snapshot = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m transactionsModel) handleKey(msg tea.KeyMsg) (transactionsModel, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		m.typeFilter = nextTypeFilter(m.typeFilter)
		m.cursor = 0
		return m, nil
	case "r":
		cmd := m.activate()
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil
	case "d", "x":
		return m.deleteSelected()
	}

	return m, nil
}

func nextTypeFilter(filter aggregate.TypeFilter) aggregate.TypeFilter {
	switch filter {
	case aggregate.FilterAll:
		return aggregate.FilterIncome
	case aggregate.FilterIncome:
		return aggregate.FilterExpense
	default:
		return aggregate.FilterAll
	}
}

func (m transactionsModel) visible() []models.Transaction {
	return aggregate.Filter(m.transactions, m.typeFilter, m.search.Value())
}

// rows flattens the grouped view into display order so the cursor can
// address rows exactly as they are rendered.
func (m transactionsModel) rows() []models.Transaction {
	groups := aggregate.GroupByDay(m.visible(), time.Now())
	rows := make([]models.Transaction, 0)
	for _, group := range groups {
		rows = append(rows, group.Transactions...)
	}
	return rows
}

// deleteSelected removes the row under the cursor immediately, keeping a
// snapshot for rollback, then asks the backend to confirm. This is a
// compensating action, not a transaction: two rapid deletes can race.
func (m transactionsModel) deleteSelected() (transactionsModel, tea.Cmd) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return m, nil
	}
	id := rows[m.cursor].ID

	m.snapshot = m.transactions
	remaining := make([]models.Transaction, 0, len(m.transactions))
	for i := range m.transactions {
		if m.transactions[i].ID != id {
			remaining = append(remaining, m.transactions[i])
		}
	}
	m.transactions = remaining
	if m.cursor >= len(m.rows()) && m.cursor > 0 {
		m.cursor--
	}
	m.banner = ""

	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := client.DeleteTransaction(ctx, id)
		return transactionDeletedMsg{id: id, err: err}
	}
}

func (m transactionsModel) view(width int) string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("   ")
	b.WriteString(m.styles.CardLabel.Render("Filter: " + filterLabel(m.typeFilter)))
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(m.styles.ErrorBanner.Render(m.banner))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading transactions..."))
		return b.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No transactions match."))
		return b.String()
	}

	groups := aggregate.GroupByDay(visible, time.Now())
	row := 0
	for _, group := range groups {
		b.WriteString(m.styles.GroupLabel.Render(group.Label))
		b.WriteString("\n")
		for i := range group.Transactions {
			line := transactionLine(&group.Transactions[i], m.styles)
			if row == m.cursor {
				line = m.styles.Selected.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d shown · / search · f filter · j/k move · d delete · r refresh", len(visible))))

	return b.String()
}

func filterLabel(filter aggregate.TypeFilter) string {
	switch filter {
	case aggregate.FilterIncome:
		return "Income Only"
	case aggregate.FilterExpense:
		return "Expense Only"
	default:
		return "All"
	}
}
