package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/aggregate"
	"fintrack/internal/api"
	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	addFieldAmount = iota
	addFieldCategory
	addFieldDate
	addFieldNote
	addFieldCount
)

const recentTransactionCount = 5

// dashboardModel shows the aggregate overview: stats cards, the monthly
// income/expense chart, the category breakdown, and the five most recent
// transactions, plus the add-transaction form.
type dashboardModel struct {
	client api.Client
	styles Styles

	gen          int
	loading      bool
	banner       string
	transactions []models.Transaction

	adding    bool
	addInputs []textinput.Model
	addType   string
	focused   int
}

func newDashboardModel(client api.Client, styles Styles) dashboardModel {
	amount := textinput.New()
	amount.Placeholder = "amount"
	amount.CharLimit = 20

	category := textinput.New()
	category.Placeholder = "category"
	category.SetValue(models.CategoryFoodDining)
	category.CharLimit = 100

	date := textinput.New()
	date.Placeholder = "date (YYYY-MM-DD)"
	date.CharLimit = 10

	note := textinput.New()
	note.Placeholder = "note (optional)"
	note.CharLimit = 500

	return dashboardModel{
		client:    client,
		styles:    styles,
		addInputs: []textinput.Model{amount, category, date, note},
		addType:   models.TransactionTypeExpense,
	}
}

func (m *dashboardModel) activate() tea.Cmd {
	m.gen++
	m.loading = true
	m.banner = ""
	return loadTransactionsCmd(m.client, screenDashboard, m.gen, 0)
}

func (m dashboardModel) typing() bool {
	return m.adding
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		if msg.owner != screenDashboard || msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.transactions = msg.transactions
		return m, nil

	case transactionCreatedMsg:
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		m.adding = false
		m.resetForm()
		cmd := m.activate()
		return m, cmd

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		if msg.String() == "a" {
			m.adding = true
			m.banner = ""
			m.addInputs[addFieldDate].SetValue(time.Now().Format("2006-01-02"))
			m.setFocus(addFieldAmount)
			return m, textinput.Blink
		}
		if msg.String() == "r" {
			cmd := m.activate()
			return m, cmd
		}
	}

	return m, nil
}

func (m dashboardModel) updateForm(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.banner = ""
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focused + 1) % addFieldCount)
		return m, nil
	case tea.KeyUp:
		m.setFocus((m.focused + addFieldCount - 1) % addFieldCount)
		return m, nil
	case tea.KeyCtrlT:
		if m.addType == models.TransactionTypeExpense {
			m.addType = models.TransactionTypeIncome
		} else {
			m.addType = models.TransactionTypeExpense
		}
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.addInputs[m.focused], cmd = m.addInputs[m.focused].Update(msg)
	return m, cmd
}

func (m *dashboardModel) setFocus(index int) {
	m.focused = index
	for i := range m.addInputs {
		if i == index {
			m.addInputs[i].Focus()
		} else {
			m.addInputs[i].Blur()
		}
	}
}

func (m *dashboardModel) resetForm() {
	m.addInputs[addFieldAmount].SetValue("")
	m.addInputs[addFieldNote].SetValue("")
	m.addType = models.TransactionTypeExpense
}

func (m dashboardModel) submitForm() (dashboardModel, tea.Cmd) {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.addInputs[addFieldAmount].Value()))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		m.banner = "Please enter a valid amount"
		return m, nil
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(m.addInputs[addFieldDate].Value()))
	if err != nil {
		m.banner = "Please enter a valid date (YYYY-MM-DD)"
		return m, nil
	}

	input := dto.TransactionInput{
		Amount:   amount,
		Category: strings.TrimSpace(m.addInputs[addFieldCategory].Value()),
		Type:     m.addType,
		Date:     date,
		Note:     strings.TrimSpace(m.addInputs[addFieldNote].Value()),
	}

	client := m.client
	m.banner = ""
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		created, err := client.CreateTransaction(ctx, input)
		return transactionCreatedMsg{created: created, err: err}
	}
}

func (m dashboardModel) view(width int) string {
	var b strings.Builder

	if m.banner != "" {
		b.WriteString(m.styles.ErrorBanner.Render(m.banner))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading transactions..."))
		return b.String()
	}

	if m.adding {
		b.WriteString(m.formView())
		return b.String()
	}

	summary := aggregate.Summarize(m.transactions)
	b.WriteString(m.statsCards(summary))
	b.WriteString("\n\n")

	b.WriteString(m.monthlyChart())
	b.WriteString("\n")

	b.WriteString(m.breakdownView())
	b.WriteString("\n")

	b.WriteString(m.recentView())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("a add transaction · r refresh"))

	return b.String()
}

func (m dashboardModel) statsCards(summary models.Summary) string {
	balance := m.styles.Card.Render(
		m.styles.CardLabel.Render("Total Balance") + "\n" +
			m.styles.Balance.Render(formatAmount(summary.TotalBalance)))
	income := m.styles.Card.Render(
		m.styles.CardLabel.Render("Total Income") + "\n" +
			m.styles.Income.Render(formatAmount(summary.TotalIncome)))
	expense := m.styles.Card.Render(
		m.styles.CardLabel.Render("Total Expense") + "\n" +
			m.styles.Expense.Render(formatAmount(summary.TotalExpense)))

	return lipgloss.JoinHorizontal(lipgloss.Top, balance, " ", income, " ", expense)
}

// monthlyChart renders the per-month income/expense bars. The series
// arrives in first-encounter order; display sorts by each point's first
// underlying timestamp, not by label.
func (m dashboardModel) monthlyChart() string {
	series := aggregate.MonthlySeries(m.transactions)
	if len(series) == 0 {
		return m.styles.Muted.Render("No data for the chart yet.")
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].First().Before(series[j].First())
	})

	maxValue := decimal.Zero
	for _, point := range series {
		if point.Income.GreaterThan(maxValue) {
			maxValue = point.Income
		}
		if point.Expense.GreaterThan(maxValue) {
			maxValue = point.Expense
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.CardLabel.Render("Income vs Expense"))
	b.WriteString("\n")
	for _, point := range series {
		b.WriteString(fmt.Sprintf("%-8s %s %s\n",
			point.Month,
			m.styles.Income.Render(bar(point.Income, maxValue)),
			m.styles.Expense.Render(bar(point.Expense, maxValue))))
	}

	return b.String()
}

func (m dashboardModel) breakdownView() string {
	breakdown := aggregate.ByCategory(m.transactions)
	if len(breakdown) == 0 {
		return m.styles.Muted.Render("No expenses recorded yet.")
	}

	var b strings.Builder
	b.WriteString(m.styles.CardLabel.Render("Spending by Category"))
	b.WriteString("\n")
	for _, entry := range breakdown {
		b.WriteString(fmt.Sprintf("%-20s %12s  %3d%%\n", entry.Category, formatAmount(entry.Amount), entry.Percentage))
	}

	return b.String()
}

func (m dashboardModel) recentView() string {
	if len(m.transactions) == 0 {
		return m.styles.Muted.Render("No transactions yet. Press a to add one.")
	}

	recent := m.transactions
	if len(recent) > recentTransactionCount {
		recent = recent[:recentTransactionCount]
	}

	var b strings.Builder
	b.WriteString(m.styles.CardLabel.Render("Recent Transactions"))
	b.WriteString("\n")
	for i := range recent {
		b.WriteString(transactionLine(&recent[i], m.styles))
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) formView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add Transaction"))
	b.WriteString("\n\n")

	typeLabel := "expense"
	if m.addType == models.TransactionTypeIncome {
		typeLabel = "income"
	}
	b.WriteString(m.styles.CardLabel.Render("Type: " + typeLabel))
	b.WriteString("\n")

	for i := range m.addInputs {
		b.WriteString(m.addInputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter save · ctrl+t toggle type · esc cancel"))
	return b.String()
}

// bar renders a fixed-width proportional bar.
func bar(value, max decimal.Decimal) string {
	const barWidth = 30
	if max.LessThanOrEqual(decimal.Zero) {
		return ""
	}

	filled := int(value.Div(max).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled)
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func transactionLine(txn *models.Transaction, styles Styles) string {
	amount := formatAmount(txn.Amount)
	if txn.IsIncome() {
		amount = styles.Income.Render("+" + amount)
	} else {
		amount = styles.Expense.Render("-" + amount)
	}

	note := txn.Note
	if note != "" {
		note = " · " + note
	}

	return fmt.Sprintf("%s  %-20s %s%s",
		txn.Date.Format("2006-01-02"),
		txn.Category,
		amount,
		styles.Muted.Render(note))
}
