// Package ui is the terminal front end: a view controller selecting
// among the dashboard, transactions, wallet, and settings screens, with
// an auth screen shown while no credential is present. Screens own their
// presentation state only; derivations live in aggregate and budget.
package ui

import (
	"strings"

	"fintrack/internal/api"
	"fintrack/internal/budget"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenDashboard screen = iota
	screenTransactions
	screenWallet
	screenSettings
)

var screenTitles = map[screen][2]string{
	screenDashboard:    {"Dashboard", "Welcome back, here's your financial overview."},
	screenTransactions: {"Transactions", "View and manage your recent financial activity."},
	screenWallet:       {"My Wallet", "Manage your cards, balances, and budgets."},
	screenSettings:     {"Settings", "Manage your account preferences, categories, and data security."},
}

// logoutRequestedMsg flows from the settings screen to the root model.
type logoutRequestedMsg struct{}

// Model is the root bubbletea model. It owns navigation and the
// session gate and otherwise delegates to the active screen.
type Model struct {
	client  api.Client
	session *session.Manager
	styles  Styles

	auth         authModel
	dashboard    dashboardModel
	transactions transactionsModel
	wallet       walletModel
	settings     settingsModel

	active screen
	width  int
	height int
}

// New wires the root model. The tracker reaches only the wallet screen;
// no other view touches budget storage.
func New(client api.Client, sess *session.Manager, tracker *budget.Tracker) Model {
	styles := defaultStyles()
	return Model{
		client:       client,
		session:      sess,
		styles:       styles,
		auth:         newAuthModel(client, styles),
		dashboard:    newDashboardModel(client, styles),
		transactions: newTransactionsModel(client, styles),
		wallet:       newWalletModel(client, tracker, styles),
		settings:     newSettingsModel(client, styles),
		active:       screenDashboard,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.session.Authenticated() {
		return m.auth.init()
	}
	// Activation must run against the model bubbletea keeps, not this
	// copy, or the fetch generation bump is lost. Route it through a
	// message so Update does the work.
	return func() tea.Msg { return sessionRestoredMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case logoutRequestedMsg:
		m.session.Clear()
		m.auth = newAuthModel(m.client, m.styles)
		return m, m.auth.init()

	case sessionRestoredMsg:
		cmd := m.activate(m.active)
		return m, cmd

	case loginResultMsg:
		// The client stores the token before this message arrives, so
		// the session already reads as authenticated here; routing by
		// session state alone would strand the message. A success flips
		// the view and triggers the dashboard's own fetch; a failure
		// goes back to the auth screen for the banner.
		if msg.err == nil {
			m.active = screenDashboard
			cmd := m.activate(screenDashboard)
			return m, cmd
		}
		var cmd tea.Cmd
		m.auth, cmd = m.auth.update(msg)
		return m, cmd
	}

	if !m.session.Authenticated() {
		return m.updateAuth(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if handled, model, cmd := m.handleNavKey(key); handled {
			return model, cmd
		}
	}

	return m.updateActive(msg)
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.auth, cmd = m.auth.update(msg)
	return m, cmd
}

func (m Model) handleNavKey(key tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.typing() {
		return false, m, nil
	}

	switch key.String() {
	case "q":
		return true, m, tea.Quit
	case "1":
		return m.switchTo(screenDashboard)
	case "2":
		return m.switchTo(screenTransactions)
	case "3":
		return m.switchTo(screenWallet)
	case "4":
		return m.switchTo(screenSettings)
	case "tab":
		next := (m.active + 1) % 4
		return m.switchTo(next)
	}

	return false, m, nil
}

func (m Model) switchTo(target screen) (bool, tea.Model, tea.Cmd) {
	if target == m.active {
		return true, m, nil
	}
	m.active = target
	return true, m, m.activate(target)
}

// activate triggers the screen's own fetch. Screens never share fetched
// data; each re-fetches on every activation.
func (m *Model) activate(target screen) tea.Cmd {
	switch target {
	case screenDashboard:
		return m.dashboard.activate()
	case screenTransactions:
		return m.transactions.activate()
	case screenWallet:
		return m.wallet.activate()
	case screenSettings:
		return m.settings.activate()
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	// An authorization failure surfaced by any screen means the client
	// already dropped the credential; fall back to the auth screen.
	if err := fetchError(msg); err != nil && apperrors.IsAuthError(err) {
		m.session.Clear()
		m.auth = newAuthModel(m.client, m.styles)
		m.auth.banner = apperrors.GetErrorMessage(apperrors.AuthSessionExpired)
		return m, m.auth.init()
	}

	var cmd tea.Cmd
	switch m.active {
	case screenDashboard:
		m.dashboard, cmd = m.dashboard.update(msg)
	case screenTransactions:
		m.transactions, cmd = m.transactions.update(msg)
	case screenWallet:
		m.wallet, cmd = m.wallet.update(msg)
	case screenSettings:
		m.settings, cmd = m.settings.update(msg)
	}
	return m, cmd
}

// fetchError pulls the error out of any data-bearing message.
func fetchError(msg tea.Msg) error {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		return msg.err
	case profileLoadedMsg:
		return msg.err
	case transactionCreatedMsg:
		return msg.err
	case transactionDeletedMsg:
		return msg.err
	case exportDoneMsg:
		return msg.err
	default:
		return nil
	}
}

func (m Model) typing() bool {
	switch m.active {
	case screenDashboard:
		return m.dashboard.typing()
	case screenTransactions:
		return m.transactions.typing()
	case screenWallet:
		return m.wallet.typing()
	case screenSettings:
		return m.settings.typing()
	}
	return false
}

func (m Model) View() string {
	if !m.session.Authenticated() {
		return m.auth.view(m.width)
	}

	var b strings.Builder
	b.WriteString(m.nav())
	b.WriteString("\n\n")

	titles := screenTitles[m.active]
	b.WriteString(m.styles.Title.Render(titles[0]))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(titles[1]))
	b.WriteString("\n\n")

	switch m.active {
	case screenDashboard:
		b.WriteString(m.dashboard.view(m.width))
	case screenTransactions:
		b.WriteString(m.transactions.view(m.width))
	case screenWallet:
		b.WriteString(m.wallet.view(m.width))
	case screenSettings:
		b.WriteString(m.settings.view(m.width))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("1 dashboard · 2 transactions · 3 wallet · 4 settings · tab next · q quit"))

	return b.String()
}

func (m Model) nav() string {
	names := []string{"Dashboard", "Transactions", "My Wallet", "Settings"}
	items := make([]string, 0, len(names))
	for i, name := range names {
		style := m.styles.NavItem
		if screen(i) == m.active {
			style = m.styles.NavActive
		}
		items = append(items, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(items, "  |  "))
}
