package ui

import (
	"context"
	"strings"

	"fintrack/internal/api"
	"fintrack/internal/dto"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

const (
	authFieldEmail = iota
	authFieldPassword
	authFieldFullName
)

// authModel is the sign-in / sign-up screen shown while the session
// holds no credential.
type authModel struct {
	client api.Client
	styles Styles

	mode    authMode
	inputs  []textinput.Model
	focused int
	busy    bool
	banner  string
}

func newAuthModel(client api.Client, styles Styles) authModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	fullName := textinput.New()
	fullName.Placeholder = "full name"
	fullName.CharLimit = 100

	return authModel{
		client: client,
		styles: styles,
		inputs: []textinput.Model{email, password, fullName},
	}
}

func (m authModel) init() tea.Cmd {
	return textinput.Blink
}

func (m authModel) fieldCount() int {
	if m.mode == modeRegister {
		return 3
	}
	return 2
}

func (m authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focused + 1) % m.fieldCount())
			return m, nil
		case tea.KeyUp:
			m.setFocus((m.focused + m.fieldCount() - 1) % m.fieldCount())
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyCtrlR:
			// Toggle between sign in and sign up.
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.banner = ""
			m.setFocus(0)
			return m, nil
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.banner = msg.err.Error()
		}
		return m, nil

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.banner = msg.err.Error()
			return m, nil
		}
		// Registration succeeded; log in with the same credentials.
		return m.login()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *authModel) setFocus(index int) {
	m.focused = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m authModel) submit() (authModel, tea.Cmd) {
	if m.mode == modeRegister {
		return m.register()
	}
	return m.login()
}

func (m authModel) login() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[authFieldEmail].Value())
	password := m.inputs[authFieldPassword].Value()

	m.busy = true
	m.banner = ""
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		_, err := client.Login(ctx, email, password)
		return loginResultMsg{err: err}
	}
}

func (m authModel) register() (authModel, tea.Cmd) {
	req := dto.RegisterRequest{
		Email:    strings.TrimSpace(m.inputs[authFieldEmail].Value()),
		Password: m.inputs[authFieldPassword].Value(),
		FullName: strings.TrimSpace(m.inputs[authFieldFullName].Value()),
	}

	m.busy = true
	m.banner = ""
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		_, err := client.Register(ctx, req)
		return registerResultMsg{err: err}
	}
}

func (m authModel) view(width int) string {
	var b strings.Builder

	if m.mode == modeLogin {
		b.WriteString(m.styles.Title.Render("Sign in"))
	} else {
		b.WriteString(m.styles.Title.Render("Create account"))
	}
	b.WriteString("\n\n")

	for i := 0; i < m.fieldCount(); i++ {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Working..."))
	}

	if m.banner != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorBanner.Render(m.banner))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter submit · tab next field · ctrl+r switch sign in/up · ctrl+c quit"))

	return b.String()
}
