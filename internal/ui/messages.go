package ui

import (
	"context"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchTimeout bounds every background call a screen issues.
const fetchTimeout = 30 * time.Second

// Messages delivered back to the Update loop by command goroutines.
// Each data message carries the generation of the fetch that produced
// it; a screen drops messages from superseded fetches, which makes a
// late result for a dead view safely ignorable.

type transactionsLoadedMsg struct {
	gen          int
	owner        screen
	transactions []models.Transaction
	err          error
}

type profileLoadedMsg struct {
	gen     int
	profile *models.Profile
	err     error
}

type loginResultMsg struct {
	err error
}

// sessionRestoredMsg triggers the first activation when the app starts
// with a credential already present.
type sessionRestoredMsg struct{}

type registerResultMsg struct {
	err error
}

type transactionCreatedMsg struct {
	created *models.Transaction
	err     error
}

type transactionDeletedMsg struct {
	id  int64
	err error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

func loadTransactionsCmd(client api.Client, owner screen, gen, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		transactions, err := client.ListTransactions(ctx, limit)
		return transactionsLoadedMsg{gen: gen, owner: owner, transactions: transactions, err: err}
	}
}

func loadProfileCmd(client api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		profile, err := client.CurrentUser(ctx)
		return profileLoadedMsg{gen: gen, profile: profile, err: err}
	}
}
