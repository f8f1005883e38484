package ui

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/api/api_mocks"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransactions() []models.Transaction {
	now := time.Now()
	return []models.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(40), Category: models.CategoryFoodDining, Type: models.TransactionTypeExpense, Date: now, Note: "lunch"},
		{ID: 2, Amount: decimal.NewFromInt(3000), Category: "Salary", Type: models.TransactionTypeIncome, Date: now.AddDate(0, 0, -1)},
		{ID: 3, Amount: decimal.NewFromInt(15), Category: models.CategoryTransport, Type: models.TransactionTypeExpense, Date: now.AddDate(0, 0, -3)},
	}
}

func loadedTransactionsModel(t *testing.T, client *api_mocks.MockClient) transactionsModel {
	t.Helper()
	m := newTransactionsModel(client, defaultStyles())
	cmd := m.activate()
	require.NotNil(t, cmd)

	m, _ = m.update(transactionsLoadedMsg{
		gen:          m.gen,
		owner:        screenTransactions,
		transactions: testTransactions(),
	})
	return m
}

func TestTransactions_DeleteRemovesRowImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := api_mocks.NewMockClient(ctrl)
	client.EXPECT().DeleteTransaction(gomock.Any(), int64(1)).Return(nil)

	m := loadedTransactionsModel(t, client)
	require.Len(t, m.rows(), 3)

	m, cmd := m.deleteSelected()
	require.NotNil(t, cmd)
	assert.Len(t, m.rows(), 2)

	msg := cmd()
	deleted, ok := msg.(transactionDeletedMsg)
	require.True(t, ok)
	assert.NoError(t, deleted.err)
	assert.Equal(t, int64(1), deleted.id)

	m, _ = m.update(deleted)
	assert.Len(t, m.rows(), 2)
	assert.Empty(t, m.banner)
}

func TestTransactions_DeleteFailureRollsBackSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failure := &apperrors.APIError{
		Code:    apperrors.ResourceNotFound,
		Message: apperrors.GetErrorMessage(apperrors.ResourceNotFound),
	}
	client := api_mocks.NewMockClient(ctrl)
	client.EXPECT().DeleteTransaction(gomock.Any(), int64(1)).Return(failure)

	m := loadedTransactionsModel(t, client)

	m, cmd := m.deleteSelected()
	require.NotNil(t, cmd)
	require.Len(t, m.rows(), 2)

	m, _ = m.update(cmd().(transactionDeletedMsg))

	assert.Len(t, m.rows(), 3)
	assert.Equal(t, failure.Message, m.banner)
}

func TestTransactions_StaleFetchResultIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := api_mocks.NewMockClient(ctrl)
	m := loadedTransactionsModel(t, client)
	require.Len(t, m.rows(), 3)

	m, _ = m.update(transactionsLoadedMsg{
		gen:   m.gen - 1,
		owner: screenTransactions,
		err:   errors.New("late failure from a superseded fetch"),
	})

	assert.Len(t, m.rows(), 3)
	assert.Empty(t, m.banner)
}

func TestTransactions_OtherScreensResultIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := api_mocks.NewMockClient(ctrl)
	m := loadedTransactionsModel(t, client)

	m, _ = m.update(transactionsLoadedMsg{
		gen:   m.gen,
		owner: screenWallet,
		err:   errors.New("belongs to the wallet"),
	})

	assert.Empty(t, m.banner)
}

func TestTransactions_SearchAndFilterNarrowRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := api_mocks.NewMockClient(ctrl)
	m := loadedTransactionsModel(t, client)

	m.typeFilter = nextTypeFilter(m.typeFilter)
	require.Len(t, m.rows(), 1)
	assert.Equal(t, int64(2), m.rows()[0].ID)

	m.typeFilter = nextTypeFilter(m.typeFilter)
	m.search.SetValue("lunch")
	require.Len(t, m.rows(), 1)
	assert.Equal(t, int64(1), m.rows()[0].ID)
}

func TestTransactions_KeyNavigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := api_mocks.NewMockClient(ctrl)
	m := loadedTransactionsModel(t, client)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.cursor)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.cursor)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, "Income Only", filterLabel(m.typeFilter))
}
