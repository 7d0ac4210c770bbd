package store

import (
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *StoreSuite) TestExpense_CreateDefaultsDate() {
	alice := s.newUser("alice@example.com")
	groceries := s.newCategory(alice.ID, "Groceries", nil)
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	s.expenses.now = func() time.Time { return fixed }

	e, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: groceries.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)
	assert.WithinDuration(s.T(), fixed, e.Date, time.Second)
	assert.True(s.T(), dec("4.50").Equal(e.Amount))
	assert.False(s.T(), e.IsRecurring)
	assert.Nil(s.T(), e.Description)
	require.NotNil(s.T(), e.Category)
	assert.Equal(s.T(), "Groceries", e.Category.Name)
}

func (s *StoreSuite) TestExpense_CreateKeepsSignedAmount() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Refunds", nil)

	e, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Refund", CategoryID: cat.ID, Amount: dec("-12.25")})
	require.NoError(s.T(), err)

	got, err := s.expenses.GetOwned(s.ctx, e.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), dec("-12.25").Equal(got.Amount), "got %s", got.Amount)
}

func (s *StoreSuite) TestExpense_CategoryMustBeOwned() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	bobs := s.newCategory(bob.ID, "Bob's", nil)

	_, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "X", CategoryID: bobs.ID, Amount: dec("1")})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	_, err = s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "X", Amount: dec("1")})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
}

func (s *StoreSuite) TestExpense_ListByOwner() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	aCat := s.newCategory(alice.ID, "Groceries", nil)
	bCat := s.newCategory(bob.ID, "Fuel", nil)

	_, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: aCat.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)
	_, err = s.expenses.Create(s.ctx, bob.ID, domain.ExpenseInput{Name: "Diesel", CategoryID: bCat.ID, Amount: dec("60")})
	require.NoError(s.T(), err)

	list, err := s.expenses.ListByOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "Milk", list[0].Name)
	assert.Equal(s.T(), "Groceries", list[0].Category.Name)
}

func (s *StoreSuite) TestExpense_PartialUpdateOnlyTouchesPresentFields() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	created, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{
		Name:        "Milk",
		CategoryID:  cat.ID,
		Amount:      dec("4.50"),
		Description: ptr("two litres"),
		Date:        &date,
	})
	require.NoError(s.T(), err)

	later := created.UpdatedAt.Add(time.Hour)
	s.expenses.now = func() time.Time { return later }

	updated, err := s.expenses.Update(s.ctx, created.ID, alice.ID, domain.ExpensePatch{Amount: domain.Some(dec("5.25"))})
	require.NoError(s.T(), err)
	assert.True(s.T(), dec("5.25").Equal(updated.Amount))
	assert.Equal(s.T(), "Milk", updated.Name)
	require.NotNil(s.T(), updated.Description)
	assert.Equal(s.T(), "two litres", *updated.Description)
	assert.WithinDuration(s.T(), date, updated.Date, time.Second)
	assert.Equal(s.T(), cat.ID, updated.CategoryID)
	assert.WithinDuration(s.T(), later, updated.UpdatedAt, time.Second)
}

func (s *StoreSuite) TestExpense_PatchNullClearsOptionalFields() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	created, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{
		Name: "Milk", CategoryID: cat.ID, Amount: dec("4.50"), Description: ptr("note"), ReceiptURL: ptr("https://r/1"),
	})
	require.NoError(s.T(), err)

	updated, err := s.expenses.Update(s.ctx, created.ID, alice.ID, domain.ExpensePatch{
		Description: domain.Optional[string]{Set: true, Null: true},
	})
	require.NoError(s.T(), err)
	assert.Nil(s.T(), updated.Description)
	require.NotNil(s.T(), updated.ReceiptURL)
	assert.Equal(s.T(), "https://r/1", *updated.ReceiptURL)

	_, err = s.expenses.Update(s.ctx, created.ID, alice.ID, domain.ExpensePatch{
		Amount: domain.Optional[decimal.Decimal]{Set: true, Null: true},
	})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
}

func (s *StoreSuite) TestExpense_EmptyPatchChangesNothing() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	created, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: cat.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)
	s.expenses.now = func() time.Time { return created.UpdatedAt.Add(time.Hour) }

	got, err := s.expenses.Update(s.ctx, created.ID, alice.ID, domain.ExpensePatch{})
	require.NoError(s.T(), err)
	assert.WithinDuration(s.T(), created.UpdatedAt, got.UpdatedAt, time.Second)
}

func (s *StoreSuite) TestExpense_PatchCategoryMustBeOwned() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	bobs := s.newCategory(bob.ID, "Bob's", nil)
	created, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: cat.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)

	_, err = s.expenses.Update(s.ctx, created.ID, alice.ID, domain.ExpensePatch{CategoryID: domain.Some(bobs.ID)})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
}

func (s *StoreSuite) TestExpense_OtherUserSeesNotFound() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	e, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: cat.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)

	_, err = s.expenses.GetOwned(s.ctx, e.ID, bob.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.expenses.Update(s.ctx, e.ID, bob.ID, domain.ExpensePatch{Name: domain.Some("Hijacked")})
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	deleted, err := s.expenses.Delete(s.ctx, e.ID, bob.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	got, err := s.expenses.GetOwned(s.ctx, e.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Milk", got.Name)
}

func (s *StoreSuite) TestExpense_DeleteTwice() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)
	e, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: cat.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)

	first, err := s.expenses.Delete(s.ctx, e.ID, alice.ID)
	require.NoError(s.T(), err)
	second, err := s.expenses.Delete(s.ctx, e.ID, alice.ID)
	require.NoError(s.T(), err)

	assert.True(s.T(), first)
	assert.False(s.T(), second)
}

func (s *StoreSuite) TestExpense_ColumnLengths() {
	alice := s.newUser("alice@example.com")
	cat := s.newCategory(alice.ID, "Groceries", nil)

	_, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{
		Name: strings.Repeat("x", domain.MaxNameLength+1), CategoryID: cat.ID, Amount: dec("1"),
	})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	_, err = s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{
		Name: "Milk", CategoryID: cat.ID, Amount: dec("1"), ReceiptURL: ptr(strings.Repeat("u", domain.MaxReceiptURLLength+1)),
	})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	e, err := s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: cat.ID, Amount: dec("1")})
	require.NoError(s.T(), err)

	_, err = s.expenses.Update(s.ctx, e.ID, alice.ID, domain.ExpensePatch{Name: domain.Some(strings.Repeat("x", domain.MaxNameLength+1))})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
	_, err = s.expenses.Update(s.ctx, e.ID, alice.ID, domain.ExpensePatch{ReceiptURL: domain.Some(strings.Repeat("u", domain.MaxReceiptURLLength+1))})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	got, err := s.expenses.GetOwned(s.ctx, e.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Milk", got.Name)
	assert.Nil(s.T(), got.ReceiptURL)
}
