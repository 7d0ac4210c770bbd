package store

import (
	"strings"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *StoreSuite) TestCategory_CreateAndList() {
	alice := s.newUser("alice@example.com")
	food := s.newCategory(alice.ID, "Food", nil)
	s.newCategory(alice.ID, "Groceries", &food.ID)

	list, err := s.categories.ListByOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "Food", list[0].Name)
	assert.Nil(s.T(), list[0].ParentID)
	assert.Empty(s.T(), list[0].Children, "flat listing does not populate children")
	require.NotNil(s.T(), list[1].ParentID)
	assert.Equal(s.T(), food.ID, *list[1].ParentID)
}

func (s *StoreSuite) TestCategory_GetOwnedLoadsChildren() {
	alice := s.newUser("alice@example.com")
	food := s.newCategory(alice.ID, "Food", nil)
	s.newCategory(alice.ID, "Groceries", &food.ID)
	s.newCategory(alice.ID, "Restaurants", &food.ID)

	got, err := s.categories.GetOwned(s.ctx, food.ID, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Children, 2)
	assert.Equal(s.T(), "Groceries", got.Children[0].Name)
	assert.Equal(s.T(), "Restaurants", got.Children[1].Name)
}

func (s *StoreSuite) TestCategory_EmptyName() {
	alice := s.newUser("alice@example.com")
	_, err := s.categories.Create(s.ctx, alice.ID, "   ", nil)
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
}

func (s *StoreSuite) TestCategory_ParentMustBeOwned() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	bobs := s.newCategory(bob.ID, "Bob's", nil)

	_, errForeign := s.categories.Create(s.ctx, alice.ID, "Sneaky", &bobs.ID)
	missing := bobs.ID + 100
	_, errMissing := s.categories.Create(s.ctx, alice.ID, "Orphan", &missing)

	assert.ErrorIs(s.T(), errForeign, domain.ErrValidation)
	assert.ErrorIs(s.T(), errMissing, domain.ErrValidation)
	assert.Equal(s.T(), errForeign.Error(), errMissing.Error())
}

func (s *StoreSuite) TestCategory_OtherUserSeesNotFound() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	food := s.newCategory(alice.ID, "Food", nil)

	_, err := s.categories.GetOwned(s.ctx, food.ID, bob.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.categories.Update(s.ctx, food.ID, bob.ID, "Mine now", nil)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	err = s.categories.Delete(s.ctx, food.ID, bob.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	still, err := s.categories.GetOwned(s.ctx, food.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Food", still.Name)
}

func (s *StoreSuite) TestCategory_UpdateReplacesNameAndParent() {
	alice := s.newUser("alice@example.com")
	food := s.newCategory(alice.ID, "Food", nil)
	snacks := s.newCategory(alice.ID, "Snacks", &food.ID)

	updated, err := s.categories.Update(s.ctx, snacks.ID, alice.ID, "Treats", nil)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Treats", updated.Name)
	assert.Nil(s.T(), updated.ParentID, "omitted parent clears the reference")

	updated, err = s.categories.Update(s.ctx, snacks.ID, alice.ID, "Treats", &food.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated.ParentID)
	assert.Equal(s.T(), food.ID, *updated.ParentID)
}

func (s *StoreSuite) TestCategory_UpdateRejectsCycles() {
	alice := s.newUser("alice@example.com")
	a := s.newCategory(alice.ID, "A", nil)
	b := s.newCategory(alice.ID, "B", &a.ID)
	c := s.newCategory(alice.ID, "C", &b.ID)

	_, err := s.categories.Update(s.ctx, a.ID, alice.ID, "A", &a.ID)
	assert.ErrorIs(s.T(), err, domain.ErrValidation, "self parent")

	_, err = s.categories.Update(s.ctx, a.ID, alice.ID, "A", &c.ID)
	assert.ErrorIs(s.T(), err, domain.ErrValidation, "descendant parent")

	got, err := s.categories.GetOwned(s.ctx, a.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got.ParentID)
}

func (s *StoreSuite) TestCategory_DeleteRestrictsDependents() {
	alice := s.newUser("alice@example.com")
	food := s.newCategory(alice.ID, "Food", nil)
	groceries := s.newCategory(alice.ID, "Groceries", &food.ID)

	err := s.categories.Delete(s.ctx, food.ID, alice.ID)
	assert.ErrorIs(s.T(), err, domain.ErrConflict, "has children")

	_, err = s.expenses.Create(s.ctx, alice.ID, domain.ExpenseInput{Name: "Milk", CategoryID: groceries.ID, Amount: dec("4.50")})
	require.NoError(s.T(), err)
	err = s.categories.Delete(s.ctx, groceries.ID, alice.ID)
	assert.ErrorIs(s.T(), err, domain.ErrConflict, "has expenses")
}

func (s *StoreSuite) TestCategory_DeleteTwice() {
	alice := s.newUser("alice@example.com")
	food := s.newCategory(alice.ID, "Food", nil)

	require.NoError(s.T(), s.categories.Delete(s.ctx, food.ID, alice.ID))
	assert.ErrorIs(s.T(), s.categories.Delete(s.ctx, food.ID, alice.ID), domain.ErrNotFound)
}

func (s *StoreSuite) TestCategory_Tree() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	food := s.newCategory(alice.ID, "Food", nil)
	s.newCategory(alice.ID, "Groceries", &food.ID)
	s.newCategory(alice.ID, "Travel", nil)
	s.newCategory(bob.ID, "Bob's", nil)

	tree, err := s.categories.Tree(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), tree, 2)
	assert.Equal(s.T(), "Food", tree[0].Name)
	require.Len(s.T(), tree[0].Nodes, 1)
	assert.Equal(s.T(), "Groceries", tree[0].Nodes[0].Name)
	assert.Equal(s.T(), "Travel", tree[1].Name)
}

func (s *StoreSuite) TestCategory_NameLength() {
	alice := s.newUser("alice@example.com")
	tooLong := strings.Repeat("ü", domain.MaxNameLength+1)

	_, err := s.categories.Create(s.ctx, alice.ID, tooLong, nil)
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	c := s.newCategory(alice.ID, strings.Repeat("ü", domain.MaxNameLength), nil)
	_, err = s.categories.Update(s.ctx, c.ID, alice.ID, tooLong, nil)
	assert.ErrorIs(s.T(), err, domain.ErrValidation)
}
