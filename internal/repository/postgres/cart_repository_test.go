package postgres_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
	"github.com/wuwei-shop/storefront/internal/repository/postgres"
)

type cartRepositorySuite struct {
	suite.Suite

	repo port.CartRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = postgres.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestAddItem() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		item      domain.CartItem
		wantError string
	}{
		{
			name: "add item to cart: ok",
			item: randomCartItem(),
		},
		{
			name: "add item with empty session ID: error",
			item: domain.CartItem{ProductID: gofakeit.UUID(), Size: "M", Quantity: 1},

			wantError: "sessionId is empty",
		},
		{
			name: "add item with zero quantity: error",
			item: domain.CartItem{SessionID: gofakeit.UUID(), ProductID: gofakeit.UUID(), Size: "M"},

			wantError: "quantity must be at least 1",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			stored, err := suite.repo.AddItem(ctx, tt.item)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			items, err := suite.repo.GetItems(ctx, tt.item.SessionID)
			require.NoError(t, err)

			require.Len(t, items, 1)
			assertCartItem(t, stored, items[0])
		})
	}
}

func (suite *cartRepositorySuite) TestAddItemMergesOnConflict() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	item := randomCartItem()
	item.Quantity = 2

	first, err := suite.repo.AddItem(ctx, item)
	require.NoError(t, err)

	item.Quantity = 3
	second, err := suite.repo.AddItem(ctx, item)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := suite.repo.GetItems(ctx, item.SessionID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func (suite *cartRepositorySuite) TestUpdateQuantity() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	stored, err := suite.repo.AddItem(ctx, randomCartItem())
	require.NoError(t, err)

	updated, removed, err := suite.repo.UpdateQuantity(ctx, stored.ID, 7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 7, updated.Quantity)

	// quantity zero deletes the line
	_, removed, err = suite.repo.UpdateQuantity(ctx, stored.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := suite.repo.GetItems(ctx, stored.SessionID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, _, err = suite.repo.UpdateQuantity(ctx, gofakeit.UUID(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *cartRepositorySuite) TestRemoveItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	stored, err := suite.repo.AddItem(ctx, randomCartItem())
	require.NoError(t, err)

	deleted, err := suite.repo.RemoveItem(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = suite.repo.RemoveItem(ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func (suite *cartRepositorySuite) TestClearCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	mine := randomCartItem()
	theirs := randomCartItem()

	_, err := suite.repo.AddItem(ctx, mine)
	require.NoError(t, err)
	_, err = suite.repo.AddItem(ctx, theirs)
	require.NoError(t, err)

	require.NoError(t, suite.repo.ClearCart(ctx, mine.SessionID))

	items, err := suite.repo.GetItems(ctx, mine.SessionID)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = suite.repo.GetItems(ctx, theirs.SessionID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func (suite *cartRepositorySuite) TestAddItemWithinCallerTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := postgres.NewCartWithTx(tx)
	item := randomCartItem()
	_, err = txRepo.AddItem(ctx, item)
	require.NoError(t, err)

	// rolled back, nothing persists
	require.NoError(t, tx.Rollback(ctx))

	items, err := suite.repo.GetItems(ctx, item.SessionID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_items CASCADE")
	suite.NoError(err)
}

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		SessionID: gofakeit.UUID(),
		ProductID: gofakeit.UUID(),
		Size:      gofakeit.RandomString([]string{"XS", "S", "M", "L", "XL", "2XL"}),
		Quantity:  gofakeit.Number(1, 5),
	}
}

func assertCartItem(t *testing.T, expected, actual domain.CartItem) {
	t.Helper()

	// CreatedAt round-trips through Postgres with reduced precision
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
