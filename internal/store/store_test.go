package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func createTestAccount(t *testing.T, store Store, name string, balance int64) *schema.Account {
	account, err := store.CreateAccount(context.Background(), CreateAccountInput{
		Name:    name,
		Balance: decimal.NewFromInt(balance),
	})
	require.NoError(t, err)
	return account
}

// createTestListing creates a minted, active asset with an image and its mint transaction
func createTestListing(t *testing.T, store Store, publisherID string, price int64) *schema.Asset {
	ctx := context.Background()

	asset, err := store.CreateAsset(ctx, CreateAssetInput{
		Name:        "sunset",
		Price:       decimal.NewFromInt(price),
		PublisherID: publisherID,
	})
	require.NoError(t, err)

	_, err = store.RecordTransaction(ctx, RecordTransactionInput{
		Type:        domain.TransactionTypeMint,
		ToAccountID: publisherID,
		Price:       decimal.Zero,
		AssetID:     asset.ID,
	})
	require.NoError(t, err)

	imageURL := "https://media.example/" + asset.ID + ".png"
	asset, err = store.UpdateAsset(ctx, asset.ID, UpdateAssetInput{ImageURL: &imageURL})
	require.NoError(t, err)

	return asset
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func statusPtr(s domain.AssetStatus) *domain.AssetStatus {
	return &s
}

// =============================================================================
// Test: Assets
// =============================================================================

func testCreateAndGetAsset(t *testing.T, store Store) {
	ctx := context.Background()
	publisher := createTestAccount(t, store, "publisher", 0)

	t.Run("created asset is owned by its publisher", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, CreateAssetInput{
			Name:        "first light",
			Price:       decimal.RequireFromString("12.50"),
			PublisherID: publisher.ID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, asset.ID)
		assert.Equal(t, publisher.ID, asset.OwnerID)
		assert.Equal(t, publisher.ID, asset.PublisherID)
		assert.Equal(t, domain.AssetStatusActive, asset.Status)
		assert.Empty(t, asset.ImageURL)

		got, err := store.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, asset.ID, got.ID)
		assert.Equal(t, "first light", got.Name)
		assert.True(t, decimal.RequireFromString("12.50").Equal(got.Price))
	})

	t.Run("non positive price is rejected", func(t *testing.T) {
		_, err := store.CreateAsset(ctx, CreateAssetInput{
			Name:        "free",
			Price:       decimal.Zero,
			PublisherID: publisher.ID,
		})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := store.GetAsset(ctx, "01JAZ3Y4M8Q2V6N0R5T7W9X1B3")
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	})
}

func testUpdateAsset(t *testing.T, store Store) {
	ctx := context.Background()
	owner := createTestAccount(t, store, "owner", 0)
	stranger := createTestAccount(t, store, "stranger", 0)
	asset := createTestListing(t, store, owner.ID, 10)

	t.Run("applies only provided fields", func(t *testing.T) {
		updated, err := store.UpdateAsset(ctx, asset.ID, UpdateAssetInput{
			Price:           decimalPtr(25),
			ExpectedOwnerID: &owner.ID,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25).Equal(updated.Price))
		assert.Equal(t, asset.Name, updated.Name)
		assert.Equal(t, asset.Status, updated.Status)
		assert.Equal(t, asset.ImageURL, updated.ImageURL)
	})

	t.Run("owner guard rejects other accounts", func(t *testing.T) {
		_, err := store.UpdateAsset(ctx, asset.ID, UpdateAssetInput{
			Status:          statusPtr(domain.AssetStatusInactive),
			ExpectedOwnerID: &stranger.ID,
		})
		assert.ErrorIs(t, err, domain.ErrNotAssetOwner)

		got, err := store.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AssetStatusActive, got.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := store.UpdateAsset(ctx, asset.ID, UpdateAssetInput{Status: statusPtr("sold")})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("missing asset", func(t *testing.T) {
		name := "renamed"
		_, err := store.UpdateAsset(ctx, "01JAZ3Y4M8Q2V6N0R5T7W9X1B3", UpdateAssetInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	})
}

func testDeleteAssetAndTransaction(t *testing.T, store Store) {
	ctx := context.Background()
	publisher := createTestAccount(t, store, "publisher", 0)

	asset, err := store.CreateAsset(ctx, CreateAssetInput{
		Name:        "to be rolled back",
		Price:       decimal.NewFromInt(5),
		PublisherID: publisher.ID,
	})
	require.NoError(t, err)

	txn, err := store.RecordTransaction(ctx, RecordTransactionInput{
		Type:        domain.TransactionTypeMint,
		ToAccountID: publisher.ID,
		AssetID:     asset.ID,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransaction(ctx, txn.ID))
	require.NoError(t, store.DeleteAsset(ctx, asset.ID))

	_, err = store.GetAsset(ctx, asset.ID)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	_, err = store.GetLatestTransaction(ctx, asset.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	assert.ErrorIs(t, store.DeleteTransaction(ctx, txn.ID), domain.ErrTransactionNotFound)
	assert.ErrorIs(t, store.DeleteAsset(ctx, asset.ID), domain.ErrAssetNotFound)
}

func testListAssets(t *testing.T, store Store) {
	ctx := context.Background()
	alice := createTestAccount(t, store, "alice", 0)
	bob := createTestAccount(t, store, "bob", 0)

	aliceListing := createTestListing(t, store, alice.ID, 10)
	bobListing := createTestListing(t, store, bob.ID, 20)
	bobUnlisted := createTestListing(t, store, bob.ID, 30)
	_, err := store.UpdateAsset(ctx, bobUnlisted.ID, UpdateAssetInput{Status: statusPtr(domain.AssetStatusInactive)})
	require.NoError(t, err)

	// Mid-mint asset without an image
	_, err = store.CreateAsset(ctx, CreateAssetInput{Name: "pending", Price: decimal.NewFromInt(1), PublisherID: bob.ID})
	require.NoError(t, err)

	t.Run("tradeable assets exclude the caller", func(t *testing.T) {
		assets, total, err := store.ListTradeableAssets(ctx, alice.ID, 10, 0)
		require.NoError(t, err)

		ids := make([]string, 0, len(assets))
		for _, a := range assets {
			ids = append(ids, a.ID)
			assert.NotEqual(t, alice.ID, a.OwnerID)
			assert.Equal(t, domain.AssetStatusActive, a.Status)
			assert.NotEmpty(t, a.ImageURL)
		}
		assert.Contains(t, ids, bobListing.ID)
		assert.NotContains(t, ids, bobUnlisted.ID)
		assert.NotContains(t, ids, aliceListing.ID)
		assert.Equal(t, uint64(len(assets)), total)
	})

	t.Run("assets by owner", func(t *testing.T) {
		assets, total, err := store.ListAssetsByOwner(ctx, bob.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, assets, 2)

		page, total, err := store.ListAssetsByOwner(ctx, bob.ID, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, page, 1)
	})

	t.Run("keyset scan visits minted assets in id order", func(t *testing.T) {
		var seen []string
		after := ""
		for {
			batch, err := store.ListAssetsAfter(ctx, after, 1)
			require.NoError(t, err)
			if len(batch) == 0 {
				break
			}
			seen = append(seen, batch[0].ID)
			after = batch[0].ID
		}

		assert.Contains(t, seen, aliceListing.ID)
		assert.Contains(t, seen, bobListing.ID)
		assert.Contains(t, seen, bobUnlisted.ID)
		for i := 1; i < len(seen); i++ {
			assert.Less(t, seen[i-1], seen[i])
		}
	})
}

// =============================================================================
// Test: Transactions
// =============================================================================

func testTransactions(t *testing.T, store Store) {
	ctx := context.Background()
	alice := createTestAccount(t, store, "alice", 0)
	bob := createTestAccount(t, store, "bob", 0)
	asset := createTestListing(t, store, alice.ID, 10)

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	purchase, err := store.RecordTransaction(ctx, RecordTransactionInput{
		Type:          domain.TransactionTypePurchase,
		FromAccountID: &alice.ID,
		ToAccountID:   bob.ID,
		Price:         decimal.NewFromInt(10),
		AssetID:       asset.ID,
		Timestamp:     base.Add(2 * time.Hour),
		Meta:          datatypes.JSON(`{"client_addr":"203.0.113.7"}`),
	})
	require.NoError(t, err)

	t.Run("latest transaction", func(t *testing.T) {
		latest, err := store.GetLatestTransaction(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, purchase.ID, latest.ID)
		assert.Equal(t, domain.TransactionTypePurchase, latest.Type)
		require.NotNil(t, latest.FromAccountID)
		assert.Equal(t, alice.ID, *latest.FromAccountID)
		assert.JSONEq(t, `{"client_addr":"203.0.113.7"}`, string(latest.Meta))
	})

	t.Run("provenance is oldest first", func(t *testing.T) {
		txns, err := store.ListTransactionsByAsset(ctx, asset.ID)
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, domain.TransactionTypeMint, txns[0].Type)
		assert.Nil(t, txns[0].FromAccountID)
		assert.Equal(t, purchase.ID, txns[1].ID)
	})

	t.Run("account history covers both sides", func(t *testing.T) {
		txns, total, err := store.ListTransactionsByAccount(ctx, alice.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Equal(t, purchase.ID, txns[0].ID)

		txns, total, err = store.ListTransactionsByAccount(ctx, bob.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		assert.Equal(t, purchase.ID, txns[0].ID)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		_, err := store.RecordTransaction(ctx, RecordTransactionInput{
			Type:        domain.TransactionTypeMint,
			ToAccountID: alice.ID,
			Price:       decimal.NewFromInt(-1),
			AssetID:     asset.ID,
		})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

// =============================================================================
// Test: Accounts
// =============================================================================

func testAccounts(t *testing.T, store Store) {
	ctx := context.Background()
	account := createTestAccount(t, store, "carol", 50)

	t.Run("get account", func(t *testing.T) {
		got, err := store.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "carol", got.Name)
		assert.True(t, decimal.NewFromInt(50).Equal(got.Balance))
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		_, err := store.GetAccount(ctx, "6f1c2a58-8f0e-4a43-9a55-4a6f0f3f9d11")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		_, err = store.GetAccount(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("deposit and withdraw", func(t *testing.T) {
		updated, err := store.AdjustBalance(ctx, account.ID, decimal.RequireFromString("25.25"))
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("75.25").Equal(updated.Balance))

		updated, err = store.AdjustBalance(ctx, account.ID, decimal.RequireFromString("-75.25"))
		require.NoError(t, err)
		assert.True(t, updated.Balance.IsZero())
	})

	t.Run("overdraft is rejected and leaves the balance unchanged", func(t *testing.T) {
		_, err := store.AdjustBalance(ctx, account.ID, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		got, err := store.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.IsZero())
	})

	t.Run("negative opening balance", func(t *testing.T) {
		_, err := store.CreateAccount(ctx, CreateAccountInput{Name: "debtor", Balance: decimal.NewFromInt(-5)})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

// =============================================================================
// Test: SettlePurchase
// =============================================================================

func testSettlePurchase(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("transfers ownership and funds atomically", func(t *testing.T) {
		seller := createTestAccount(t, store, "seller", 5)
		buyer := createTestAccount(t, store, "buyer", 100)
		asset := createTestListing(t, store, seller.ID, 40)

		settlement, err := store.SettlePurchase(ctx, SettlePurchaseInput{
			AssetID:         asset.ID,
			BuyerID:         buyer.ID,
			ExpectedOwnerID: &seller.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, seller.ID, settlement.SellerID)
		assert.Equal(t, buyer.ID, settlement.Asset.OwnerID)
		assert.Equal(t, domain.AssetStatusInactive, settlement.Asset.Status)
		assert.True(t, decimal.NewFromInt(60).Equal(settlement.BuyerBalance))
		assert.True(t, decimal.NewFromInt(45).Equal(settlement.SellerBalance))

		// Balance invariant: buyer_before - price == buyer_after, seller_before + price == seller_after
		buyerAfter, err := store.GetAccount(ctx, buyer.ID)
		require.NoError(t, err)
		sellerAfter, err := store.GetAccount(ctx, seller.ID)
		require.NoError(t, err)
		assert.True(t, buyer.Balance.Sub(asset.Price).Equal(buyerAfter.Balance))
		assert.True(t, seller.Balance.Add(asset.Price).Equal(sellerAfter.Balance))

		got, err := store.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, buyer.ID, got.OwnerID)
		assert.Equal(t, asset.PublisherID, got.PublisherID)

		latest, err := store.GetLatestTransaction(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, settlement.Transaction.ID, latest.ID)
		assert.Equal(t, domain.TransactionTypePurchase, latest.Type)
		assert.True(t, asset.Price.Equal(latest.Price))
		require.NotNil(t, latest.FromAccountID)
		assert.Equal(t, seller.ID, *latest.FromAccountID)
		assert.Equal(t, buyer.ID, latest.ToAccountID)
	})

	t.Run("insufficient funds leaves every record unchanged", func(t *testing.T) {
		seller := createTestAccount(t, store, "seller", 0)
		buyer := createTestAccount(t, store, "buyer", 39)
		asset := createTestListing(t, store, seller.ID, 40)

		_, err := store.SettlePurchase(ctx, SettlePurchaseInput{AssetID: asset.ID, BuyerID: buyer.ID})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		got, err := store.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, seller.ID, got.OwnerID)
		assert.Equal(t, domain.AssetStatusActive, got.Status)

		buyerAfter, err := store.GetAccount(ctx, buyer.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(39).Equal(buyerAfter.Balance))
		sellerAfter, err := store.GetAccount(ctx, seller.ID)
		require.NoError(t, err)
		assert.True(t, sellerAfter.Balance.IsZero())

		txns, err := store.ListTransactionsByAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Len(t, txns, 1)
	})

	t.Run("rejections", func(t *testing.T) {
		seller := createTestAccount(t, store, "seller", 0)
		buyer := createTestAccount(t, store, "buyer", 100)
		other := createTestAccount(t, store, "other", 0)
		listed := createTestListing(t, store, seller.ID, 10)
		unlisted := createTestListing(t, store, seller.ID, 10)
		_, err := store.UpdateAsset(ctx, unlisted.ID, UpdateAssetInput{Status: statusPtr(domain.AssetStatusInactive)})
		require.NoError(t, err)

		tests := []struct {
			name     string
			input    SettlePurchaseInput
			expected error
		}{
			{
				name:     "unknown asset",
				input:    SettlePurchaseInput{AssetID: "01JAZ3Y4M8Q2V6N0R5T7W9X1B3", BuyerID: buyer.ID},
				expected: domain.ErrAssetNotFound,
			},
			{
				name:     "inactive asset",
				input:    SettlePurchaseInput{AssetID: unlisted.ID, BuyerID: buyer.ID},
				expected: domain.ErrAssetNotTradeable,
			},
			{
				name:     "buyer already owns the asset",
				input:    SettlePurchaseInput{AssetID: listed.ID, BuyerID: seller.ID},
				expected: domain.ErrAlreadyOwner,
			},
			{
				name:     "owner changed since observed",
				input:    SettlePurchaseInput{AssetID: listed.ID, BuyerID: buyer.ID, ExpectedOwnerID: &other.ID},
				expected: domain.ErrOwnerChanged,
			},
			{
				name:     "unknown buyer",
				input:    SettlePurchaseInput{AssetID: listed.ID, BuyerID: "6f1c2a58-8f0e-4a43-9a55-4a6f0f3f9d11"},
				expected: domain.ErrAccountNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := store.SettlePurchase(ctx, tt.input)
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			})
		}

		got, err := store.GetAsset(ctx, listed.ID)
		require.NoError(t, err)
		assert.Equal(t, seller.ID, got.OwnerID)
	})

	t.Run("resale after relisting", func(t *testing.T) {
		alice := createTestAccount(t, store, "alice", 0)
		bob := createTestAccount(t, store, "bob", 50)
		carol := createTestAccount(t, store, "carol", 80)
		asset := createTestListing(t, store, alice.ID, 50)

		_, err := store.SettlePurchase(ctx, SettlePurchaseInput{AssetID: asset.ID, BuyerID: bob.ID})
		require.NoError(t, err)

		_, err = store.UpdateAsset(ctx, asset.ID, UpdateAssetInput{
			Price:           decimalPtr(80),
			Status:          statusPtr(domain.AssetStatusActive),
			ExpectedOwnerID: &bob.ID,
		})
		require.NoError(t, err)

		settlement, err := store.SettlePurchase(ctx, SettlePurchaseInput{AssetID: asset.ID, BuyerID: carol.ID})
		require.NoError(t, err)
		assert.True(t, settlement.BuyerBalance.IsZero())
		assert.True(t, decimal.NewFromInt(80).Equal(settlement.SellerBalance))

		txns, err := store.ListTransactionsByAsset(ctx, asset.ID)
		require.NoError(t, err)
		assert.Len(t, txns, 3)
	})
}

// RunStoreTests runs all store tests against the given store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateAndGetAsset", testCreateAndGetAsset},
		{"UpdateAsset", testUpdateAsset},
		{"DeleteAssetAndTransaction", testDeleteAssetAndTransaction},
		{"ListAssets", testListAssets},
		{"Transactions", testTransactions},
		{"Accounts", testAccounts},
		{"SettlePurchase", testSettlePurchase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
