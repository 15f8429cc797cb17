package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/store/schema"
)

// CreateAssetInput represents the data needed to create an asset
type CreateAssetInput struct {
	Name        string
	Price       decimal.Decimal
	PublisherID string
	Status      domain.AssetStatus
}

// UpdateAssetInput holds the fields to change on an asset. Nil fields are left untouched.
type UpdateAssetInput struct {
	Name     *string
	Price    *decimal.Decimal
	Status   *domain.AssetStatus
	ImageURL *string
	// ExpectedOwnerID makes the update conditional on the current owner
	ExpectedOwnerID *string
}

// RecordTransactionInput represents the data needed to append a transaction
type RecordTransactionInput struct {
	Type          domain.TransactionType
	FromAccountID *string
	ToAccountID   string
	Price         decimal.Decimal
	AssetID       string
	// Timestamp defaults to now when zero
	Timestamp time.Time
	Meta      datatypes.JSON
}

// CreateAccountInput represents the data needed to create an account
type CreateAccountInput struct {
	Name    string
	Balance decimal.Decimal
}

// SettlePurchaseInput represents a purchase to settle atomically
type SettlePurchaseInput struct {
	AssetID string
	BuyerID string
	// ExpectedOwnerID rejects the purchase if the asset changed hands since it was observed
	ExpectedOwnerID *string
	Meta            datatypes.JSON
}

// Settlement is the committed outcome of a purchase
type Settlement struct {
	Transaction   schema.Transaction
	Asset         schema.Asset
	SellerID      string
	BuyerBalance  decimal.Decimal
	SellerBalance decimal.Decimal
}

// Store defines the interface for ledger operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// =============================================================================
	// Assets
	// =============================================================================

	// CreateAsset creates an asset owned by its publisher
	CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error)
	// GetAsset retrieves an asset by ID
	GetAsset(ctx context.Context, id string) (*schema.Asset, error)
	// UpdateAsset applies the provided fields and returns the updated asset
	UpdateAsset(ctx context.Context, id string, input UpdateAssetInput) (*schema.Asset, error)
	// DeleteAsset deletes an asset, used only to compensate a failed mint
	DeleteAsset(ctx context.Context, id string) error
	// ListAssetsByOwner lists the assets of an owner, newest first
	ListAssetsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]schema.Asset, uint64, error)
	// ListTradeableAssets lists active assets with an image, excluding those owned by excludeOwnerID
	ListTradeableAssets(ctx context.Context, excludeOwnerID string, limit, offset int) ([]schema.Asset, uint64, error)
	// ListAssetsAfter returns minted assets with an ID greater than afterID in ID order
	ListAssetsAfter(ctx context.Context, afterID string, limit int) ([]schema.Asset, error)

	// =============================================================================
	// Transactions
	// =============================================================================

	// RecordTransaction appends a transaction
	RecordTransaction(ctx context.Context, input RecordTransactionInput) (*schema.Transaction, error)
	// DeleteTransaction deletes a transaction, used only to compensate a failed mint
	DeleteTransaction(ctx context.Context, id string) error
	// GetLatestTransaction returns the most recent transaction of an asset
	GetLatestTransaction(ctx context.Context, assetID string) (*schema.Transaction, error)
	// ListTransactionsByAsset returns the provenance of an asset, oldest first
	ListTransactionsByAsset(ctx context.Context, assetID string) ([]schema.Transaction, error)
	// ListTransactionsByAccount returns transactions sent or received by an account, newest first
	ListTransactionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]schema.Transaction, uint64, error)

	// =============================================================================
	// Accounts
	// =============================================================================

	// CreateAccount creates an account
	CreateAccount(ctx context.Context, input CreateAccountInput) (*schema.Account, error)
	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, id string) (*schema.Account, error)
	// AdjustBalance adds delta to the balance, rejecting results below zero
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (*schema.Account, error)

	// =============================================================================
	// Settlement
	// =============================================================================

	// SettlePurchase transfers ownership and funds in a single database transaction
	SettlePurchase(ctx context.Context, input SettlePurchaseInput) (*Settlement, error)

	// Ping checks the database connection
	Ping(ctx context.Context) error
}
