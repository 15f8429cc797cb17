package dto

import (
	"time"

	"github.com/shopspring/decimal"

	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/store/schema"
	"github.com/stegavault/stegavault/internal/verifier"
)

// Result is the envelope of every API response
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *apierrors.APIError `json:"error,omitempty"`
}

// AssetResponse represents an asset
type AssetResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Price       decimal.Decimal    `json:"price"`
	PublisherID string             `json:"publisher_id"`
	OwnerID     string             `json:"owner_id"`
	Status      domain.AssetStatus `json:"status"`
	ImageURL    string             `json:"image_url"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TransactionResponse represents a ledger transaction
type TransactionResponse struct {
	ID            string                 `json:"id"`
	Type          domain.TransactionType `json:"type"`
	FromAccountID *string                `json:"from_account_id"`
	ToAccountID   string                 `json:"to_account_id"`
	Price         decimal.Decimal        `json:"price"`
	AssetID       string                 `json:"asset_id"`
	Timestamp     time.Time              `json:"timestamp"`
}

// AccountResponse represents the caller's account
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// MintResponse represents the outcome of a mint
type MintResponse struct {
	Asset       AssetResponse       `json:"asset"`
	Transaction TransactionResponse `json:"transaction"`
}

// PurchaseResponse represents the outcome of a purchase
type PurchaseResponse struct {
	Asset        AssetResponse       `json:"asset"`
	Transaction  TransactionResponse `json:"transaction"`
	BuyerBalance decimal.Decimal     `json:"buyer_balance"`
	// ClaimStale is set when the image still carries the previous owner's claim
	ClaimStale bool `json:"claim_stale"`
}

// VerifyResponse represents the outcome of an ownership verification
type VerifyResponse struct {
	AssetID       string                 `json:"asset_id"`
	Owner         string                 `json:"owner"`
	Valid         bool                   `json:"valid"`
	Reason        string                 `json:"reason"`
	Field         string                 `json:"field,omitempty"`
	Source        string                 `json:"source,omitempty"`
	EmbeddedClaim *domain.OwnershipClaim `json:"embedded_claim,omitempty"`
}

// AssetListResponse represents a page of assets
type AssetListResponse struct {
	Assets     []AssetResponse `json:"items"`
	Total      uint64          `json:"total"`
	NextOffset *int            `json:"next_offset,omitempty"`
}

// TransactionListResponse represents a page of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"items"`
	Total        uint64                `json:"total"`
	NextOffset   *int                  `json:"next_offset,omitempty"`
}

// MapAssetToDTO maps an asset record to its response
func MapAssetToDTO(asset schema.Asset) AssetResponse {
	return AssetResponse{
		ID:          asset.ID,
		Name:        asset.Name,
		Price:       asset.Price,
		PublisherID: asset.PublisherID,
		OwnerID:     asset.OwnerID,
		Status:      asset.Status,
		ImageURL:    asset.ImageURL,
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
}

// MapAssetsToDTO maps asset records to responses
func MapAssetsToDTO(assets []schema.Asset) []AssetResponse {
	out := make([]AssetResponse, len(assets))
	for i, asset := range assets {
		out[i] = MapAssetToDTO(asset)
	}
	return out
}

// MapTransactionToDTO maps a transaction record to its response. Metadata is not exposed.
func MapTransactionToDTO(txn schema.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		Type:          txn.Type,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Price:         txn.Price,
		AssetID:       txn.AssetID,
		Timestamp:     txn.Timestamp,
	}
}

// MapTransactionsToDTO maps transaction records to responses
func MapTransactionsToDTO(txns []schema.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = MapTransactionToDTO(txn)
	}
	return out
}

// MapAccountToDTO maps an account record to its response
func MapAccountToDTO(account schema.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}
}

// MapVerifyResultToDTO maps a verification result to its response
func MapVerifyResultToDTO(assetID, owner string, result verifier.Result) VerifyResponse {
	return VerifyResponse{
		AssetID:       assetID,
		Owner:         owner,
		Valid:         result.Valid,
		Reason:        result.Reason,
		Field:         result.Field,
		Source:        result.Source,
		EmbeddedClaim: result.EmbeddedClaim,
	}
}

// NextOffset returns the offset of the following page, nil on the last page
func NextOffset(offset, count int, total uint64) *int {
	next := offset + count
	if count == 0 || uint64(next) >= total { //nolint:gosec,G115
		return nil
	}
	return &next
}
