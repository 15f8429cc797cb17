package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus represents the lifecycle status of an asset
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInactive AssetStatus = "inactive"
)

// Valid reports whether the status is one of the known statuses
func (s AssetStatus) Valid() bool {
	return s == AssetStatusActive || s == AssetStatusInactive
}

// TransactionType represents the kind of ledger mutation a transaction records
type TransactionType string

const (
	TransactionTypeMint     TransactionType = "mint"
	TransactionTypePurchase TransactionType = "purchase"
)

// Principal is the authenticated caller of an operation
type Principal struct {
	AccountID string
	ExpiresAt time.Time
}

// OwnershipClaim is the signed statement embedded in an asset image
type OwnershipClaim struct {
	Owner         string `json:"owner"`
	AssetID       string `json:"asset_id"`
	TransactionID string `json:"tx_id"`
	// Identity is an optional non-expiring identity token of the acting account
	Identity string `json:"identity,omitempty"`
}

// OwnershipEventType represents the type of ownership event published after a commit
type OwnershipEventType string

const (
	OwnershipEventMinted    OwnershipEventType = "asset.minted"
	OwnershipEventPurchased OwnershipEventType = "asset.purchased"
)

// OwnershipEvent is published after an ownership changing operation commits
type OwnershipEvent struct {
	EventID       string             `json:"event_id"`
	Type          OwnershipEventType `json:"type"`
	AssetID       string             `json:"asset_id"`
	TransactionID string             `json:"transaction_id"`
	From          *string            `json:"from,omitempty"`
	To            string             `json:"to"`
	Price         decimal.Decimal    `json:"price"`
	ClaimStale    bool               `json:"claim_stale"`
	Timestamp     time.Time          `json:"timestamp"`
}
