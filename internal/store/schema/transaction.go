package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/stegavault/stegavault/internal/domain"
)

// Transaction represents the transactions table - the append-only ownership history of assets
type Transaction struct {
	// ID is the ULID assigned by the ledger on creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Type is the kind of ownership change (mint, purchase)
	Type domain.TransactionType `gorm:"column:type;not null;type:text"`
	// FromAccountID is the previous owner (nil for mint)
	FromAccountID *string `gorm:"column:from_account_id;type:uuid"`
	// ToAccountID is the new owner
	ToAccountID string `gorm:"column:to_account_id;not null;type:uuid"`
	// Price is the settled amount (0 for mint)
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(20,2)"`
	// AssetID references the asset changing hands
	AssetID string `gorm:"column:asset_id;not null;type:text;index:idx_transactions_asset_timestamp,priority:1"`
	// Timestamp is when the ownership change was recorded
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz;index:idx_transactions_asset_timestamp,priority:2"`
	// Meta holds free-form request details such as the client address
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
