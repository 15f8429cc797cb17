package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents the accounts table
type Account struct {
	// ID is the account UUID
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Balance is the spendable amount, never negative
	Balance decimal.Decimal `gorm:"column:balance;not null;default:0;type:numeric(20,2)"`
	// CreatedAt is the timestamp when this account was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this account was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
