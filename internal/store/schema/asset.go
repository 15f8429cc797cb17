package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stegavault/stegavault/internal/domain"
)

// Asset represents the assets table - a priced image record owned by exactly one account
type Asset struct {
	// ID is the ULID assigned by the ledger on creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Name is the display name of the asset
	Name string `gorm:"column:name;not null;type:text"`
	// Price is the current listing price
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(20,2)"`
	// PublisherID is the account that minted the asset, never changes
	PublisherID string `gorm:"column:publisher_id;not null;type:uuid"`
	// OwnerID is the account currently owning the asset
	OwnerID string `gorm:"column:owner_id;not null;type:uuid;index"`
	// Status is active while the asset is listed for sale
	Status domain.AssetStatus `gorm:"column:status;not null;type:text"`
	// ImageURL is where the image carrying the current claim is stored (empty until minted)
	ImageURL string `gorm:"column:image_url;not null;default:'';type:text"`
	// CreatedAt is the timestamp when this asset was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this asset was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
