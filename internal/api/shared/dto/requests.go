package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/domain"
)

// MintAssetRequest represents a multipart mint request
type MintAssetRequest struct {
	Name  string
	Price string
	Image []byte
	// ClientAddr is recorded in the mint transaction metadata
	ClientAddr string
}

// Validate validates the request and returns the parsed price
func (r *MintAssetRequest) Validate() (decimal.Decimal, error) {
	if strings.TrimSpace(r.Name) == "" {
		return decimal.Zero, apierrors.NewValidationError("name is required")
	}
	if len(r.Image) == 0 {
		return decimal.Zero, apierrors.NewValidationError("image is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return decimal.Zero, apierrors.NewValidationError("price must be a decimal number")
	}

	return price, nil
}

// UpdateAssetRequest represents the request body for updating an asset
type UpdateAssetRequest struct {
	Name   *string          `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Status *string          `json:"status"`
}

// Validate validates the request body
func (r *UpdateAssetRequest) Validate() error {
	if r.Name == nil && r.Price == nil && r.Status == nil {
		return apierrors.NewValidationError("at least one of name, price or status is required")
	}
	if r.Status != nil && !domain.AssetStatus(*r.Status).Valid() {
		return apierrors.NewValidationError("status must be active or inactive")
	}

	return nil
}

// PurchaseAssetRequest represents the optional request body for purchasing an asset
type PurchaseAssetRequest struct {
	// ExpectedOwnerID is the owner the buyer saw when deciding to buy
	ExpectedOwnerID *string `json:"expected_owner_id"`
}
