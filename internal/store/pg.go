package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// RegisterReadReplica routes reads to the replica at dialector while writes stay on the primary
func RegisterReadReplica(db *gorm.DB, dialector gorm.Dialector) error {
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{dialector},
		Policy:   dbresolver.RandomPolicy{},
	}))
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// primary returns a handle that always reads from the primary database
func (s *pgStore) primary(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		return db.Clauses(dbresolver.Write)
	}
	return db
}

// firstWithFallback runs query on the default connection and, when a replica returns nothing,
// retries on the primary since the replica can lag behind it.
func (s *pgStore) firstWithFallback(ctx context.Context, query func(db *gorm.DB) error) error {
	err := query(s.db.WithContext(ctx))
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) || !hasDBResolver(s.db) {
		return err
	}
	return query(s.db.WithContext(ctx).Clauses(dbresolver.Write))
}

// newID returns a new lexicographically sortable identifier
func newID() string {
	return ulid.Make().String()
}

// normalizePage applies default and maximum page sizes
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = domain.DEFAULT_PAGE_LIMIT
	}
	if limit > domain.MAX_PAGE_LIMIT {
		limit = domain.MAX_PAGE_LIMIT
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// passthrough returns domain errors untouched and wraps everything else with msg
func passthrough(err error, msg string) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// =============================================================================
// Assets
// =============================================================================

// CreateAsset creates an asset owned by its publisher
func (s *pgStore) CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("asset name is required")
	}
	if !input.Price.IsPositive() {
		return nil, domain.Validationf("price must be positive")
	}
	status := input.Status
	if status == "" {
		status = domain.AssetStatusActive
	}
	if !status.Valid() {
		return nil, domain.Validationf("invalid asset status %q", status)
	}

	now := time.Now().UTC()
	asset := schema.Asset{
		ID:          newID(),
		Name:        input.Name,
		Price:       input.Price,
		PublisherID: input.PublisherID,
		OwnerID:     input.PublisherID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return &asset, nil
}

// GetAsset retrieves an asset by ID
func (s *pgStore) GetAsset(ctx context.Context, id string) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.firstWithFallback(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&asset).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &asset, nil
}

// UpdateAsset applies the provided fields and returns the updated asset
func (s *pgStore) UpdateAsset(ctx context.Context, id string, input UpdateAssetInput) (*schema.Asset, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.Validationf("asset name must not be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, domain.Validationf("price must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.Validationf("invalid asset status %q", *input.Status)
		}
		updates["status"] = *input.Status
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}

	var asset schema.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&schema.Asset{}).Where("id = ?", id)
		if input.ExpectedOwnerID != nil {
			query = query.Where("owner_id = ?", *input.ExpectedOwnerID)
		}

		result := query.Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update asset: %w", result.Error)
		}

		if err := tx.Where("id = ?", id).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssetNotFound
			}
			return fmt.Errorf("failed to reload asset: %w", err)
		}

		if result.RowsAffected == 0 {
			// The row exists, so the owner guard rejected the update
			return domain.ErrNotAssetOwner
		}

		return nil
	})
	if err != nil {
		return nil, passthrough(err, "failed to update asset")
	}

	return &asset, nil
}

// DeleteAsset deletes an asset, used only to compensate a failed mint
func (s *pgStore) DeleteAsset(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Asset{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// ListAssetsByOwner lists the assets of an owner, newest first
func (s *pgStore) ListAssetsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]schema.Asset, uint64, error) {
	limit, offset = normalizePage(limit, offset)

	query := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Where("owner_id = ?", ownerID).
		Where("image_url <> ''")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	var assets []schema.Asset
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&assets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}

	return assets, uint64(total), nil //nolint:gosec,G115
}

// ListTradeableAssets lists active assets with an image, excluding those owned by excludeOwnerID
func (s *pgStore) ListTradeableAssets(ctx context.Context, excludeOwnerID string, limit, offset int) ([]schema.Asset, uint64, error) {
	limit, offset = normalizePage(limit, offset)

	query := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Where("status = ?", domain.AssetStatusActive).
		Where("image_url <> ''")
	if excludeOwnerID != "" {
		query = query.Where("owner_id <> ?", excludeOwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tradeable assets: %w", err)
	}

	var assets []schema.Asset
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&assets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tradeable assets: %w", err)
	}

	return assets, uint64(total), nil //nolint:gosec,G115
}

// ListAssetsAfter returns minted assets with an ID greater than afterID in ID order
func (s *pgStore) ListAssetsAfter(ctx context.Context, afterID string, limit int) ([]schema.Asset, error) {
	if limit <= 0 {
		limit = domain.DEFAULT_PAGE_LIMIT
	}

	var assets []schema.Asset
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("image_url <> ''").
		Order("id ASC").
		Limit(limit).
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets after %s: %w", afterID, err)
	}

	return assets, nil
}

// =============================================================================
// Transactions
// =============================================================================

// RecordTransaction appends a transaction
func (s *pgStore) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*schema.Transaction, error) {
	if input.Price.IsNegative() {
		return nil, domain.Validationf("transaction price must not be negative")
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	txn := schema.Transaction{
		ID:            newID(),
		Type:          input.Type,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Price:         input.Price,
		AssetID:       input.AssetID,
		Timestamp:     timestamp,
		Meta:          input.Meta,
	}

	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &txn, nil
}

// DeleteTransaction deletes a transaction, used only to compensate a failed mint
func (s *pgStore) DeleteTransaction(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GetLatestTransaction returns the most recent transaction of an asset.
// It always reads from the primary so a fresh purchase is never missed.
func (s *pgStore) GetLatestTransaction(ctx context.Context, assetID string) (*schema.Transaction, error) {
	var txn schema.Transaction
	err := s.primary(ctx).
		Where("asset_id = ?", assetID).
		Order("timestamp DESC, id DESC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}

	return &txn, nil
}

// ListTransactionsByAsset returns the provenance of an asset, oldest first
func (s *pgStore) ListTransactionsByAsset(ctx context.Context, assetID string) ([]schema.Transaction, error) {
	var txns []schema.Transaction
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("timestamp ASC, id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for asset: %w", err)
	}

	return txns, nil
}

// ListTransactionsByAccount returns transactions sent or received by an account, newest first
func (s *pgStore) ListTransactionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]schema.Transaction, uint64, error) {
	limit, offset = normalizePage(limit, offset)

	query := s.db.WithContext(ctx).Model(&schema.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txns []schema.Transaction
	err := query.
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions for account: %w", err)
	}

	return txns, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Accounts
// =============================================================================

// CreateAccount creates an account
func (s *pgStore) CreateAccount(ctx context.Context, input CreateAccountInput) (*schema.Account, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("account name is required")
	}
	if input.Balance.IsNegative() {
		return nil, domain.Validationf("initial balance must not be negative")
	}

	now := time.Now().UTC()
	account := schema.Account{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Balance:   input.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &account, nil
}

// GetAccount retrieves an account by ID
func (s *pgStore) GetAccount(ctx context.Context, id string) (*schema.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var account schema.Account
	err := s.firstWithFallback(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&account).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// AdjustBalance adds delta to the balance, rejecting results below zero
func (s *pgStore) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (*schema.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var account schema.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&schema.Account{}).
			Where("id = ? AND balance + ? >= 0", accountID, delta).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", delta),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to adjust balance: %w", result.Error)
		}

		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return fmt.Errorf("failed to reload account: %w", err)
		}

		if result.RowsAffected == 0 {
			return domain.ErrInsufficientBalance
		}

		return nil
	})
	if err != nil {
		return nil, passthrough(err, "failed to adjust balance")
	}

	return &account, nil
}

// =============================================================================
// Settlement
// =============================================================================

// SettlePurchase transfers ownership and funds in a single database transaction.
// The asset row is locked first, then both accounts in ID order, so concurrent purchases of the
// same asset serialize and opposing purchases between two accounts cannot deadlock.
func (s *pgStore) SettlePurchase(ctx context.Context, input SettlePurchaseInput) (*Settlement, error) {
	var settlement Settlement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset schema.Asset
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.AssetID).
			First(&asset).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssetNotFound
			}
			return fmt.Errorf("failed to lock asset: %w", err)
		}

		if asset.Status != domain.AssetStatusActive || asset.ImageURL == "" {
			return domain.ErrAssetNotTradeable
		}
		if input.ExpectedOwnerID != nil && asset.OwnerID != *input.ExpectedOwnerID {
			return domain.ErrOwnerChanged
		}
		if asset.OwnerID == input.BuyerID {
			return domain.ErrAlreadyOwner
		}

		sellerID := asset.OwnerID
		var accounts []schema.Account
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", []string{input.BuyerID, sellerID}).
			Order("id ASC").
			Find(&accounts).Error
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}

		var buyer, seller *schema.Account
		for i := range accounts {
			switch accounts[i].ID {
			case input.BuyerID:
				buyer = &accounts[i]
			case sellerID:
				seller = &accounts[i]
			}
		}
		if buyer == nil || seller == nil {
			return domain.ErrAccountNotFound
		}

		price := asset.Price
		if buyer.Balance.LessThan(price) {
			return domain.ErrInsufficientBalance
		}

		now := time.Now().UTC()
		txn := schema.Transaction{
			ID:            newID(),
			Type:          domain.TransactionTypePurchase,
			FromAccountID: &sellerID,
			ToAccountID:   input.BuyerID,
			Price:         price,
			AssetID:       asset.ID,
			Timestamp:     now,
			Meta:          input.Meta,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		err = tx.Model(&schema.Asset{}).
			Where("id = ?", asset.ID).
			Updates(map[string]interface{}{
				"owner_id":   input.BuyerID,
				"status":     domain.AssetStatusInactive,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to reassign asset: %w", err)
		}

		buyer.Balance = buyer.Balance.Sub(price)
		seller.Balance = seller.Balance.Add(price)
		for _, account := range []*schema.Account{buyer, seller} {
			err := tx.Model(&schema.Account{}).
				Where("id = ?", account.ID).
				Updates(map[string]interface{}{
					"balance":    account.Balance,
					"updated_at": now,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
		}

		asset.OwnerID = input.BuyerID
		asset.Status = domain.AssetStatusInactive
		asset.UpdatedAt = now

		settlement = Settlement{
			Transaction:   txn,
			Asset:         asset,
			SellerID:      sellerID,
			BuyerBalance:  buyer.Balance,
			SellerBalance: seller.Balance,
		}
		return nil
	})
	if err != nil {
		logger.WarnCtx(ctx, "Purchase settlement aborted",
			zap.String("assetID", input.AssetID),
			zap.String("buyerID", input.BuyerID),
			zap.Error(err))
		return nil, passthrough(err, "failed to settle purchase")
	}

	logger.InfoCtx(ctx, "Purchase settled",
		zap.String("assetID", input.AssetID),
		zap.String("buyerID", input.BuyerID),
		zap.String("sellerID", settlement.SellerID),
		zap.String("transactionID", settlement.Transaction.ID),
		zap.String("price", settlement.Transaction.Price.StringFixed(2)))

	return &settlement, nil
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
