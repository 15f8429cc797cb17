package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/claim"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
	"github.com/stegavault/stegavault/internal/messaging"
	"github.com/stegavault/stegavault/internal/stego"
	"github.com/stegavault/stegavault/internal/store"
	"github.com/stegavault/stegavault/internal/store/schema"
)

const (
	DefaultMinDimension  = 64
	DefaultMaxUploadSize = 10 << 20
	DefaultFetchTimeout  = 10 * time.Second

	maxNameLength = 200
)

// State is a step of an ownership changing operation, logged as it progresses
type State string

const (
	StateStarted       State = "started"
	StateLedgerMutated State = "ledger-mutated"
	StateClaimEmbedded State = "claim-embedded"
	StatePersisted     State = "persisted"
	StateRolledBack    State = "rolled-back"
)

// Config holds the orchestrator policies
type Config struct {
	// MinDimension is the smallest accepted width and height of a minted image
	MinDimension int
	// MaxUploadSize is the largest accepted image upload in bytes
	MaxUploadSize int64
	// FetchTimeout bounds fetching the current image before re-embedding
	FetchTimeout time.Duration
}

// MintInput holds the data needed to mint an asset
type MintInput struct {
	Name  string
	Price decimal.Decimal
	Image []byte
	Meta  datatypes.JSON
}

// MintResult is the outcome of a completed mint
type MintResult struct {
	Asset       schema.Asset
	Transaction schema.Transaction
}

// PurchaseInput holds the data needed to purchase an asset
type PurchaseInput struct {
	AssetID string
	// ExpectedOwnerID is the owner the buyer observed, the purchase fails if it changed
	ExpectedOwnerID *string
	Meta            datatypes.JSON
}

// PurchaseResult is the outcome of a committed purchase
type PurchaseResult struct {
	Asset         schema.Asset
	Transaction   schema.Transaction
	BuyerBalance  decimal.Decimal
	SellerBalance decimal.Decimal
	// ClaimStale reports that the sale committed but the image still carries the previous claim
	ClaimStale bool
}

// UpdateInput holds the fields an owner may change. Nil fields are left untouched.
type UpdateInput struct {
	AssetID string
	Name    *string
	Price   *decimal.Decimal
	Status  *domain.AssetStatus
}

// Orchestrator coordinates ledger mutations with the claim embedded in asset images
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Mint creates an asset owned by the caller and embeds its first claim
	Mint(ctx context.Context, principal domain.Principal, input MintInput) (*MintResult, error)
	// Purchase settles a sale to the caller and re-embeds the claim for the new owner
	Purchase(ctx context.Context, principal domain.Principal, input PurchaseInput) (*PurchaseResult, error)
	// Update changes listing fields of an asset owned by the caller
	Update(ctx context.Context, principal domain.Principal, input UpdateInput) (*schema.Asset, error)
	// Reembed rebuilds the claim of an asset from its latest transaction
	Reembed(ctx context.Context, assetID string) (*schema.Asset, error)
}

type orchestrator struct {
	cfg       Config
	store     store.Store
	codec     claim.Codec
	channel   stego.Channel
	media     mediaprovider.Provider
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewOrchestrator creates a new transfer orchestrator
func NewOrchestrator(
	cfg Config,
	st store.Store,
	codec claim.Codec,
	channel stego.Channel,
	media mediaprovider.Provider,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Orchestrator {
	if cfg.MinDimension <= 0 {
		cfg.MinDimension = DefaultMinDimension
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}

	return &orchestrator{
		cfg:       cfg,
		store:     st,
		codec:     codec,
		channel:   channel,
		media:     media,
		publisher: publisher,
		clock:     clock,
	}
}

// ClientMeta builds transaction metadata recording the client address
func ClientMeta(clientAddr string) datatypes.JSON {
	if clientAddr == "" {
		return nil
	}
	data, err := json.Marshal(map[string]string{"client_addr": clientAddr})
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

// =============================================================================
// Mint
// =============================================================================

// Mint creates an asset owned by the caller and embeds its first claim.
// Every ledger record created before a failure is deleted again.
func (o *orchestrator) Mint(ctx context.Context, principal domain.Principal, input MintInput) (*MintResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}
	if len(name) > maxNameLength {
		return nil, domain.Validationf("name must be at most %d characters", maxNameLength)
	}
	if !input.Price.IsPositive() {
		return nil, domain.Validationf("price must be positive")
	}
	if len(input.Image) == 0 {
		return nil, domain.Validationf("image is required")
	}
	if int64(len(input.Image)) > o.cfg.MaxUploadSize {
		return nil, domain.Validationf("image exceeds the %d byte upload limit", o.cfg.MaxUploadSize)
	}

	img, err := o.channel.Decode(input.Image)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if bounds.Dx() < o.cfg.MinDimension || bounds.Dy() < o.cfg.MinDimension {
		return nil, domain.Validationf("image must be at least %dx%d pixels, got %dx%d",
			o.cfg.MinDimension, o.cfg.MinDimension, bounds.Dx(), bounds.Dy())
	}

	o.logState(ctx, "mint", StateStarted, zap.String("publisherID", principal.AccountID))

	asset, err := o.store.CreateAsset(ctx, store.CreateAssetInput{
		Name:        name,
		Price:       input.Price,
		PublisherID: principal.AccountID,
		Status:      domain.AssetStatusActive,
	})
	if err != nil {
		return nil, err
	}

	txn, err := o.store.RecordTransaction(ctx, store.RecordTransactionInput{
		Type:        domain.TransactionTypeMint,
		ToAccountID: principal.AccountID,
		Price:       decimal.Zero,
		AssetID:     asset.ID,
		Timestamp:   o.clock.Now(),
		Meta:        input.Meta,
	})
	if err != nil {
		return nil, o.rollbackMint(ctx, asset.ID, "", "", err)
	}
	o.logState(ctx, "mint", StateLedgerMutated, zap.String("assetID", asset.ID), zap.String("transactionID", txn.ID))

	token, err := o.encodeClaim(principal.AccountID, asset.ID, txn.ID)
	if err != nil {
		return nil, o.rollbackMint(ctx, asset.ID, txn.ID, "", err)
	}

	stegoImage, err := o.channel.EmbedImage(img, token)
	if err != nil {
		return nil, o.rollbackMint(ctx, asset.ID, txn.ID, "", err)
	}
	o.logState(ctx, "mint", StateClaimEmbedded, zap.String("assetID", asset.ID))

	url, err := o.media.Store(ctx, stegoImage, stego.OutputContentType)
	if err != nil {
		return nil, o.rollbackMint(ctx, asset.ID, txn.ID, "", err)
	}

	stored, err := o.store.UpdateAsset(ctx, asset.ID, store.UpdateAssetInput{ImageURL: &url})
	if err != nil {
		return nil, o.rollbackMint(ctx, asset.ID, txn.ID, url, err)
	}
	asset = stored
	o.logState(ctx, "mint", StatePersisted, zap.String("assetID", asset.ID), zap.String("imageURL", url))

	o.publish(ctx, domain.OwnershipEvent{
		Type:          domain.OwnershipEventMinted,
		AssetID:       asset.ID,
		TransactionID: txn.ID,
		To:            principal.AccountID,
		Price:         asset.Price,
	})

	return &MintResult{Asset: *asset, Transaction: *txn}, nil
}

// rollbackMint deletes the records and stored image of a failed mint and returns the error to surface
func (o *orchestrator) rollbackMint(ctx context.Context, assetID, txnID, imageURL string, cause error) error {
	// Cleanup must run even when the caller went away
	ctx = context.WithoutCancel(ctx)

	if imageURL != "" {
		o.discardImage(ctx, imageURL)
	}

	var rollbackErrs []error
	if txnID != "" {
		if err := o.store.DeleteTransaction(ctx, txnID); err != nil && !errors.Is(err, domain.ErrTransactionNotFound) {
			rollbackErrs = append(rollbackErrs, fmt.Errorf("delete transaction %s: %w", txnID, err))
		}
	}
	if err := o.store.DeleteAsset(ctx, assetID); err != nil && !errors.Is(err, domain.ErrAssetNotFound) {
		rollbackErrs = append(rollbackErrs, fmt.Errorf("delete asset %s: %w", assetID, err))
	}

	if len(rollbackErrs) > 0 {
		rollbackErr := errors.Join(rollbackErrs...)
		logger.ErrorCtx(ctx, domain.ErrRollbackFailed.Wrap(rollbackErr),
			zap.String("assetID", assetID),
			zap.String("transactionID", txnID),
			zap.NamedError("cause", cause))
		return domain.ErrRollbackFailed.Wrap(errors.Join(cause, rollbackErr))
	}

	o.logState(ctx, "mint", StateRolledBack,
		zap.String("assetID", assetID),
		zap.String("transactionID", txnID),
		zap.NamedError("cause", cause))

	return cause
}

// =============================================================================
// Purchase
// =============================================================================

// Purchase settles a sale to the caller and re-embeds the claim for the new owner.
// The settlement is final once committed, a failed re-embed only marks the claim stale.
func (o *orchestrator) Purchase(ctx context.Context, principal domain.Principal, input PurchaseInput) (*PurchaseResult, error) {
	if input.AssetID == "" {
		return nil, domain.Validationf("asset id is required")
	}

	asset, err := o.store.GetAsset(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetStatusActive || asset.ImageURL == "" {
		return nil, domain.ErrAssetNotTradeable
	}
	if asset.OwnerID == principal.AccountID {
		return nil, domain.ErrAlreadyOwner
	}
	if input.ExpectedOwnerID != nil && *input.ExpectedOwnerID != asset.OwnerID {
		return nil, domain.ErrOwnerChanged
	}

	o.logState(ctx, "purchase", StateStarted,
		zap.String("assetID", asset.ID),
		zap.String("buyerID", principal.AccountID))

	settlement, err := o.store.SettlePurchase(ctx, store.SettlePurchaseInput{
		AssetID:         asset.ID,
		BuyerID:         principal.AccountID,
		ExpectedOwnerID: input.ExpectedOwnerID,
		Meta:            input.Meta,
	})
	if err != nil {
		return nil, err
	}
	o.logState(ctx, "purchase", StateLedgerMutated,
		zap.String("assetID", asset.ID),
		zap.String("transactionID", settlement.Transaction.ID))

	result := &PurchaseResult{
		Asset:         settlement.Asset,
		Transaction:   settlement.Transaction,
		BuyerBalance:  settlement.BuyerBalance,
		SellerBalance: settlement.SellerBalance,
	}

	// The sale is committed, finish the claim even if the caller went away
	ctx = context.WithoutCancel(ctx)

	updated, err := o.embedClaim(ctx, settlement.Asset, settlement.Transaction)
	if err != nil {
		logger.WarnCtx(ctx, "Purchase committed but claim re-embedding failed, claim is stale",
			zap.String("assetID", asset.ID),
			zap.String("transactionID", settlement.Transaction.ID),
			zap.Error(err))
		result.ClaimStale = true
	} else {
		result.Asset = *updated
	}

	from := settlement.SellerID
	o.publish(ctx, domain.OwnershipEvent{
		Type:          domain.OwnershipEventPurchased,
		AssetID:       asset.ID,
		TransactionID: settlement.Transaction.ID,
		From:          &from,
		To:            principal.AccountID,
		Price:         settlement.Transaction.Price,
		ClaimStale:    result.ClaimStale,
	})

	return result, nil
}

// =============================================================================
// Update
// =============================================================================

// Update changes listing fields of an asset owned by the caller. The claim is not re-embedded.
func (o *orchestrator) Update(ctx context.Context, principal domain.Principal, input UpdateInput) (*schema.Asset, error) {
	if input.AssetID == "" {
		return nil, domain.Validationf("asset id is required")
	}
	if input.Name == nil && input.Price == nil && input.Status == nil {
		return nil, domain.Validationf("at least one of name, price or status is required")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > maxNameLength {
			return nil, domain.Validationf("name must be between 1 and %d characters", maxNameLength)
		}
		input.Name = &name
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, domain.Validationf("price must be positive")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.Validationf("status must be %q or %q", domain.AssetStatusActive, domain.AssetStatusInactive)
	}

	asset, err := o.store.GetAsset(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.OwnerID != principal.AccountID {
		return nil, domain.ErrNotAssetOwner
	}

	updated, err := o.store.UpdateAsset(ctx, asset.ID, store.UpdateAssetInput{
		Name:            input.Name,
		Price:           input.Price,
		Status:          input.Status,
		ExpectedOwnerID: &principal.AccountID,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Asset updated",
		zap.String("assetID", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.String("price", updated.Price.StringFixed(2)))

	return updated, nil
}

// =============================================================================
// Reembed
// =============================================================================

// Reembed rebuilds the claim of an asset from its latest transaction
func (o *orchestrator) Reembed(ctx context.Context, assetID string) (*schema.Asset, error) {
	asset, err := o.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.ImageURL == "" {
		return nil, domain.NewError(domain.KindConflict, "asset has no image yet", fmt.Errorf("asset %s", assetID))
	}

	txn, err := o.store.GetLatestTransaction(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if txn.ToAccountID != asset.OwnerID {
		return nil, domain.NewError(domain.KindConflict, "latest transaction does not match the asset owner",
			fmt.Errorf("asset %s owner %s, transaction %s to %s", assetID, asset.OwnerID, txn.ID, txn.ToAccountID))
	}

	updated, err := o.embedClaim(ctx, *asset, *txn)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Claim re-embedded",
		zap.String("assetID", assetID),
		zap.String("transactionID", txn.ID))

	return updated, nil
}

// embedClaim writes the claim naming txn into the asset's current image and stores the result.
// The image URL is only replaced while txn's recipient still owns the asset.
func (o *orchestrator) embedClaim(ctx context.Context, asset schema.Asset, txn schema.Transaction) (*schema.Asset, error) {
	token, err := o.encodeClaim(txn.ToAccountID, asset.ID, txn.ID)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	data, err := o.media.Fetch(fetchCtx, asset.ImageURL)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current image: %w", err)
	}

	stegoImage, err := o.channel.EmbedBytes(data, token)
	if err != nil {
		return nil, fmt.Errorf("failed to embed claim: %w", err)
	}
	o.logState(ctx, "embed", StateClaimEmbedded, zap.String("assetID", asset.ID), zap.String("transactionID", txn.ID))

	url, err := o.media.Store(ctx, stegoImage, stego.OutputContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	owner := txn.ToAccountID
	updated, err := o.store.UpdateAsset(ctx, asset.ID, store.UpdateAssetInput{
		ImageURL:        &url,
		ExpectedOwnerID: &owner,
	})
	if err != nil {
		o.discardImage(context.WithoutCancel(ctx), url)
		return nil, fmt.Errorf("failed to persist image url: %w", err)
	}
	o.logState(ctx, "embed", StatePersisted, zap.String("assetID", asset.ID), zap.String("imageURL", url))

	return updated, nil
}

// discardImage removes an image no asset points at. Failures only leave an orphan behind.
func (o *orchestrator) discardImage(ctx context.Context, url string) {
	if err := o.media.Delete(ctx, url); err != nil {
		logger.WarnCtx(ctx, "Failed to delete orphaned image",
			zap.String("imageURL", url),
			zap.Error(err))
	}
}

func (o *orchestrator) encodeClaim(owner, assetID, txnID string) (string, error) {
	identity, err := o.codec.IssueIdentityToken(owner)
	if err != nil {
		return "", err
	}

	return o.codec.Encode(domain.OwnershipClaim{
		Owner:         owner,
		AssetID:       assetID,
		TransactionID: txnID,
		Identity:      identity,
	})
}

func (o *orchestrator) publish(ctx context.Context, event domain.OwnershipEvent) {
	event.EventID = uuid.NewString()
	event.Timestamp = o.clock.Now()

	if err := o.publisher.PublishOwnershipEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ownership event",
			zap.String("type", string(event.Type)),
			zap.String("assetID", event.AssetID),
			zap.Error(err))
	}
}

func (o *orchestrator) logState(ctx context.Context, operation string, state State, fields ...zap.Field) {
	logger.DebugCtx(ctx, "Transfer state changed",
		append([]zap.Field{zap.String("operation", operation), zap.String("state", string(state))}, fields...)...)
}
