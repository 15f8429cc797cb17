package executor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/api/shared/dto"
	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/store"
	"github.com/stegavault/stegavault/internal/transfer"
	"github.com/stegavault/stegavault/internal/verifier"
)

// Executor is the interface for the API executor.
// Every error it returns is an *apierrors.APIError.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// MintAsset mints an asset owned by the caller
	MintAsset(ctx context.Context, principal domain.Principal, req dto.MintAssetRequest) (*dto.MintResponse, error)

	// GetAsset retrieves a single asset
	GetAsset(ctx context.Context, assetID string) (*dto.AssetResponse, error)

	// GetAssetTransactions retrieves the provenance of an asset, oldest first
	GetAssetTransactions(ctx context.Context, assetID string) (*dto.TransactionListResponse, error)

	// UpdateAsset changes listing fields of an asset owned by the caller
	UpdateAsset(ctx context.Context, principal domain.Principal, assetID string, req dto.UpdateAssetRequest) (*dto.AssetResponse, error)

	// PurchaseAsset buys an asset for the caller
	PurchaseAsset(ctx context.Context, principal domain.Principal, assetID string, req dto.PurchaseAssetRequest, clientAddr string) (*dto.PurchaseResponse, error)

	// VerifyOwnership checks the ledger and the embedded claim against a claimed owner
	VerifyOwnership(ctx context.Context, assetID, owner string) (*dto.VerifyResponse, error)

	// GetMarketplace lists assets for sale, excluding the caller's own
	GetMarketplace(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.AssetListResponse, error)

	// GetAccount retrieves the caller's account
	GetAccount(ctx context.Context, principal domain.Principal) (*dto.AccountResponse, error)

	// GetOwnedAssets lists the caller's assets
	GetOwnedAssets(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.AssetListResponse, error)

	// GetAccountTransactions lists transactions sent or received by the caller
	GetAccountTransactions(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.TransactionListResponse, error)

	// Ping checks the ledger connection
	Ping(ctx context.Context) error
}

type executor struct {
	store        store.Store
	orchestrator transfer.Orchestrator
	verifier     verifier.Verifier
}

func NewExecutor(st store.Store, orchestrator transfer.Orchestrator, v verifier.Verifier) Executor {
	return &executor{store: st, orchestrator: orchestrator, verifier: v}
}

func (e *executor) MintAsset(ctx context.Context, principal domain.Principal, req dto.MintAssetRequest) (*dto.MintResponse, error) {
	price, err := req.Validate()
	if err != nil {
		return nil, err
	}

	result, err := e.orchestrator.Mint(ctx, principal, transfer.MintInput{
		Name:  req.Name,
		Price: price,
		Image: req.Image,
		Meta:  transfer.ClientMeta(req.ClientAddr),
	})
	if err != nil {
		return nil, e.mapError(ctx, err, "mint")
	}

	return &dto.MintResponse{
		Asset:       dto.MapAssetToDTO(result.Asset),
		Transaction: dto.MapTransactionToDTO(result.Transaction),
	}, nil
}

func (e *executor) GetAsset(ctx context.Context, assetID string) (*dto.AssetResponse, error) {
	asset, err := e.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, e.mapError(ctx, err, "get asset")
	}

	resp := dto.MapAssetToDTO(*asset)
	return &resp, nil
}

func (e *executor) GetAssetTransactions(ctx context.Context, assetID string) (*dto.TransactionListResponse, error) {
	if _, err := e.store.GetAsset(ctx, assetID); err != nil {
		return nil, e.mapError(ctx, err, "get asset")
	}

	txns, err := e.store.ListTransactionsByAsset(ctx, assetID)
	if err != nil {
		return nil, e.mapError(ctx, err, "list asset transactions")
	}

	return &dto.TransactionListResponse{
		Transactions: dto.MapTransactionsToDTO(txns),
		Total:        uint64(len(txns)),
	}, nil
}

func (e *executor) UpdateAsset(ctx context.Context, principal domain.Principal, assetID string, req dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	input := transfer.UpdateInput{
		AssetID: assetID,
		Name:    req.Name,
		Price:   req.Price,
	}
	if req.Status != nil {
		status := domain.AssetStatus(*req.Status)
		input.Status = &status
	}

	asset, err := e.orchestrator.Update(ctx, principal, input)
	if err != nil {
		return nil, e.mapError(ctx, err, "update asset")
	}

	resp := dto.MapAssetToDTO(*asset)
	return &resp, nil
}

func (e *executor) PurchaseAsset(ctx context.Context, principal domain.Principal, assetID string, req dto.PurchaseAssetRequest, clientAddr string) (*dto.PurchaseResponse, error) {
	result, err := e.orchestrator.Purchase(ctx, principal, transfer.PurchaseInput{
		AssetID:         assetID,
		ExpectedOwnerID: req.ExpectedOwnerID,
		Meta:            transfer.ClientMeta(clientAddr),
	})
	if err != nil {
		return nil, e.mapError(ctx, err, "purchase asset")
	}

	return &dto.PurchaseResponse{
		Asset:        dto.MapAssetToDTO(result.Asset),
		Transaction:  dto.MapTransactionToDTO(result.Transaction),
		BuyerBalance: result.BuyerBalance,
		ClaimStale:   result.ClaimStale,
	}, nil
}

func (e *executor) VerifyOwnership(ctx context.Context, assetID, owner string) (*dto.VerifyResponse, error) {
	result, err := e.verifier.Verify(ctx, assetID, owner)
	if err != nil {
		return nil, e.mapError(ctx, err, "verify ownership")
	}

	resp := dto.MapVerifyResultToDTO(assetID, owner, *result)
	return &resp, nil
}

func (e *executor) GetMarketplace(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.AssetListResponse, error) {
	assets, total, err := e.store.ListTradeableAssets(ctx, principal.AccountID, limit, offset)
	if err != nil {
		return nil, e.mapError(ctx, err, "list marketplace")
	}

	return &dto.AssetListResponse{
		Assets:     dto.MapAssetsToDTO(assets),
		Total:      total,
		NextOffset: dto.NextOffset(offset, len(assets), total),
	}, nil
}

func (e *executor) GetAccount(ctx context.Context, principal domain.Principal) (*dto.AccountResponse, error) {
	account, err := e.store.GetAccount(ctx, principal.AccountID)
	if err != nil {
		return nil, e.mapError(ctx, err, "get account")
	}

	resp := dto.MapAccountToDTO(*account)
	return &resp, nil
}

func (e *executor) GetOwnedAssets(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.AssetListResponse, error) {
	assets, total, err := e.store.ListAssetsByOwner(ctx, principal.AccountID, limit, offset)
	if err != nil {
		return nil, e.mapError(ctx, err, "list owned assets")
	}

	return &dto.AssetListResponse{
		Assets:     dto.MapAssetsToDTO(assets),
		Total:      total,
		NextOffset: dto.NextOffset(offset, len(assets), total),
	}, nil
}

func (e *executor) GetAccountTransactions(ctx context.Context, principal domain.Principal, limit, offset int) (*dto.TransactionListResponse, error) {
	txns, total, err := e.store.ListTransactionsByAccount(ctx, principal.AccountID, limit, offset)
	if err != nil {
		return nil, e.mapError(ctx, err, "list account transactions")
	}

	return &dto.TransactionListResponse{
		Transactions: dto.MapTransactionsToDTO(txns),
		Total:        total,
		NextOffset:   dto.NextOffset(offset, len(txns), total),
	}, nil
}

func (e *executor) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return e.mapError(ctx, err, "ping")
	}
	return nil
}

// mapError converts err to an API error, logging server side failures with their cause
func (e *executor) mapError(ctx context.Context, err error, operation string) error {
	apiErr := apierrors.FromError(err)
	if apiErr.Status >= 500 {
		logger.ErrorCtx(ctx, err, zap.String("operation", operation))
	} else if !errors.Is(err, domain.ErrAssetNotFound) {
		logger.DebugCtx(ctx, "Request rejected",
			zap.String("operation", operation),
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err))
	}
	return apiErr
}
