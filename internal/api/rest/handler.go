package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stegavault/stegavault/internal/api/middleware"
	"github.com/stegavault/stegavault/internal/api/shared/constants"
	"github.com/stegavault/stegavault/internal/api/shared/dto"
	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/api/shared/executor"
	"github.com/stegavault/stegavault/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// MintAsset mints an asset from a multipart upload (fields: name, price, image)
	// POST /api/v1/assets
	MintAsset(c *gin.Context)

	// GetAsset retrieves a single asset
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// GetAssetTransactions retrieves the provenance of an asset
	// GET /api/v1/assets/:id/transactions
	GetAssetTransactions(c *gin.Context)

	// UpdateAsset changes name, price or status of an owned asset
	// PATCH /api/v1/assets/:id
	UpdateAsset(c *gin.Context)

	// PurchaseAsset buys an asset at its listed price
	// POST /api/v1/assets/:id/purchase
	PurchaseAsset(c *gin.Context)

	// VerifyOwnership checks a claimed owner against the ledger and the image
	// GET /api/v1/assets/:id/verify?owner=<account_id>
	VerifyOwnership(c *gin.Context)

	// GetMarketplace lists assets for sale
	// GET /api/v1/marketplace?limit=<limit>&offset=<offset>
	GetMarketplace(c *gin.Context)

	// GetAccount retrieves the caller's account
	// GET /api/v1/me
	GetAccount(c *gin.Context)

	// GetOwnedAssets lists the caller's assets
	// GET /api/v1/me/assets?limit=<limit>&offset=<offset>
	GetOwnedAssets(c *gin.Context)

	// GetAccountTransactions lists the caller's transactions
	// GET /api/v1/me/transactions?limit=<limit>&offset=<offset>
	GetAccountTransactions(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// MintAsset mints an asset from a multipart upload
func (h *handler) MintAsset(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MAX_MINT_REQUEST_SIZE)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondValidationError(c, "request body is too large")
			return
		}
		respondValidationError(c, "image is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Failed to read image")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondBadRequest(c, "Failed to read image")
		return
	}

	result, err := h.executor.MintAsset(c.Request.Context(), principal, dto.MintAssetRequest{
		Name:       c.PostForm("name"),
		Price:      c.PostForm("price"),
		Image:      image,
		ClientAddr: c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Asset minted", result)
}

// GetAsset retrieves a single asset
func (h *handler) GetAsset(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.executor.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Asset retrieved", asset)
}

// GetAssetTransactions retrieves the provenance of an asset
func (h *handler) GetAssetTransactions(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	txns, err := h.executor.GetAssetTransactions(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Transactions retrieved", txns)
}

// UpdateAsset changes name, price or status of an owned asset
func (h *handler) UpdateAsset(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	asset, err := h.executor.UpdateAsset(c.Request.Context(), principal, assetID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Asset updated", asset)
}

// PurchaseAsset buys an asset at its listed price. The body is optional.
func (h *handler) PurchaseAsset(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req dto.PurchaseAssetRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBadRequest(c, "Invalid request body", err.Error())
			return
		}
	}

	result, err := h.executor.PurchaseAsset(c.Request.Context(), principal, assetID, req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Asset purchased"
	if result.ClaimStale {
		message = "Asset purchased, ownership claim will be refreshed shortly"
	}
	respondOK(c, http.StatusOK, message, result)
}

// VerifyOwnership checks a claimed owner against the ledger and the image
func (h *handler) VerifyOwnership(c *gin.Context) {
	assetID, ok := assetIDParam(c)
	if !ok {
		return
	}

	params, err := ParseVerifyQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.executor.VerifyOwnership(c.Request.Context(), assetID, params.Owner)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, result.Reason, result)
}

// GetMarketplace lists assets for sale
func (h *handler) GetMarketplace(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	params, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	assets, err := h.executor.GetMarketplace(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Marketplace retrieved", assets)
}

// GetAccount retrieves the caller's account
func (h *handler) GetAccount(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	account, err := h.executor.GetAccount(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Account retrieved", account)
}

// GetOwnedAssets lists the caller's assets
func (h *handler) GetOwnedAssets(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	params, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	assets, err := h.executor.GetOwnedAssets(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Assets retrieved", assets)
}

// GetAccountTransactions lists the caller's transactions
func (h *handler) GetAccountTransactions(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	params, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	txns, err := h.executor.GetAccountTransactions(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Transactions retrieved", txns)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": constants.SERVICE_NAME,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}

// principal returns the authenticated caller, responding 401 when absent
func (h *handler) principal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, apierrors.FromError(domain.ErrUnauthenticated))
		return domain.Principal{}, false
	}
	return principal, true
}

func assetIDParam(c *gin.Context) (string, bool) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return "", false
	}
	return assetID, true
}
