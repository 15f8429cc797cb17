package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegavault/stegavault/internal/api/rest"
	"github.com/stegavault/stegavault/internal/api/shared/dto"
	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/mocks"
)

const goodToken = "good-token"

type testHandlerMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	auth     *mocks.MockAuthenticator
	router   *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		ctrl:     ctrl,
		executor: mocks.NewMockAPIExecutor(ctrl),
		auth:     mocks.NewMockAuthenticator(ctrl),
		router:   gin.New(),
	}
	tm.auth.EXPECT().
		Authenticate(gomock.Any(), goodToken).
		Return(&domain.Principal{AccountID: "alice"}, nil).
		AnyTimes()
	tm.auth.EXPECT().
		Authenticate(gomock.Any(), gomock.Not(goodToken)).
		Return(nil, domain.ErrUnauthenticated).
		AnyTimes()

	rest.SetupRoutes(tm.router, rest.NewHandler(tm.executor), tm.auth, nil, "")
	return tm
}

func (tm *testHandlerMocks) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+goodToken)
	return req
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *apierrors.APIError `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	var out envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func mintBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "art.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandler_HealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Ping(gomock.Any()).Return(nil)

		w := tm.do(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("unavailable", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Ping(gomock.Any()).Return(errors.New("db down"))

		w := tm.do(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestHandler_GetAsset(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			GetAsset(gomock.Any(), "asset-1").
			Return(&dto.AssetResponse{ID: "asset-1", Name: "Dawn", Price: decimal.NewFromInt(10), OwnerID: "alice"}, nil)

		w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/assets/asset-1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		out := decode(t, w)
		assert.True(t, out.Success)
		var asset dto.AssetResponse
		require.NoError(t, json.Unmarshal(out.Data, &asset))
		assert.Equal(t, "asset-1", asset.ID)
		assert.True(t, decimal.NewFromInt(10).Equal(asset.Price))
	})

	t.Run("not found", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			GetAsset(gomock.Any(), "missing").
			Return(nil, apierrors.NewNotFoundError("asset not found"))

		w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/assets/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)

		out := decode(t, w)
		assert.False(t, out.Success)
		require.NotNil(t, out.Error)
		assert.Equal(t, apierrors.ErrCodeNotFound, out.Error.Code)
	})
}

func TestHandler_MintAsset(t *testing.T) {
	t.Run("requires session", func(t *testing.T) {
		tm := setupTestHandler(t)
		body, contentType := mintBody(t, map[string]string{"name": "Dawn", "price": "10"}, []byte("png"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assets", body)
		req.Header.Set("Content-Type", contentType)

		w := tm.do(req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		tm := setupTestHandler(t)
		body, contentType := mintBody(t, map[string]string{"name": "Dawn", "price": "10"}, []byte("png"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assets", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer forged")

		w := tm.do(req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized access")
	})

	t.Run("image is required", func(t *testing.T) {
		tm := setupTestHandler(t)
		body, contentType := mintBody(t, map[string]string{"name": "Dawn", "price": "10"}, nil)
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets", body))
		req.Header.Set("Content-Type", contentType)

		w := tm.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image is required")
	})

	t.Run("minted", func(t *testing.T) {
		tm := setupTestHandler(t)
		image := []byte("\x89PNG fake bytes")
		tm.executor.EXPECT().
			MintAsset(gomock.Any(), domain.Principal{AccountID: "alice"}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, req dto.MintAssetRequest) (*dto.MintResponse, error) {
				assert.Equal(t, "Dawn", req.Name)
				assert.Equal(t, "10.50", req.Price)
				assert.Equal(t, image, req.Image)
				assert.NotEmpty(t, req.ClientAddr)
				return &dto.MintResponse{
					Asset:       dto.AssetResponse{ID: "asset-1", OwnerID: "alice"},
					Transaction: dto.TransactionResponse{ID: "tx-1", Type: domain.TransactionTypeMint},
				}, nil
			})

		body, contentType := mintBody(t, map[string]string{"name": "Dawn", "price": "10.50"}, image)
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets", body))
		req.Header.Set("Content-Type", contentType)

		w := tm.do(req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		out := decode(t, w)
		assert.Equal(t, "Asset minted", out.Message)
		var minted dto.MintResponse
		require.NoError(t, json.Unmarshal(out.Data, &minted))
		assert.Equal(t, "asset-1", minted.Asset.ID)
		assert.Equal(t, "tx-1", minted.Transaction.ID)
	})

	t.Run("capacity error", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			MintAsset(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, apierrors.FromError(domain.ErrImageCapacity))

		body, contentType := mintBody(t, map[string]string{"name": "Dawn", "price": "1"}, []byte("tiny"))
		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets", body))
		req.Header.Set("Content-Type", contentType)

		w := tm.do(req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHandler_UpdateAsset(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		tm := setupTestHandler(t)
		req := authed(httptest.NewRequest(http.MethodPatch, "/api/v1/assets/asset-1", strings.NewReader("{")))
		req.Header.Set("Content-Type", "application/json")

		w := tm.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})

	t.Run("forbidden for non owner", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			UpdateAsset(gomock.Any(), gomock.Any(), "asset-1", gomock.Any()).
			Return(nil, apierrors.FromError(domain.ErrNotAssetOwner))

		req := authed(httptest.NewRequest(http.MethodPatch, "/api/v1/assets/asset-1", strings.NewReader(`{"status":"inactive"}`)))
		req.Header.Set("Content-Type", "application/json")

		w := tm.do(req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("updated", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			UpdateAsset(gomock.Any(), domain.Principal{AccountID: "alice"}, "asset-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, _ string, req dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
				require.NotNil(t, req.Price)
				assert.Equal(t, "25", req.Price.String())
				assert.Nil(t, req.Name)
				return &dto.AssetResponse{ID: "asset-1", Price: *req.Price}, nil
			})

		req := authed(httptest.NewRequest(http.MethodPatch, "/api/v1/assets/asset-1", strings.NewReader(`{"price":"25"}`)))
		req.Header.Set("Content-Type", "application/json")

		w := tm.do(req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Asset updated", decode(t, w).Message)
	})
}

func TestHandler_PurchaseAsset(t *testing.T) {
	t.Run("without body", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			PurchaseAsset(gomock.Any(), domain.Principal{AccountID: "alice"}, "asset-1", dto.PurchaseAssetRequest{}, gomock.Any()).
			Return(&dto.PurchaseResponse{Asset: dto.AssetResponse{ID: "asset-1", OwnerID: "alice"}}, nil)

		w := tm.do(authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets/asset-1/purchase", nil)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Asset purchased", decode(t, w).Message)
	})

	t.Run("with expected owner and stale claim", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			PurchaseAsset(gomock.Any(), gomock.Any(), "asset-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, _ string, req dto.PurchaseAssetRequest, _ string) (*dto.PurchaseResponse, error) {
				require.NotNil(t, req.ExpectedOwnerID)
				assert.Equal(t, "bob", *req.ExpectedOwnerID)
				return &dto.PurchaseResponse{ClaimStale: true}, nil
			})

		req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets/asset-1/purchase", strings.NewReader(`{"expected_owner_id":"bob"}`)))
		req.Header.Set("Content-Type", "application/json")

		w := tm.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Asset purchased, ownership claim will be refreshed shortly", decode(t, w).Message)
	})

	t.Run("conflict", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			PurchaseAsset(gomock.Any(), gomock.Any(), "asset-1", gomock.Any(), gomock.Any()).
			Return(nil, apierrors.FromError(domain.ErrInsufficientBalance))

		w := tm.do(authed(httptest.NewRequest(http.MethodPost, "/api/v1/assets/asset-1/purchase", nil)))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrInsufficientBalance.Message)
	})
}

func TestHandler_VerifyOwnership(t *testing.T) {
	t.Run("owner is required", func(t *testing.T) {
		tm := setupTestHandler(t)
		w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/assets/asset-1/verify", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "owner is required")
	})

	t.Run("reports the reason", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().
			VerifyOwnership(gomock.Any(), "asset-1", "bob").
			Return(&dto.VerifyResponse{AssetID: "asset-1", Owner: "bob", Valid: false, Reason: domain.REASON_CLAIMED_OWNER_MISMATCH}, nil)

		w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/assets/asset-1/verify?owner=bob", nil))
		require.Equal(t, http.StatusOK, w.Code)

		out := decode(t, w)
		assert.Equal(t, domain.REASON_CLAIMED_OWNER_MISMATCH, out.Message)
		var result dto.VerifyResponse
		require.NoError(t, json.Unmarshal(out.Data, &result))
		assert.False(t, result.Valid)
	})
}

func TestHandler_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{name: "zero limit", query: "?limit=0", status: http.StatusBadRequest},
		{name: "limit above max", query: "?limit=101", status: http.StatusBadRequest},
		{name: "negative offset", query: "?offset=-1", status: http.StatusBadRequest},
		{name: "not a number", query: "?limit=ten", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestHandler(t)
			w := tm.do(authed(httptest.NewRequest(http.MethodGet, "/api/v1/marketplace"+tt.query, nil)))
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("defaults", func(t *testing.T) {
		tm := setupTestHandler(t)
		next := 20
		tm.executor.EXPECT().
			GetMarketplace(gomock.Any(), domain.Principal{AccountID: "alice"}, domain.DEFAULT_PAGE_LIMIT, 0).
			Return(&dto.AssetListResponse{Assets: []dto.AssetResponse{}, Total: 30, NextOffset: &next}, nil)

		w := tm.do(authed(httptest.NewRequest(http.MethodGet, "/api/v1/marketplace", nil)))
		require.Equal(t, http.StatusOK, w.Code)

		var page dto.AssetListResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
		assert.Equal(t, uint64(30), page.Total)
		require.NotNil(t, page.NextOffset)
		assert.Equal(t, 20, *page.NextOffset)
	})
}

func TestHandler_Me(t *testing.T) {
	tm := setupTestHandler(t)
	principal := domain.Principal{AccountID: "alice"}

	tm.executor.EXPECT().
		GetAccount(gomock.Any(), principal).
		Return(&dto.AccountResponse{ID: "alice", Balance: decimal.NewFromInt(90)}, nil)
	tm.executor.EXPECT().
		GetOwnedAssets(gomock.Any(), principal, 5, 10).
		Return(&dto.AssetListResponse{Assets: []dto.AssetResponse{}}, nil)
	tm.executor.EXPECT().
		GetAccountTransactions(gomock.Any(), principal, domain.DEFAULT_PAGE_LIMIT, 0).
		Return(&dto.TransactionListResponse{Transactions: []dto.TransactionResponse{}}, nil)

	w := tm.do(authed(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = tm.do(authed(httptest.NewRequest(http.MethodGet, "/api/v1/me/assets?limit=5&offset=10", nil)))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/transactions", nil)
	req.Header.Set("Authorization", "Token "+goodToken)
	w = tm.do(req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
