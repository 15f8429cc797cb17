package transfer_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/store"
	"github.com/stegavault/stegavault/internal/store/schema"
)

// memStore is an in-memory ledger with the same settlement rules as the postgres store
type memStore struct {
	mu           sync.Mutex
	accounts     map[string]schema.Account
	assets       map[string]schema.Asset
	transactions map[string]schema.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     map[string]schema.Account{},
		assets:       map[string]schema.Asset{},
		transactions: map[string]schema.Transaction{},
	}
}

func (s *memStore) CreateAsset(_ context.Context, input store.CreateAssetInput) (*schema.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	asset := schema.Asset{
		ID:          ulid.Make().String(),
		Name:        input.Name,
		Price:       input.Price,
		PublisherID: input.PublisherID,
		OwnerID:     input.PublisherID,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.assets[asset.ID] = asset
	return &asset, nil
}

func (s *memStore) GetAsset(_ context.Context, id string) (*schema.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return &asset, nil
}

func (s *memStore) UpdateAsset(_ context.Context, id string, input store.UpdateAssetInput) (*schema.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	if input.ExpectedOwnerID != nil && asset.OwnerID != *input.ExpectedOwnerID {
		return nil, domain.ErrOwnerChanged
	}
	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Price != nil {
		asset.Price = *input.Price
	}
	if input.Status != nil {
		asset.Status = *input.Status
	}
	if input.ImageURL != nil {
		asset.ImageURL = *input.ImageURL
	}
	asset.UpdatedAt = time.Now().UTC()
	s.assets[id] = asset
	return &asset, nil
}

func (s *memStore) DeleteAsset(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(s.assets, id)
	return nil
}

func (s *memStore) listAssets(filter func(schema.Asset) bool) []schema.Asset {
	var out []schema.Asset
	for _, a := range s.assets {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *memStore) ListAssetsByOwner(_ context.Context, ownerID string, limit, offset int) ([]schema.Asset, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.listAssets(func(a schema.Asset) bool { return a.OwnerID == ownerID })
	return page(all, limit, offset), uint64(len(all)), nil
}

func (s *memStore) ListTradeableAssets(_ context.Context, excludeOwnerID string, limit, offset int) ([]schema.Asset, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.listAssets(func(a schema.Asset) bool {
		return a.Status == domain.AssetStatusActive && a.ImageURL != "" && a.OwnerID != excludeOwnerID
	})
	return page(all, limit, offset), uint64(len(all)), nil
}

func (s *memStore) ListAssetsAfter(_ context.Context, afterID string, limit int) ([]schema.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.listAssets(func(a schema.Asset) bool { return a.ID > afterID && a.ImageURL != "" })
	return page(all, limit, 0), nil
}

func (s *memStore) RecordTransaction(_ context.Context, input store.RecordTransactionInput) (*schema.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	txn := schema.Transaction{
		ID:            ulid.Make().String(),
		Type:          input.Type,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Price:         input.Price,
		AssetID:       input.AssetID,
		Timestamp:     ts,
		Meta:          input.Meta,
	}
	s.transactions[txn.ID] = txn
	return &txn, nil
}

func (s *memStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *memStore) transactionsWhere(filter func(schema.Transaction) bool) []schema.Transaction {
	var out []schema.Transaction
	for _, t := range s.transactions {
		if filter(t) {
			out = append(out, t)
		}
	}
	// ULIDs sort by creation time
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *memStore) GetLatestTransaction(_ context.Context, assetID string) (*schema.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.transactionsWhere(func(t schema.Transaction) bool { return t.AssetID == assetID })
	if len(txns) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return &txns[0], nil
}

func (s *memStore) ListTransactionsByAsset(_ context.Context, assetID string) ([]schema.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactionsWhere(func(t schema.Transaction) bool { return t.AssetID == assetID }), nil
}

func (s *memStore) ListTransactionsByAccount(_ context.Context, accountID string, limit, offset int) ([]schema.Transaction, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.transactionsWhere(func(t schema.Transaction) bool {
		return t.ToAccountID == accountID || (t.FromAccountID != nil && *t.FromAccountID == accountID)
	})
	return page(all, limit, offset), uint64(len(all)), nil
}

func (s *memStore) CreateAccount(_ context.Context, input store.CreateAccountInput) (*schema.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Balance.IsNegative() {
		return nil, domain.Validationf("balance must not be negative")
	}
	account := schema.Account{ID: uuid.NewString(), Name: input.Name, Balance: input.Balance}
	s.accounts[account.ID] = account
	return &account, nil
}

func (s *memStore) GetAccount(_ context.Context, id string) (*schema.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (s *memStore) AdjustBalance(_ context.Context, accountID string, delta decimal.Decimal) (*schema.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	next := account.Balance.Add(delta)
	if next.IsNegative() {
		return nil, domain.ErrInsufficientBalance
	}
	account.Balance = next
	s.accounts[accountID] = account
	return &account, nil
}

func (s *memStore) SettlePurchase(_ context.Context, input store.SettlePurchaseInput) (*store.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[input.AssetID]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	if asset.Status != domain.AssetStatusActive || asset.ImageURL == "" {
		return nil, domain.ErrAssetNotTradeable
	}
	if input.ExpectedOwnerID != nil && asset.OwnerID != *input.ExpectedOwnerID {
		return nil, domain.ErrOwnerChanged
	}
	if asset.OwnerID == input.BuyerID {
		return nil, domain.ErrAlreadyOwner
	}

	sellerID := asset.OwnerID
	buyer, okBuyer := s.accounts[input.BuyerID]
	seller, okSeller := s.accounts[sellerID]
	if !okBuyer || !okSeller {
		return nil, domain.ErrAccountNotFound
	}
	if buyer.Balance.LessThan(asset.Price) {
		return nil, domain.ErrInsufficientBalance
	}

	txn := schema.Transaction{
		ID:            ulid.Make().String(),
		Type:          domain.TransactionTypePurchase,
		FromAccountID: &sellerID,
		ToAccountID:   input.BuyerID,
		Price:         asset.Price,
		AssetID:       asset.ID,
		Timestamp:     time.Now().UTC(),
		Meta:          input.Meta,
	}

	buyer.Balance = buyer.Balance.Sub(asset.Price)
	seller.Balance = seller.Balance.Add(asset.Price)
	asset.OwnerID = input.BuyerID
	asset.Status = domain.AssetStatusInactive

	s.transactions[txn.ID] = txn
	s.accounts[buyer.ID] = buyer
	s.accounts[seller.ID] = seller
	s.assets[asset.ID] = asset

	return &store.Settlement{
		Transaction:   txn,
		Asset:         asset,
		SellerID:      sellerID,
		BuyerBalance:  buyer.Balance,
		SellerBalance: seller.Balance,
	}, nil
}

func (s *memStore) Ping(context.Context) error {
	return nil
}

func (s *memStore) counts() (assets, transactions int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets), len(s.transactions)
}

// memMedia keeps stored images in memory and can be told to fail
type memMedia struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failStore error
	failFetch error
}

func newMemMedia() *memMedia {
	return &memMedia{objects: map[string][]byte{}}
}

func (m *memMedia) Store(_ context.Context, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failStore != nil {
		return "", m.failStore
	}
	url := fmt.Sprintf("mem://media/%s.png", uuid.NewString())
	m.objects[url] = append([]byte(nil), data...)
	return url, nil
}

func (m *memMedia) Fetch(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failFetch != nil {
		return nil, m.failFetch
	}
	data, ok := m.objects[url]
	if !ok {
		return nil, errors.New("object not found")
	}
	return append([]byte(nil), data...), nil
}

func (m *memMedia) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return nil
}

func (m *memMedia) Name() string {
	return "memory"
}

func (m *memMedia) put(url string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[url] = data
}
