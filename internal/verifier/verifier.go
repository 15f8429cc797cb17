package verifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/claim"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
	"github.com/stegavault/stegavault/internal/stego"
	"github.com/stegavault/stegavault/internal/store"
)

const DefaultFetchTimeout = 10 * time.Second

// Source names where a mismatch was detected
const (
	SourceLedger   = "ledger"
	SourceEmbedded = "embedded"
)

// Result is the outcome of an ownership verification
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
	// Field is the mismatching claim field, empty when valid or when the claim is missing
	Field string `json:"field,omitempty"`
	// Source is where the mismatch was found
	Source        string                 `json:"source,omitempty"`
	EmbeddedClaim *domain.OwnershipClaim `json:"embedded_claim,omitempty"`
}

// Verifier cross-checks the ledger against the claim embedded in an asset image
//
//go:generate mockgen -source=verifier.go -destination=../mocks/verifier.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// Verify checks that claimedOwner owns the asset according to both the ledger and the image
	Verify(ctx context.Context, assetID, claimedOwner string) (*Result, error)
}

type verifier struct {
	store        store.Store
	codec        claim.Codec
	channel      stego.Channel
	media        mediaprovider.Provider
	fetchTimeout time.Duration
}

// NewVerifier creates a new ownership verifier
func NewVerifier(st store.Store, codec claim.Codec, channel stego.Channel, media mediaprovider.Provider, fetchTimeout time.Duration) Verifier {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &verifier{
		store:        st,
		codec:        codec,
		channel:      channel,
		media:        media,
		fetchTimeout: fetchTimeout,
	}
}

// Verify checks that claimedOwner owns the asset according to both the ledger and the image.
// Only a missing asset is an error, every other disagreement is reported in the result.
func (v *verifier) Verify(ctx context.Context, assetID, claimedOwner string) (*Result, error) {
	if assetID == "" {
		return nil, domain.Validationf("asset id is required")
	}
	if claimedOwner == "" {
		return nil, domain.Validationf("owner is required")
	}

	asset, err := v.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if claimedOwner != asset.OwnerID {
		return &Result{
			Valid:  false,
			Reason: domain.REASON_CLAIMED_OWNER_MISMATCH,
			Field:  "owner",
			Source: SourceLedger,
		}, nil
	}

	embedded, ok := v.extractClaim(ctx, asset.ID, asset.ImageURL)
	if !ok {
		return &Result{Valid: false, Reason: domain.REASON_EMBEDDED_MISSING, Source: SourceEmbedded}, nil
	}

	if embedded.Owner != asset.OwnerID {
		return &Result{
			Valid:         false,
			Reason:        domain.REASON_EMBEDDED_OWNER_MISMATCH,
			Field:         "owner",
			Source:        SourceEmbedded,
			EmbeddedClaim: embedded,
		}, nil
	}
	if embedded.AssetID != assetID {
		return &Result{
			Valid:         false,
			Reason:        domain.REASON_EMBEDDED_ASSET_MISMATCH,
			Field:         "asset_id",
			Source:        SourceEmbedded,
			EmbeddedClaim: embedded,
		}, nil
	}

	return &Result{Valid: true, Reason: domain.REASON_VERIFIED, EmbeddedClaim: embedded}, nil
}

// extractClaim fetches the image and decodes its embedded claim.
// Fetch failures, timeouts and unverifiable tokens are all reported as absent.
func (v *verifier) extractClaim(ctx context.Context, assetID, imageURL string) (*domain.OwnershipClaim, bool) {
	if imageURL == "" {
		return nil, false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, v.fetchTimeout)
	defer cancel()

	data, err := v.media.Fetch(fetchCtx, imageURL)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch asset image for verification",
			zap.String("assetID", assetID),
			zap.String("imageURL", imageURL),
			zap.Error(err))
		return nil, false
	}

	token, found, err := v.channel.ExtractBytes(data)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to decode asset image for verification",
			zap.String("assetID", assetID),
			zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	embedded, err := v.codec.Decode(token)
	if err != nil {
		logger.WarnCtx(ctx, "Embedded claim did not verify",
			zap.String("assetID", assetID),
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err))
		return nil, false
	}

	return embedded, true
}
