package claim

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
)

// Codec turns ownership claims into signed tokens and back
//
//go:generate mockgen -source=codec.go -destination=../mocks/claim_codec.go -package=mocks -mock_names=Codec=MockClaimCodec
type Codec interface {
	// Encode signs the claim into a compact, non-expiring token
	Encode(c domain.OwnershipClaim) (string, error)
	// Decode verifies the token signature and returns the claim
	Decode(token string) (*domain.OwnershipClaim, error)
	// IssueIdentityToken signs a non-expiring identity token for an account
	IssueIdentityToken(accountID string) (string, error)
	// VerifyIdentityToken verifies an identity token and returns the account id
	VerifyIdentityToken(token string) (string, error)
}

// ownershipClaims is the JWT body of an ownership claim. It never carries exp.
type ownershipClaims struct {
	Owner         string `json:"owner"`
	AssetID       string `json:"asset_id"`
	TransactionID string `json:"tx_id"`
	Identity      string `json:"identity,omitempty"`
	jwt.RegisteredClaims
}

type identityClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

const identityKind = "identity"

type codec struct {
	secret []byte
	clock  adapter.Clock
	parser *jwt.Parser
}

// NewCodec creates a claim codec signing with the given process-wide secret
func NewCodec(secret string, clock adapter.Clock) (Codec, error) {
	if secret == "" {
		return nil, errors.New("claim signing secret is required")
	}

	return &codec{
		secret: []byte(secret),
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
		),
	}, nil
}

// Encode signs the claim into a compact, non-expiring token
func (c *codec) Encode(claim domain.OwnershipClaim) (string, error) {
	if claim.Owner == "" || claim.AssetID == "" || claim.TransactionID == "" {
		return "", domain.Validationf("claim requires owner, asset id and transaction id")
	}

	body := ownershipClaims{
		Owner:         claim.Owner,
		AssetID:       claim.AssetID,
		TransactionID: claim.TransactionID,
		Identity:      claim.Identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(c.clock.Now()),
		},
	}

	return c.sign(body)
}

// Decode verifies the token signature and returns the claim.
// The signature is checked against the raw signing input before any payload is parsed.
func (c *codec) Decode(token string) (*domain.OwnershipClaim, error) {
	if err := c.verifySignature(token); err != nil {
		return nil, err
	}

	var body ownershipClaims
	if _, err := c.parser.ParseWithClaims(token, &body, c.keyFunc); err != nil {
		return nil, domain.ErrClaimMalformed.Wrap(err)
	}

	if body.Owner == "" || body.AssetID == "" || body.TransactionID == "" {
		return nil, domain.ErrClaimMalformed.Wrap(errors.New("claim is missing required fields"))
	}

	return &domain.OwnershipClaim{
		Owner:         body.Owner,
		AssetID:       body.AssetID,
		TransactionID: body.TransactionID,
		Identity:      body.Identity,
	}, nil
}

// IssueIdentityToken signs a non-expiring identity token for an account
func (c *codec) IssueIdentityToken(accountID string) (string, error) {
	if accountID == "" {
		return "", domain.Validationf("account id is required")
	}

	return c.sign(identityClaims{
		Kind: identityKind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(c.clock.Now()),
		},
	})
}

// VerifyIdentityToken verifies an identity token and returns the account id
func (c *codec) VerifyIdentityToken(token string) (string, error) {
	if err := c.verifySignature(token); err != nil {
		return "", err
	}

	var body identityClaims
	if _, err := c.parser.ParseWithClaims(token, &body, c.keyFunc); err != nil {
		return "", domain.ErrClaimMalformed.Wrap(err)
	}
	if body.Kind != identityKind || body.Subject == "" {
		return "", domain.ErrClaimMalformed.Wrap(errors.New("not an identity token"))
	}

	return body.Subject, nil
}

func (c *codec) sign(claims jwt.Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", domain.NewError(domain.KindInternal, "failed to sign claim", err)
	}
	return token, nil
}

// verifySignature checks the HMAC over everything before the last dot.
// Only input without a signature segment is malformed, any other damage is an integrity failure.
func (c *codec) verifySignature(token string) error {
	dot := strings.LastIndexByte(token, '.')
	if dot <= 0 {
		return domain.ErrClaimMalformed.Wrap(errors.New("token has no signature segment"))
	}

	sig, err := c.parser.DecodeSegment(token[dot+1:])
	if err != nil {
		return domain.ErrClaimIntegrity.Wrap(err)
	}

	if err := jwt.SigningMethodHS256.Verify(token[:dot], sig, c.secret); err != nil {
		return domain.ErrClaimIntegrity.Wrap(err)
	}

	return nil
}

func (c *codec) keyFunc(_ *jwt.Token) (interface{}, error) {
	return c.secret, nil
}
