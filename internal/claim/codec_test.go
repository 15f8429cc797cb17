package claim_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/claim"
	"github.com/stegavault/stegavault/internal/domain"
)

func newTestCodec(t *testing.T, secret string) claim.Codec {
	c, err := claim.NewCodec(secret, adapter.NewClock())
	require.NoError(t, err)
	return c
}

func testClaim() domain.OwnershipClaim {
	return domain.OwnershipClaim{
		Owner:         "8a3c7f0e-2b6d-4c1f-9e0a-5d7b3e2f1a90",
		AssetID:       "01JAZ3Y4M8Q2V6N0R5T7W9X1B3",
		TransactionID: "01JAZ3Y4MB0C8E2G4J6L8N0P2R",
	}
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := claim.NewCodec("", adapter.NewClock())
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")

	t.Run("claim without identity", func(t *testing.T) {
		in := testClaim()
		token, err := codec.Encode(in)
		require.NoError(t, err)

		out, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, in, *out)
	})

	t.Run("claim with identity token", func(t *testing.T) {
		in := testClaim()
		identity, err := codec.IssueIdentityToken(in.Owner)
		require.NoError(t, err)
		in.Identity = identity

		token, err := codec.Encode(in)
		require.NoError(t, err)

		out, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, in, *out)

		accountID, err := codec.VerifyIdentityToken(out.Identity)
		require.NoError(t, err)
		assert.Equal(t, in.Owner, accountID)
	})

	t.Run("re-encoding yields a verifiable token", func(t *testing.T) {
		in := testClaim()
		first, err := codec.Encode(in)
		require.NoError(t, err)
		second, err := codec.Encode(in)
		require.NoError(t, err)

		// Tokens carry a random id, so bytes differ while both verify
		assert.NotEqual(t, first, second)
		for _, token := range []string{first, second} {
			out, err := codec.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, in, *out)
		}
	})
}

func TestCodec_Encode_RequiresFields(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")

	in := testClaim()
	in.TransactionID = ""
	_, err := codec.Encode(in)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCodec_Decode_TamperDetection(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")
	token, err := codec.Encode(testClaim())
	require.NoError(t, err)

	raw := []byte(token)
	for i := range raw {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, len(raw))
			copy(tampered, raw)
			tampered[i] ^= 1 << bit

			_, err := codec.Decode(string(tampered))
			require.Errorf(t, err, "flipping bit %d of byte %d was not detected", bit, i)
			require.Truef(t, errors.Is(err, domain.ErrClaimIntegrity),
				"flipping bit %d of byte %d: expected integrity error, got %v", bit, i, err)
		}
	}
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	token, err := newTestCodec(t, "claim-secret").Encode(testClaim())
	require.NoError(t, err)

	_, err = newTestCodec(t, "another-secret").Decode(token)
	require.Error(t, err)
	assert.Equal(t, domain.KindIntegrity, domain.KindOf(err))
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")
	valid, err := codec.Encode(testClaim())
	require.NoError(t, err)
	_ = strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a token", token: "hello world"},
		{name: "leading dot only", token: ".abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrClaimMalformed), "got %v", err)
		})
	}
}

func TestCodec_Decode_StructuralDamageIsIntegrity(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")
	valid, err := codec.Encode(testClaim())
	require.NoError(t, err)
	parts := strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "two segments", token: parts[0] + "." + parts[1]},
		{name: "four segments", token: valid + ".extra"},
		{name: "empty signature", token: parts[0] + "." + parts[1] + "."},
		{name: "dots merged", token: parts[0] + parts[1] + "." + parts[2]},
		{name: "extra dot in payload", token: parts[0] + "." + parts[1][:4] + "." + parts[1][4:] + "." + parts[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrClaimIntegrity), "got %v", err)
		})
	}
}

func TestCodec_Decode_IdentityTokenIsNotAClaim(t *testing.T) {
	codec := newTestCodec(t, "claim-secret")
	identity, err := codec.IssueIdentityToken("account-1")
	require.NoError(t, err)

	_, err = codec.Decode(identity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrClaimMalformed))

	claimToken, err := codec.Encode(testClaim())
	require.NoError(t, err)
	_, err = codec.VerifyIdentityToken(claimToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrClaimMalformed))
}
