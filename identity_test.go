package restate

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mr-tron/base58"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signRequest(t *testing.T, priv ed25519.PrivateKey, path string) string {
	t.Helper()
	claims := identityClaims{jwt.RegisteredClaims{
		Subject:   path,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
	require.NoError(t, err)
	return tok
}

func newIdentityKeyPair(t *testing.T) (ed25519.PrivateKey, string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return priv, identityKeyPrefix + base58.Encode(pub)
}

func TestIdentityKeySetAcceptsValidSignature(t *testing.T) {
	priv, encodedPub := newIdentityKeyPair(t)
	ks, err := ParseIdentityKeySet(encodedPub)
	require.NoError(t, err)

	sig := signRequest(t, priv, "/invoke/Foo/bar")
	assert.NoError(t, ks.Verify(sig, "/invoke/Foo/bar"))
}

func TestIdentityKeySetRejectsPathMismatch(t *testing.T) {
	priv, encodedPub := newIdentityKeyPair(t)
	ks, err := ParseIdentityKeySet(encodedPub)
	require.NoError(t, err)

	sig := signRequest(t, priv, "/invoke/Foo/bar")
	assert.Error(t, ks.Verify(sig, "/invoke/Other/baz"))
}

func TestIdentityKeySetRejectsUnsignedRequest(t *testing.T) {
	_, encodedPub := newIdentityKeyPair(t)
	ks, err := ParseIdentityKeySet(encodedPub)
	require.NoError(t, err)

	assert.Error(t, ks.Verify("", "/invoke/Foo/bar"))
}

func TestIdentityKeySetRejectsSignatureFromUnknownKey(t *testing.T) {
	priv, _ := newIdentityKeyPair(t)
	_, otherPub := newIdentityKeyPair(t)
	ks, err := ParseIdentityKeySet(otherPub)
	require.NoError(t, err)

	sig := signRequest(t, priv, "/invoke/Foo/bar")
	assert.Error(t, ks.Verify(sig, "/invoke/Foo/bar"))
}

func TestNilIdentityKeySetAcceptsEverything(t *testing.T) {
	var ks *IdentityKeySet
	assert.NoError(t, ks.Verify("", "/anything"))
}

func TestParseIdentityKeyRejectsMissingPrefix(t *testing.T) {
	_, err := ParseIdentityKeySet("not-a-valid-key")
	assert.Error(t, err)
}

func TestParseIdentityKeyRejectsWrongLength(t *testing.T) {
	_, err := ParseIdentityKeySet(identityKeyPrefix + base58.Encode([]byte("too-short")))
	assert.Error(t, err)
}
