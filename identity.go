package restate

// Request identity verification (SPEC_FULL.md's domain-stack wiring
// of golang-jwt/jwt/v5): every invocation request Restate sends can
// carry a signature over a keyed Ed25519 key pair the operator
// registered out of band; an endpoint configured with the matching
// public keys rejects anything it didn't sign.

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mr-tron/base58"
)

const identityKeyPrefix = "publickeyv1_"

// IdentityKeySet holds the Ed25519 public keys an endpoint accepts
// request signatures from. A request is valid if any configured key
// verifies it. A nil or empty KeySet accepts every request, matching
// an endpoint that was never given keys to check against.
type IdentityKeySet struct {
	keys []ed25519.PublicKey
}

// ParseIdentityKeySet decodes a set of "publickeyv1_..." keys, as
// passed to server.Restate.WithIdentityKeys.
func ParseIdentityKeySet(keys ...string) (*IdentityKeySet, error) {
	ks := &IdentityKeySet{keys: make([]ed25519.PublicKey, 0, len(keys))}
	for _, k := range keys {
		pub, err := parseIdentityKey(k)
		if err != nil {
			return nil, err
		}
		ks.keys = append(ks.keys, pub)
	}
	return ks, nil
}

func parseIdentityKey(key string) (ed25519.PublicKey, error) {
	rest, ok := strings.CutPrefix(key, identityKeyPrefix)
	if !ok {
		return nil, fmt.Errorf("restate: identity key %q is missing the %q prefix", key, identityKeyPrefix)
	}
	raw, err := base58.Decode(rest)
	if err != nil {
		return nil, fmt.Errorf("restate: decoding identity key %q: %w", key, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("restate: identity key %q has %d bytes, want %d", key, len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// identityClaims is the payload of the signature JWT: just enough to
// bind the signature to the specific request path it accompanies, so
// a captured signature can't be replayed against a different handler.
type identityClaims struct {
	jwt.RegisteredClaims
}

// Verify checks signature (the x-restate-signature header's value)
// against every configured key and confirms it was issued for path.
func (ks *IdentityKeySet) Verify(signature, path string) error {
	if ks == nil || len(ks.keys) == 0 {
		return nil
	}
	if signature == "" {
		return fmt.Errorf("restate: missing x-restate-signature header")
	}

	var lastErr error
	for _, key := range ks.keys {
		token, err := jwt.ParseWithClaims(signature, &identityClaims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
				return nil, fmt.Errorf("restate: unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil {
			lastErr = err
			continue
		}
		c, ok := token.Claims.(*identityClaims)
		if !ok || !token.Valid {
			lastErr = fmt.Errorf("restate: invalid token claims")
			continue
		}
		if c.Subject != path {
			lastErr = fmt.Errorf("restate: signature issued for path %q, got %q", c.Subject, path)
			continue
		}
		return nil
	}
	return fmt.Errorf("restate: no configured key verified the request: %w", lastErr)
}
