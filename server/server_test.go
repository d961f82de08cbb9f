package server

import (
	"crypto/ed25519"
	"testing"

	restate "github.com/restatedev/sdk-go"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoService(name string) *restate.ServiceDefinition {
	return restate.NewService(name).
		Handler("call", restate.NewServiceHandler(func(_ restate.Context, in restate.Void) (restate.Void, error) {
			return in, nil
		}))
}

func TestBindAcceptsValidService(t *testing.T) {
	r := NewRestate()
	assert.NotPanics(t, func() { r.Bind(echoService("Greeter")) })
}

func TestBindPanicsOnInvalidServiceName(t *testing.T) {
	r := NewRestate()
	assert.Panics(t, func() { r.Bind(echoService("1bad")) })
}

func TestBindPanicsOnInvalidHandlerName(t *testing.T) {
	r := NewRestate()
	def := restate.NewService("Greeter").
		Handler("bad-name", restate.NewServiceHandler(func(_ restate.Context, in restate.Void) (restate.Void, error) {
			return in, nil
		}))
	assert.Panics(t, func() { r.Bind(def) })
}

func TestBindPanicsOnDuplicateServiceName(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))
	assert.Panics(t, func() { r.Bind(echoService("Greeter")) })
}

func TestWithIdentityKeysPanicsOnMalformedKey(t *testing.T) {
	r := NewRestate()
	assert.Panics(t, func() { r.WithIdentityKeys("not-a-valid-key") })
}

func wellFormedTestKey(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return "publickeyv1_" + base58.Encode(pub)
}

func TestWithIdentityKeysAcceptsWellFormedKey(t *testing.T) {
	r := NewRestate()
	assert.NotPanics(t, func() { r.WithIdentityKeys(wellFormedTestKey(t)) })
}

func TestHandlerServesDiscoverRoute(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))

	h := r.Handler()
	assert.NotNil(t, h)
}
