// Package server implements SPEC_FULL.md's Endpoint/Dispatch module
// (§4.H): a handler registry served over cleartext HTTP/2 (h2c),
// exposing the discovery manifest at GET /discover and one invocation
// route per bound service.
package server

import (
	"fmt"
	"net/http"

	restate "github.com/restatedev/sdk-go"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Restate is an endpoint under construction: a registry of bound
// services plus the identity keys requests are checked against.
type Restate struct {
	services map[string]*restate.ServiceDefinition
	order    []string
	keys     *restate.IdentityKeySet
}

// NewRestate constructs an empty endpoint.
func NewRestate() *Restate {
	return &Restate{services: map[string]*restate.ServiceDefinition{}}
}

// Bind registers a ServiceDefinition, validating its name and every
// handler name against the protocol's naming grammar at registration
// time rather than at request time (SPEC_FULL.md's validation-at-build
// supplement).
func (r *Restate) Bind(def *restate.ServiceDefinition) *Restate {
	if !restate.ValidName(def.Name()) {
		panic(fmt.Sprintf("server: invalid service name %q", def.Name()))
	}
	for _, h := range def.Handlers() {
		if !restate.ValidName(h.Name) {
			panic(fmt.Sprintf("server: invalid handler name %q on service %q", h.Name, def.Name()))
		}
	}
	if _, dup := r.services[def.Name()]; dup {
		panic(fmt.Sprintf("server: service %q bound twice", def.Name()))
	}
	r.services[def.Name()] = def
	r.order = append(r.order, def.Name())
	return r
}

// WithIdentityKeys configures the Ed25519 public keys ("publickeyv1_..."
// format) that signed invocation requests are checked against. Without
// this, any caller that can reach the endpoint's port is trusted.
func (r *Restate) WithIdentityKeys(keys ...string) *Restate {
	ks, err := restate.ParseIdentityKeySet(keys...)
	if err != nil {
		panic(err)
	}
	r.keys = ks
	return r
}

// Handler returns the endpoint as a plain http.Handler, for embedding
// in a caller-owned server rather than Listen's own h2c listener.
func (r *Restate) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /discover", r.serveDiscover)
	mux.HandleFunc("POST /invoke/{service}/{handler}", r.serveInvoke)
	mux.HandleFunc("POST /invoke/{service}/{key}/{handler}", r.serveInvoke)
	return mux
}

// Listen serves the endpoint over cleartext HTTP/2 (h2c) at addr,
// blocking until the listener fails. This is the concrete transport
// SPEC_FULL.md's Endpoint component needs, even though the wire
// protocol's framing is transport-agnostic.
func (r *Restate) Listen(addr string) error {
	h2s := &http2.Server{}
	srv := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(r.Handler(), h2s),
	}
	return srv.ListenAndServe()
}
