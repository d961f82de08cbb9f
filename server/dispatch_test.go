package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeInvokeRejectsUnknownService(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))

	req := httptest.NewRequest(http.MethodPost, "/invoke/Missing/call", strings.NewReader(""))
	req.SetPathValue("service", "Missing")
	req.SetPathValue("handler", "call")
	rec := httptest.NewRecorder()

	r.serveInvoke(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeInvokeRejectsUnknownHandler(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))

	req := httptest.NewRequest(http.MethodPost, "/invoke/Greeter/missing", strings.NewReader(""))
	req.SetPathValue("service", "Greeter")
	req.SetPathValue("handler", "missing")
	rec := httptest.NewRecorder()

	r.serveInvoke(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeInvokeRejectsUnsignedRequestWhenKeysConfigured(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))
	r.WithIdentityKeys(wellFormedTestKey(t))

	req := httptest.NewRequest(http.MethodPost, "/invoke/Greeter/call", strings.NewReader(""))
	req.SetPathValue("service", "Greeter")
	req.SetPathValue("handler", "call")
	rec := httptest.NewRecorder()

	r.serveInvoke(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
