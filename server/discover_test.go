package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	restate "github.com/restatedev/sdk-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerTypeForServiceIsUnset(t *testing.T) {
	assert.Equal(t, "", handlerType(restate.KindService, restate.HandlerExclusive))
	assert.Equal(t, "", handlerType(restate.KindService, restate.HandlerShared))
}

func TestHandlerTypeForVirtualObject(t *testing.T) {
	assert.Equal(t, "EXCLUSIVE", handlerType(restate.KindVirtualObject, restate.HandlerExclusive))
	assert.Equal(t, "SHARED", handlerType(restate.KindVirtualObject, restate.HandlerShared))
}

func TestHandlerTypeForWorkflow(t *testing.T) {
	assert.Equal(t, "WORKFLOW", handlerType(restate.KindWorkflow, restate.HandlerExclusive))
	assert.Equal(t, "SHARED", handlerType(restate.KindWorkflow, restate.HandlerShared))
}

func TestBuildManifestListsServicesInBindOrder(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Alpha"))
	r.Bind(echoService("Beta"))

	m := r.buildManifest()
	require.Len(t, m.Services, 2)
	assert.Equal(t, "Alpha", m.Services[0].Name)
	assert.Equal(t, "Beta", m.Services[1].Name)
	assert.Equal(t, "SERVICE", m.Services[0].Type)
	require.Len(t, m.Services[0].Handlers, 1)
	assert.Equal(t, "call", m.Services[0].Handlers[0].Name)
}

func TestServeDiscoverWritesManifestContentType(t *testing.T) {
	r := NewRestate()
	r.Bind(echoService("Greeter"))

	req := httptest.NewRequest(http.MethodGet, "/discover", nil)
	rec := httptest.NewRecorder()

	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, manifestContentType, rec.Header().Get("Content-Type"))

	var m manifest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	require.Len(t, m.Services, 1)
	assert.Equal(t, "Greeter", m.Services[0].Name)
	assert.Equal(t, maxProtocolVersion, m.MaxProtocolVersion)
	assert.Equal(t, minProtocolVersion, m.MinProtocolVersion)
}
