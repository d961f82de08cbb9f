package server

import (
	"encoding/json"
	"net/http"

	restate "github.com/restatedev/sdk-go"
)

// manifestContentType is the content type Restate's control plane
// expects on a discovery response (SPEC_FULL.md §3.H/§6).
const manifestContentType = "application/vnd.restate.endpointmanifest.v1+json"

const (
	minProtocolVersion = 1
	maxProtocolVersion = 2
)

// manifest mirrors the Endpoint manifest schema (grounded on
// original_source/discovery/src/lib.rs's Endpoint/Service/Handler
// types) with the JSON-schema-description fields this endpoint never
// populates (input/output payload descriptions) omitted rather than
// emitted empty.
type manifest struct {
	MaxProtocolVersion int                `json:"maxProtocolVersion"`
	MinProtocolVersion int                `json:"minProtocolVersion"`
	ProtocolMode       string             `json:"protocolMode"`
	Services           []manifestService  `json:"services"`
}

type manifestService struct {
	Name     string            `json:"name"`
	Type     string            `json:"ty"`
	Handlers []manifestHandler `json:"handlers"`
}

type manifestHandler struct {
	Name string `json:"name"`
	Type string `json:"ty,omitempty"`
}

func (r *Restate) buildManifest() manifest {
	m := manifest{
		MaxProtocolVersion: maxProtocolVersion,
		MinProtocolVersion: minProtocolVersion,
		ProtocolMode:       "BIDI_STREAM",
		Services:           make([]manifestService, 0, len(r.order)),
	}
	for _, name := range r.order {
		def := r.services[name]
		svc := manifestService{Name: def.Name(), Type: def.Kind().String()}
		for _, h := range def.Handlers() {
			svc.Handlers = append(svc.Handlers, manifestHandler{
				Name: h.Name,
				Type: handlerType(def.Kind(), h.Kind),
			})
		}
		m.Services = append(m.Services, svc)
	}
	return m
}

// handlerType renders a handler's discovery "ty": unset for Service
// handlers (the schema asks for it to stay unset there), EXCLUSIVE/
// SHARED for VirtualObject, WORKFLOW/SHARED for Workflow.
func handlerType(kind restate.Kind, hk restate.HandlerKind) string {
	switch kind {
	case restate.KindVirtualObject:
		if hk == restate.HandlerShared {
			return "SHARED"
		}
		return "EXCLUSIVE"
	case restate.KindWorkflow:
		if hk == restate.HandlerShared {
			return "SHARED"
		}
		return "WORKFLOW"
	default:
		return ""
	}
}

func (r *Restate) serveDiscover(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", manifestContentType)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(r.buildManifest())
}
