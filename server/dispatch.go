package server

import (
	"fmt"
	"io"
	"net/http"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/internal/state"

	"golang.org/x/sync/errgroup"
)

// flushWriter makes an http.ResponseWriter behave like the io.Writer
// half of the bidirectional stream wire.Protocol expects: every Write
// is pushed to the client immediately rather than buffered behind
// net/http's own response buffering, which the wire protocol's framing
// depends on (a reply must reach the caller before the next frame is
// read, not after the handler returns).
type flushWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err != nil {
		return n, err
	}
	if fw.f != nil {
		fw.f.Flush()
	}
	return n, nil
}

// stream pairs the request body and the flush-on-write response
// writer into the io.ReadWriter Protocol is built over.
type stream struct {
	io.Reader
	io.Writer
}

func (r *Restate) serveInvoke(w http.ResponseWriter, req *http.Request) {
	service := req.PathValue("service")
	handlerName := req.PathValue("handler")

	def, ok := r.services[service]
	if !ok {
		http.Error(w, fmt.Sprintf("server: unknown service %q", service), http.StatusNotFound)
		return
	}

	var handler restate.Handler
	for _, h := range def.Handlers() {
		if h.Name == handlerName {
			handler = h.Handler
			break
		}
	}
	if handler == nil {
		http.Error(w, fmt.Sprintf("server: unknown handler %q on service %q", handlerName, service), http.StatusNotFound)
		return
	}

	if err := r.keys.Verify(req.Header.Get("x-restate-signature"), req.URL.Path); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.restate.invocation.v1")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	conn := stream{Reader: req.Body, Writer: flushWriter{w: w, f: flusher}}

	g, ctx := errgroup.WithContext(req.Context())
	g.Go(func() error {
		m := state.NewMachine(handler, conn)
		return m.Start(ctx, service+"/"+handlerName)
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		// the connection is already committed to a 200 response by this
		// point; a failed invocation ends the stream, it can't flip the
		// status code.
		_ = err
	}
}
