package restate

import "regexp"

// nameGrammar bounds every service and handler name accepted by Bind
// (spec.md's name-grammar validation supplement): letters, digits and
// underscores, not starting with a digit.
var nameGrammar = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidName reports whether name matches nameGrammar. The same grammar
// is applied to service and handler names, so a service name
// containing '.' or '-' is rejected just like a handler name.
func ValidName(name string) bool {
	return nameGrammar.MatchString(name)
}

// Kind distinguishes the three service flavors the protocol's
// discovery manifest describes.
type Kind int

const (
	KindService Kind = iota
	KindVirtualObject
	KindWorkflow
)

func (k Kind) String() string {
	switch k {
	case KindVirtualObject:
		return "VIRTUAL_OBJECT"
	case KindWorkflow:
		return "WORKFLOW"
	default:
		return "SERVICE"
	}
}

// HandlerKind distinguishes exclusive from shared handlers on a keyed
// service, controlling the concurrency the platform grants them.
type HandlerKind int

const (
	HandlerExclusive HandlerKind = iota
	HandlerShared
)

// HandlerDefinition pairs a name with its type-erased Handler and
// concurrency kind.
type HandlerDefinition struct {
	Name    string
	Kind    HandlerKind
	Handler Handler
}

// ServiceDefinition describes one bindable unit: a Service,
// VirtualObject or Workflow together with its handlers. It is built
// with NewService/NewObject/NewWorkflow and handed to a server's Bind.
type ServiceDefinition struct {
	name     string
	kind     Kind
	handlers []HandlerDefinition
}

// Name returns the service's discovery name.
func (s *ServiceDefinition) Name() string { return s.name }

// Kind returns the service's discovery kind.
func (s *ServiceDefinition) Kind() Kind { return s.kind }

// Handlers returns the service's handler definitions, in the order
// they were added.
func (s *ServiceDefinition) Handlers() []HandlerDefinition {
	return s.handlers
}

// NewService declares a stateless Service.
func NewService(name string) *ServiceDefinition {
	return &ServiceDefinition{name: name, kind: KindService}
}

// NewObject declares a VirtualObject, keyed state addressed by a
// caller-supplied key.
func NewObject(name string) *ServiceDefinition {
	return &ServiceDefinition{name: name, kind: KindVirtualObject}
}

// NewWorkflow declares a Workflow: a VirtualObject whose exclusive
// handler may run at most once per key.
func NewWorkflow(name string) *ServiceDefinition {
	return &ServiceDefinition{name: name, kind: KindWorkflow}
}

// sharedCapable is implemented by handlers built with
// NewObjectSharedHandler/NewWorkflowSharedHandler.
type sharedCapable interface {
	Shared() bool
}

// Handler adds a handler and returns the receiver, for chaining. Its
// concurrency kind is inferred from how it was constructed:
// NewObjectSharedHandler/NewWorkflowSharedHandler produce a shared
// handler, every other constructor an exclusive one.
func (s *ServiceDefinition) Handler(name string, h Handler) *ServiceDefinition {
	kind := HandlerExclusive
	if sc, ok := h.(sharedCapable); ok && sc.Shared() {
		kind = HandlerShared
	}
	s.handlers = append(s.handlers, HandlerDefinition{Name: name, Kind: kind, Handler: h})
	return s
}
