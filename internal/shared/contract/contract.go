// Package contract names every operation exposed at the boundary together
// with its route and the closed set of error codes it may raise. The tables
// are what callers can exhaustively switch on.
package contract

// Operation binds one handler to its route and declared error set.
type Operation struct {
	Name   string   `json:"name"`
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Auth   string   `json:"auth"` // "public", "optional" or "required"
	Errors []string `json:"errors"`
}

// Registry accumulates the operation tables of every domain.
type Registry struct {
	ops []Operation
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(ops ...Operation) {
	r.ops = append(r.ops, ops...)
}

// Operations returns the registered operations in registration order.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, len(r.ops))
	copy(out, r.ops)
	return out
}

// Lookup finds an operation by name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	for _, op := range r.ops {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
