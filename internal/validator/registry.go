package validator

import "gstbill/internal/validator/invoice"

// Registry maps rule keys to Validator implementations, keeping registration order.
type Registry struct {
	validators map[string]Validator
	order      []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// NewBuiltinRegistry returns a Registry holding every built-in bill rule.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, v := range invoice.RequiredFieldValidators() {
		r.Register(v)
	}
	for _, v := range invoice.FormatValidators() {
		r.Register(v)
	}
	for _, v := range invoice.CrossFieldValidators() {
		r.Register(v)
	}
	for _, v := range invoice.LogicalValidators() {
		r.Register(v)
	}
	return r
}

// Register adds a validator to the registry. Registering a key twice replaces it.
func (r *Registry) Register(v Validator) {
	if _, ok := r.validators[v.RuleKey()]; !ok {
		r.order = append(r.order, v.RuleKey())
	}
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.validators[k])
	}
	return out
}
