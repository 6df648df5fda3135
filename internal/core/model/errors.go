package model

import (
	"encoding/json"
	"errors"
	"sort"
)

// ErrMalformed is returned when a payload does not have the shape of the kind it claims.
var ErrMalformed = errors.New("malformed payload")

// Errors maps a field name to its ordered validation messages.
type Errors map[string][]string

// Add records message against field, ignoring exact repeats so that
// validation stays idempotent.
func (e *Errors) Add(field, message string) {
	if *e == nil {
		*e = make(Errors)
	}
	for _, existing := range (*e)[field] {
		if existing == message {
			return
		}
	}
	(*e)[field] = append((*e)[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string][]string(e))
}

// UnmarshalJSON discards errors sent by clients; only validation writes them.
func (e *Errors) UnmarshalJSON([]byte) error {
	*e = nil
	return nil
}

// Node is any element of an entity tree that carries its own errors.
type Node interface {
	ErrorMap() *Errors
	Children() []Child
}

// Child is a nested node addressed by its position in the parent,
// e.g. "cast[0]" or "material".
type Child struct {
	Path string
	Node Node
}

// HasErrors reports whether n or any node beneath it has errors.
func HasErrors(n Node) bool {
	if n.ErrorMap().Any() {
		return true
	}
	for _, c := range n.Children() {
		if HasErrors(c.Node) {
			return true
		}
	}
	return false
}

// Flatten collects every message in the tree keyed by an address such as
// "cast[0].roles[1].name".
func Flatten(n Node) map[string][]string {
	out := make(map[string][]string)
	flatten(n, "", out)
	return out
}

func flatten(n Node, prefix string, out map[string][]string) {
	errs := *n.ErrorMap()
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		out[join(prefix, f)] = append([]string(nil), errs[f]...)
	}
	for _, c := range n.Children() {
		flatten(c.Node, join(prefix, c.Path), out)
	}
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
