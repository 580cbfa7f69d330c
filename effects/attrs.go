package effects

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Attr is a single caller-supplied debug property.
type Attr struct {
	Key   string
	Value any
}

// Attrs is an ordered list of debug properties attached to an effect.
// Insertion order is preserved for deterministic inspection; entries are
// never merged, so the full list stays visible, but lookups resolve to the
// latest entry for a key (explicit caller overrides shadow earlier entries).
type Attrs struct {
	list []Attr
}

func NewAttrs(attrs ...Attr) *Attrs {
	return &Attrs{list: append([]Attr(nil), attrs...)}
}

func (a *Attrs) Len() int { return len(a.list) }

// Get returns the value for key, scanning from the latest entry.
func (a *Attrs) Get(key string) (any, bool) {
	for i := len(a.list) - 1; i >= 0; i-- {
		if a.list[i].Key == key {
			return a.list[i].Value, true
		}
	}
	return nil, false
}

func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// All returns a copy of the entries in insertion order.
func (a *Attrs) All() []Attr {
	return append([]Attr(nil), a.list...)
}

// Fingerprint hashes the properties into a compact correlation key for logs.
// Equal property lists always hash equal.
func (a *Attrs) Fingerprint() uint64 {
	d := xxhash.New()
	for _, kv := range a.list {
		d.WriteString(kv.Key)
		d.WriteString("=")
		d.WriteString(fmt.Sprint(kv.Value))
		d.WriteString("\n")
	}
	return d.Sum64()
}

// Fields renders the properties as zap fields, in insertion order.
func (a *Attrs) Fields() []zap.Field {
	fields := make([]zap.Field, 0, len(a.list))
	for _, kv := range a.list {
		fields = append(fields, zap.Any(kv.Key, kv.Value))
	}
	return fields
}

func (a *Attrs) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, kv := range a.list {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", kv.Key, kv.Value)
	}
	sb.WriteString("}")
	return sb.String()
}
