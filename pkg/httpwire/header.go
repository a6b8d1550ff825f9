package httpwire

import (
	"strconv"
	"strings"
)

// Header is an ordered multimap of canonical header name to a non-empty
// list of string values. It is parameterised by a Kind, which constrains
// which canonical names are accepted, and a strict flag, which controls
// whether unrecognized names are dropped or canonicalised and kept.
//
// A Header is not safe for concurrent use; like the parser that owns one,
// it follows a single-owner rule (see spec.md §5).
type Header struct {
	kind   HeaderKind
	strict bool

	order  []string
	values map[string][]string
}

// NewHeader creates an empty Header container for the given kind. Unknown
// kind values fall back to KindBoth, matching the registry's own fallback.
func NewHeader(kind HeaderKind, strict bool) *Header {
	switch kind {
	case KindClient, KindServer, KindBoth:
	default:
		kind = KindBoth
	}
	return &Header{
		kind:   kind,
		strict: strict,
		values: make(map[string][]string),
	}
}

// Kind reports the HeaderKind this container was constructed with.
func (h *Header) Kind() HeaderKind { return h.kind }

func (h *Header) canon(name string) (string, bool) {
	return canonicalize(name, allowedSet(h.kind), h.strict)
}

// Set replaces any existing values for name with the single value v. An
// empty value is a no-op, as is a name rejected by the kind/strict rules.
func (h *Header) Set(name, v string) {
	if v == "" {
		return
	}
	canon, ok := h.canon(name)
	if !ok {
		return
	}
	if _, exists := h.values[canon]; !exists {
		h.order = append(h.order, canon)
	}
	h.values[canon] = []string{v}
}

// SetAll replaces any existing values for name with the given values.
// Empty values are dropped; if vs ends up empty after filtering, this
// behaves like Set with an empty value (a no-op).
func (h *Header) SetAll(name string, vs []string) {
	filtered := make([]string, 0, len(vs))
	for _, v := range vs {
		if v != "" {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return
	}
	canon, ok := h.canon(name)
	if !ok {
		return
	}
	if _, exists := h.values[canon]; !exists {
		h.order = append(h.order, canon)
	}
	h.values[canon] = filtered
}

// Add appends v to name's value list if accepted and not already present.
// Empty values are a no-op. This is the set-valued "add_header" semantics
// of spec.md §4.2: adding the same value twice leaves one occurrence.
func (h *Header) Add(name, v string) {
	if v == "" {
		return
	}
	canon, ok := h.canon(name)
	if !ok {
		return
	}
	existing, present := h.values[canon]
	if !present {
		h.order = append(h.order, canon)
		h.values[canon] = []string{v}
		return
	}
	for _, have := range existing {
		if have == v {
			return
		}
	}
	h.values[canon] = append(existing, v)
}

// Get returns the stored values for name joined by ", ", or def if name is
// absent.
func (h *Header) Get(name, def string) string {
	vs, ok := h.GetAll(name)
	if !ok {
		return def
	}
	return strings.Join(vs, ", ")
}

// GetAll returns the raw value list for name and true, or nil and false if
// absent. Lookup is case-insensitive and ignores the strict flag (strict
// only governs insertion).
func (h *Header) GetAll(name string) ([]string, bool) {
	canon, ok := lookupCanonical(name)
	if !ok {
		return nil, false
	}
	vs, present := h.values[canon]
	return vs, present
}

// lookupCanonical resolves name to its canonical form for read-side
// lookups, without applying kind/strict filtering (a container should
// still answer Get/Contains for any canonical name it might hold).
func lookupCanonical(name string) (string, bool) {
	lower := strings.ToLower(name)
	if lower == "" {
		return "", false
	}
	if isXPrefixed(lower) {
		return capfirstDash(lower), true
	}
	if canon, ok := registry.byLowerName[lower]; ok {
		return canon, true
	}
	return capfirstDash(lower), true
}

// Pop removes name and returns its former values and true, or def/false if
// it was absent.
func (h *Header) Pop(name string, def []string) ([]string, bool) {
	canon, ok := lookupCanonical(name)
	if !ok {
		return def, false
	}
	vs, present := h.values[canon]
	if !present {
		return def, false
	}
	delete(h.values, canon)
	for i, n := range h.order {
		if n == canon {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return vs, true
}

// Contains reports whether name (in any case) has stored values.
func (h *Header) Contains(name string) bool {
	_, ok := h.GetAll(name)
	return ok
}

// Field is one (name, value) pair, as yielded by Header.Iter: one entry
// per stored value, not per name.
type Field struct {
	Name  string
	Value string
}

// Iter returns every (canonical name, value) pair in insertion order, one
// entry per value.
func (h *Header) Iter() []Field {
	fields := make([]Field, 0, h.Len())
	for _, name := range h.order {
		for _, v := range h.values[name] {
			fields = append(fields, Field{Name: name, Value: v})
		}
	}
	return fields
}

// Len returns the total number of values stored across all names.
func (h *Header) Len() int {
	n := 0
	for _, vs := range h.values {
		n += len(vs)
	}
	return n
}

// Update applies Set(name, value) for every pair, in order.
func (h *Header) Update(pairs []Field) {
	for _, f := range pairs {
		h.Set(f.Name, f.Value)
	}
}

// AsDict projects the container into a map of canonical name to
// comma-joined values, as the source's as_dict does.
func (h *Header) AsDict() map[string]string {
	out := make(map[string]string, len(h.values))
	for name, vs := range h.values {
		out[name] = strings.Join(vs, ", ")
	}
	return out
}

// groupOrder fixes the serialization bucket order: general, request,
// response, entity. Names whose group is GroupNone (x- extensions and
// non-strict passthroughs) are emitted last, in insertion order, since the
// source's _ordered() silently drops headers it can't bucket — we keep
// them instead so set() never silently vanishes from String().
var groupOrder = []Group{GroupGeneral, GroupRequest, GroupResponse, GroupEntity, GroupNone}

// String serializes the container in registry-group order (general,
// request, response, entity), each name's values joined by ", ", as
// "Name: v1, v2\r\n" lines, followed by the blank-line terminator pair
// spec.md §4.2 describes.
func (h *Header) String() string {
	var b strings.Builder
	buckets := make(map[Group][]string, len(groupOrder))
	for _, name := range h.order {
		g := groupOf(name)
		buckets[g] = append(buckets[g], name)
	}
	for _, g := range groupOrder {
		for _, name := range buckets[g] {
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(strings.Join(h.values[name], ", "))
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\r\n")
	return b.String()
}

// Flat renders the full "status line + headers" byte representation:
// "HTTP/major.minor status\r\n" followed by String()'s serialized block,
// encoded as latin-1 per the default wire charset (see charset.go).
func (h *Header) Flat(major, minor int, status string) ([]byte, error) {
	head := httpVersionLine(major, minor, status) + h.String()
	return EncodeLatin1(head)
}

func httpVersionLine(major, minor int, status string) string {
	var b strings.Builder
	b.WriteString("HTTP/")
	b.WriteString(strconv.Itoa(major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(minor))
	b.WriteByte(' ')
	b.WriteString(status)
	b.WriteString("\r\n")
	return b.String()
}
