package aspen

// AttributeKind identifies the shape of a shader attribute value.
// There is no implicit coercion between shapes: a renderer asking for a
// vec2 under a name bound to a float gets nothing.
type AttributeKind uint8

const (
	AttributeFloat AttributeKind = iota
	AttributeVec2
	AttributeVec3
	AttributeVec4
)

// AttributeValue is a tagged union over the four float-vector shapes.
// Only the first Kind-many components of V are meaningful.
type AttributeValue struct {
	Kind AttributeKind
	V    [4]float64
}

// Float wraps a scalar attribute value.
func Float(x float64) AttributeValue {
	return AttributeValue{Kind: AttributeFloat, V: [4]float64{x}}
}

// Vec2Value wraps a two-component attribute value.
func Vec2Value(x, y float64) AttributeValue {
	return AttributeValue{Kind: AttributeVec2, V: [4]float64{x, y}}
}

// Vec3Value wraps a three-component attribute value.
func Vec3Value(x, y, z float64) AttributeValue {
	return AttributeValue{Kind: AttributeVec3, V: [4]float64{x, y, z}}
}

// Vec4Value wraps a four-component attribute value.
func Vec4Value(x, y, z, w float64) AttributeValue {
	return AttributeValue{Kind: AttributeVec4, V: [4]float64{x, y, z, w}}
}

type attributeEntry struct {
	name  string
	value AttributeValue
}

// AttributeTable is an ordered name → value mapping of shader attributes.
// Insertion order is preserved so iteration (and anything derived from it)
// is deterministic.
type AttributeTable struct {
	entries []attributeEntry
}

// NewAttributeTable creates an empty attribute table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{}
}

// Set binds name to value, replacing an existing binding in place (order is
// kept) or appending a new one.
func (t *AttributeTable) Set(name string, value AttributeValue) {
	for i := range t.entries {
		if t.entries[i].name == name {
			t.entries[i].value = value
			return
		}
	}
	t.entries = append(t.entries, attributeEntry{name: name, value: value})
}

// Lookup returns the value bound to name. ok is false when the name is
// unbound.
func (t *AttributeTable) Lookup(name string) (value AttributeValue, ok bool) {
	for i := range t.entries {
		if t.entries[i].name == name {
			return t.entries[i].value, true
		}
	}
	return AttributeValue{}, false
}

// Delete removes the binding for name, if present.
func (t *AttributeTable) Delete(name string) {
	for i := range t.entries {
		if t.entries[i].name == name {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of bindings.
func (t *AttributeTable) Len() int {
	return len(t.entries)
}

// Each calls fn for every binding in insertion order.
func (t *AttributeTable) Each(fn func(name string, value AttributeValue)) {
	for i := range t.entries {
		fn(t.entries[i].name, t.entries[i].value)
	}
}
