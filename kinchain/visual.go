package kinchain

// Primitive is one visual building block of a link: a box, cylinder, or
// similar shape with pose, dimensions, color, and material fields. The
// kinematic core stores primitives verbatim for rendering collaborators and
// never interprets them, so they are kept as raw decoded documents rather
// than a typed struct. Note that description files reuse the pos/axis fields
// differently per shape (anchor point vs. extrusion vector); that ambiguity
// is the renderer's to resolve.
type Primitive map[string]interface{}

// Kind returns the primitive's "type" field, or "" when absent.
func (p Primitive) Kind() string {
	kind, _ := p["type"].(string)
	return kind
}
