package kinchain

import (
	"github.com/armatics/armkin/spatialmath"
)

// Link is a rigid body between two joints. Each link exclusively owns one
// joint and one fixed offset: the offset is the rigid transform from the
// previous frame to this link's frame, applied before the joint's own motion.
// A link may also carry visual payload for a rendering collaborator; that
// payload plays no part in kinematics.
type Link struct {
	joint      *Joint
	offset     spatialmath.Pose
	primitives []Primitive
	mesh       string
}

// NewLink creates a link from a joint and a fixed offset pose.
func NewLink(joint *Joint, offset spatialmath.Pose) (*Link, error) {
	return NewLinkWithVisuals(joint, offset, nil, "")
}

// NewLinkWithVisuals creates a link that additionally carries visual
// primitives and/or an external mesh reference, both stored uninterpreted.
func NewLinkWithVisuals(joint *Joint, offset spatialmath.Pose, primitives []Primitive, mesh string) (*Link, error) {
	if joint == nil {
		return nil, newSchemaErrorf("link is missing a joint")
	}
	if offset == nil {
		return nil, newSchemaErrorf("link is missing an offset")
	}
	prims := make([]Primitive, len(primitives))
	copy(prims, primitives)
	return &Link{joint: joint, offset: offset, primitives: prims, mesh: mesh}, nil
}

// Joint returns the link's joint.
func (l *Link) Joint() *Joint {
	return l.joint
}

// Offset returns the fixed transform from the previous frame to this link's
// frame.
func (l *Link) Offset() spatialmath.Pose {
	return l.offset
}

// Primitives returns the link's visual primitives, if any.
func (l *Link) Primitives() []Primitive {
	prims := make([]Primitive, len(l.primitives))
	copy(prims, l.primitives)
	return prims
}

// Mesh returns the filename of the link's detailed triangle mesh, or "" when
// the link has none. The file is never opened here; resolving it is the
// renderer's job.
func (l *Link) Mesh() string {
	return l.mesh
}
