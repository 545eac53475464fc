// Package spatialmath defines the mathematical operations needed to describe
// and compose rigid transformations in 3D.
package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Pose represents a rigid transformation: the position and orientation of a
// frame relative to some parent frame. Poses are immutable values; operations
// on them always return new Poses.
type Pose interface {
	// Point returns the translation component in millimeters.
	Point() r3.Vector

	// Orientation returns the rotation component.
	Orientation() Orientation
}

// NewZeroPose returns a pose with no translation or orientation change.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := newDualQuaternionFromRotation(o)
	q.SetTranslation(p)
	return q
}

// NewPoseFromPoint takes a cartesian (x,y,z) and stores it as a translation.
// The pose will have the same orientation as the frame it is in reference to.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.SetTranslation(point)
	return q
}

// NewPoseFromOrientation takes an Orientation and returns a Pose with that
// orientation and no translation.
func NewPoseFromOrientation(o Orientation) Pose {
	if o == nil {
		return NewZeroPose()
	}
	return newDualQuaternionFromRotation(o)
}

// NewPoseFromAxisAngle takes a position and an R4 axis angle and returns a Pose.
func NewPoseFromAxisAngle(point r3.Vector, aa *R4AA) Pose {
	q := newDualQuaternionFromRotation(aa)
	q.SetTranslation(point)
	return q
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function
// C(x) = A(B(x)). It converts the poses to dual quaternions and multiplies
// them together, normalizing the result. The order of composition matters.
func Compose(a, b Pose) Pose {
	aq := dualQuaternionFromPose(a)
	return &dualQuaternion{aq.Transformation(dualQuaternionFromPose(b).Number)}
}

// PoseAlmostEqual will return a bool describing whether 2 poses are
// approximately the same, in both position and orientation.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostCoincident(a, b) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// PoseAlmostCoincident will return a bool describing whether 2 poses are at
// approximately the same 3D coordinate location, ignoring orientation.
func PoseAlmostCoincident(a, b Pose) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), 1e-8)
}
