// Package kinchain models a serial kinematic chain: an ordered sequence of
// links, each carrying one joint and one fixed offset transform, loaded from a
// declarative description and evaluated with forward kinematics.
package kinchain

import (
	"github.com/golang/geo/r3"

	"github.com/armatics/armkin/spatialmath"
	"github.com/armatics/armkin/utils"
)

// JointType distinguishes the supported kinds of joint. The set is closed;
// anything else in a description is a SchemaError.
type JointType string

const (
	// Revolute joints rotate about their axis; values are in degrees.
	Revolute = JointType("revolute")

	// Prismatic joints translate along their axis; values are in mm.
	Prismatic = JointType("prismatic")
)

// Limit represents the limits of motion for a joint.
type Limit struct {
	Min float64
	Max float64
}

// Joint is a single degree of freedom connecting two rigid links. Joints are
// immutable after construction.
type Joint struct {
	name  string
	jtype JointType
	axis  r3.Vector
	limit Limit
	home  float64
}

// NewJoint creates a joint of the given type. The axis is normalized on
// construction and must be non-zero; limits must be ordered and must contain
// the home value.
func NewJoint(name string, jtype JointType, axis r3.Vector, limit Limit, home float64) (*Joint, error) {
	switch jtype {
	case Revolute, Prismatic:
	default:
		return nil, newSchemaErrorf("joint %q: unrecognized type %q", name, string(jtype))
	}
	if spatialmath.R3VectorAlmostEqual(r3.Vector{}, axis, 1e-8) {
		return nil, &ValidationError{Joint: name, Reason: "cannot use zero vector as joint axis"}
	}
	if limit.Min > limit.Max {
		return nil, &ValidationError{Joint: name, Reason: "limit min is greater than max"}
	}
	if home < limit.Min || home > limit.Max {
		return nil, &ValidationError{Joint: name, Reason: "home position is outside the joint limits"}
	}
	return &Joint{name: name, jtype: jtype, axis: axis.Normalize(), limit: limit, home: home}, nil
}

// Name returns the name of the joint, unique within its chain.
func (j *Joint) Name() string {
	return j.name
}

// Type returns the kind of joint.
func (j *Joint) Type() JointType {
	return j.jtype
}

// Axis returns the unit motion axis in the joint's local frame.
func (j *Joint) Axis() r3.Vector {
	return j.axis
}

// Limit returns the min and max values the joint accepts, in degrees for
// revolute joints and mm for prismatic ones.
func (j *Joint) Limit() Limit {
	return j.limit
}

// Home returns the joint's default value.
func (j *Joint) Home() float64 {
	return j.home
}

// motion returns the pose produced by setting the joint to the given value: a
// rotation about the axis for revolute joints, a translation along the axis
// for prismatic ones. A zero value is the identity pose for both kinds.
func (j *Joint) motion(value float64) spatialmath.Pose {
	if j.jtype == Prismatic {
		return spatialmath.NewPoseFromPoint(j.axis.Mul(value))
	}
	return spatialmath.NewPoseFromAxisAngle(r3.Vector{}, &spatialmath.R4AA{
		Theta: utils.DegToRad(value),
		RX:    j.axis.X,
		RY:    j.axis.Y,
		RZ:    j.axis.Z,
	})
}

// checkLimit returns a LimitError if the value lies outside the joint's
// declared range. Values exactly at either bound are accepted.
func (j *Joint) checkLimit(value float64) error {
	if value < j.limit.Min || value > j.limit.Max {
		return &LimitError{Joint: j.name, Value: value, Limit: j.limit}
	}
	return nil
}
