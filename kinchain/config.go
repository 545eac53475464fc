package kinchain

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"

	"github.com/armatics/armkin/spatialmath"
)

// rotationFormatQuaternion is the only offset rotation encoding currently
// written by description files. Anything else is rejected as a SchemaError so
// that a future encoding fails loudly instead of being misread.
const rotationFormatQuaternion = "quaternion"

// unitNormTolerance bounds how far an offset rotation quaternion may drift
// from unit norm before the model is rejected rather than renormalized.
const unitNormTolerance = 1e-3

// ChainConfig represents all supported fields in a kinematic description
// file: a model name and its link entries in root-to-tip order.
type ChainConfig struct {
	Name  string       `json:"name" yaml:"name"`
	Links []LinkConfig `json:"links" yaml:"links"`
}

// LinkConfig is one link entry. Joint and offset are required; primitives and
// triangles are optional visual payload stored verbatim for a renderer.
type LinkConfig struct {
	Joint      *JointConfig  `json:"joint" yaml:"joint"`
	Offset     *OffsetConfig `json:"offset" yaml:"offset"`
	Primitives []Primitive   `json:"primitives,omitempty" yaml:"primitives,omitempty"`
	Triangles  string        `json:"triangles,omitempty" yaml:"triangles,omitempty"`
}

// JointConfig describes one joint: its unique name, its type ("revolute" or
// "prismatic"), a 3-element motion axis in the joint's local frame, ordered
// [min, max] limits, and a home value inside them. Angular fields are in
// degrees, linear fields in mm.
type JointConfig struct {
	Name   string    `json:"name" yaml:"name"`
	Type   string    `json:"type" yaml:"type"`
	Axis   []float64 `json:"axis" yaml:"axis"`
	Limits []float64 `json:"limits" yaml:"limits"`
	Home   *float64  `json:"home" yaml:"home"`
}

// OffsetConfig is the fixed rigid transform from the previous frame to this
// link's frame: a 3-element translation T in mm and a rotation R in the
// encoding named by Rformat, currently always a (w, x, y, z) quaternion.
type OffsetConfig struct {
	T       []float64 `json:"T" yaml:"T"`
	R       []float64 `json:"R" yaml:"R"`
	RFormat string    `json:"Rformat" yaml:"Rformat"`
}

// Load reads the description file at the given path and parses it into a
// Chain, dispatching on the file extension (.json, .yaml, .yml). The file is
// read exactly once, at load; mesh references and primitives inside it are
// retained untouched and never opened here.
func Load(path string, logger golog.Logger) (*Chain, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model file")
	}

	var chain *Chain
	switch ext := filepath.Ext(path); ext {
	case ".json":
		chain, err = UnmarshalChainJSON(data, "")
	case ".yaml", ".yml":
		chain, err = UnmarshalChainYAML(data, "")
	default:
		return nil, newSchemaErrorf("unsupported model file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load model from %q", path)
	}

	if logger != nil {
		logger.Debugw("loaded kinematic model",
			"path", path,
			"model", chain.Name(),
			"links", chain.Len(),
		)
	}
	return chain, nil
}

// UnmarshalChainJSON parses the given JSON data into a Chain. modelName sets
// the name of the model, falling back to the name in the data when empty.
func UnmarshalChainJSON(jsonData []byte, modelName string) (*Chain, error) {
	if len(jsonData) == 0 {
		return nil, newSchemaErrorf("no model data")
	}
	cfg := &ChainConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, &SchemaError{Reason: errors.Wrap(err, "failed to unmarshal json model").Error()}
	}
	return cfg.ParseConfig(modelName)
}

// UnmarshalChainYAML parses the given YAML data into a Chain. modelName sets
// the name of the model, falling back to the name in the data when empty.
func UnmarshalChainYAML(yamlData []byte, modelName string) (*Chain, error) {
	if len(yamlData) == 0 {
		return nil, newSchemaErrorf("no model data")
	}
	cfg := &ChainConfig{}
	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return nil, &SchemaError{Reason: errors.Wrap(err, "failed to unmarshal yaml model").Error()}
	}
	return cfg.ParseConfig(modelName)
}

// ParseConfig converts the ChainConfig into a validated, immutable Chain with
// the name modelName. Schema problems fail immediately; validation problems
// across links are gathered so one load reports everything wrong with the
// model.
func (cfg *ChainConfig) ParseConfig(modelName string) (*Chain, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	if len(cfg.Links) == 0 {
		return nil, &ValidationError{Reason: "model must have at least one link"}
	}

	links := make([]*Link, 0, len(cfg.Links))
	var invalid error
	for i, lc := range cfg.Links {
		link, err := lc.parseLink(i)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				multierr.AppendInto(&invalid, err)
				continue
			}
			return nil, err
		}
		links = append(links, link)
	}
	if invalid != nil {
		return nil, invalid
	}

	return NewChain(modelName, links)
}

func (lc *LinkConfig) parseLink(idx int) (*Link, error) {
	if lc.Joint == nil {
		return nil, newSchemaErrorf("link %d: missing joint block", idx)
	}
	if lc.Offset == nil {
		return nil, newSchemaErrorf("link %d: missing offset block", idx)
	}
	joint, err := lc.Joint.parseJoint()
	if err != nil {
		return nil, err
	}
	offset, err := lc.Offset.parsePose(joint.Name())
	if err != nil {
		return nil, err
	}
	return NewLinkWithVisuals(joint, offset, lc.Primitives, lc.Triangles)
}

func (jc *JointConfig) parseJoint() (*Joint, error) {
	if jc.Name == "" {
		return nil, newSchemaErrorf("joint is missing a name")
	}
	if len(jc.Axis) != 3 {
		return nil, newSchemaErrorf("joint %q: axis must have 3 elements, got %d", jc.Name, len(jc.Axis))
	}
	if len(jc.Limits) != 2 {
		return nil, newSchemaErrorf("joint %q: limits must have 2 elements, got %d", jc.Name, len(jc.Limits))
	}
	if jc.Home == nil {
		return nil, newSchemaErrorf("joint %q: missing home position", jc.Name)
	}
	return NewJoint(
		jc.Name,
		JointType(jc.Type),
		r3.Vector{X: jc.Axis[0], Y: jc.Axis[1], Z: jc.Axis[2]},
		Limit{Min: jc.Limits[0], Max: jc.Limits[1]},
		*jc.Home,
	)
}

func (oc *OffsetConfig) parsePose(jointName string) (spatialmath.Pose, error) {
	if len(oc.T) != 3 {
		return nil, newSchemaErrorf("joint %q offset: T must have 3 elements, got %d", jointName, len(oc.T))
	}
	if oc.RFormat != rotationFormatQuaternion {
		return nil, newSchemaErrorf("joint %q offset: unrecognized rotation format %q", jointName, oc.RFormat)
	}
	if len(oc.R) != 4 {
		return nil, newSchemaErrorf("joint %q offset: quaternion R must have 4 elements (w, x, y, z), got %d", jointName, len(oc.R))
	}

	q := quat.Number{Real: oc.R[0], Imag: oc.R[1], Jmag: oc.R[2], Kmag: oc.R[3]}
	if math.Abs(quat.Abs(q)-1) > unitNormTolerance {
		return nil, &ValidationError{Joint: jointName, Reason: "offset rotation is not a unit quaternion"}
	}

	return spatialmath.NewPose(
		r3.Vector{X: oc.T[0], Y: oc.T[1], Z: oc.T[2]},
		spatialmath.NewOrientationFromQuaternion(q),
	), nil
}
