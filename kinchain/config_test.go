package kinchain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armatics/armkin/spatialmath"
)

func TestLoadModelFiles(t *testing.T) {
	logger := golog.NewTestLogger(t)

	sixaxis, err := Load(filepath.Join("testdata", "sixaxis.yaml"), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sixaxis.Name(), test.ShouldEqual, "vx640")
	test.That(t, sixaxis.Len(), test.ShouldEqual, 6)
	test.That(t, sixaxis.JointNames(), test.ShouldResemble,
		[]string{"waist", "shoulder", "elbow", "forearm", "wrist", "flange"})
	test.That(t, sixaxis.DoF()[0], test.ShouldResemble, Limit{Min: -180, Max: 180})

	// Visual payload rides along uninterpreted.
	base := sixaxis.Link(0)
	test.That(t, base.Primitives(), test.ShouldHaveLength, 2)
	test.That(t, base.Primitives()[0].Kind(), test.ShouldEqual, "cylinder")
	test.That(t, base.Primitives()[1].Kind(), test.ShouldEqual, "box")
	test.That(t, base.Mesh(), test.ShouldEqual, "meshes/base.tri")
	test.That(t, sixaxis.Link(3).Primitives(), test.ShouldHaveLength, 0)

	scara, err := Load(filepath.Join("testdata", "scara.yaml"), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scara.Len(), test.ShouldEqual, 4)
	test.That(t, scara.Link(2).Joint().Type(), test.ShouldEqual, Prismatic)
	// The quill's axis points down and is stored normalized.
	test.That(t, scara.Link(2).Joint().Axis().Z, test.ShouldAlmostEqual, -1, 1e-8)
}

func TestYAMLAndJSONAgree(t *testing.T) {
	logger := golog.NewTestLogger(t)

	fromYAML, err := Load(filepath.Join("testdata", "sixaxis.yaml"), logger)
	test.That(t, err, test.ShouldBeNil)
	fromJSON, err := Load(filepath.Join("testdata", "sixaxis.json"), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, fromJSON.JointNames(), test.ShouldResemble, fromYAML.JointNames())
	test.That(t, fromJSON.DoF(), test.ShouldResemble, fromYAML.DoF())

	yamlPoses, err := fromYAML.EvaluateHome()
	test.That(t, err, test.ShouldBeNil)
	jsonPoses, err := fromJSON.EvaluateHome()
	test.That(t, err, test.ShouldBeNil)
	for i := range yamlPoses {
		test.That(t, spatialmath.PoseAlmostEqual(jsonPoses[i], yamlPoses[i]), test.ShouldBeTrue)
	}
}

func TestModelNameOverride(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sixaxis.yaml"))
	test.That(t, err, test.ShouldBeNil)

	chain, err := UnmarshalChainYAML(data, "renamed")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.Name(), test.ShouldEqual, "renamed")
}

const validLink = `
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`

func TestSchemaErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"empty data", ""},
		{"not yaml", "links: ["},
		{"missing joint block", `
links:
  - offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"missing offset block", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
`},
		{"unrecognized joint type", `
links:
  - joint:
      name: swivel
      type: helical
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"axis arity", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"limits arity", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 0, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"missing home", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"missing joint name", `
links:
  - joint:
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"translation arity", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`},
		{"rotation arity", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0]
      Rformat: quaternion
`},
		{"unrecognized rotation format", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: euler
`},
		{"missing rotation format", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalChainYAML([]byte(tc.yaml), "")
			test.That(t, err, test.ShouldNotBeNil)
			var schemaErr *SchemaError
			test.That(t, errors.As(err, &schemaErr), test.ShouldBeTrue)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		yaml  string
		joint string
	}{
		{"no links", "name: empty\nlinks: []\n", ""},
		{"zero axis", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 0]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`, "swivel"},
		{"inverted limits", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [90, -90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`, "swivel"},
		{"home out of range", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 120
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`, "swivel"},
		{"non-unit rotation", `
links:
  - joint:
      name: swivel
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [2, 0, 0, 0]
      Rformat: quaternion
`, "swivel"},
		{"duplicate joint names", "links:" + validLink + validLink, "swivel"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalChainYAML([]byte(tc.yaml), "")
			test.That(t, err, test.ShouldNotBeNil)
			var valErr *ValidationError
			test.That(t, errors.As(err, &valErr), test.ShouldBeTrue)
			test.That(t, valErr.Joint, test.ShouldEqual, tc.joint)
		})
	}
}

func TestValidationGathersAllLinks(t *testing.T) {
	// Two independently invalid links are both reported in one pass.
	badModel := `
links:
  - joint:
      name: one
      type: revolute
      axis: [0, 0, 0]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
  - joint:
      name: two
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 200
    offset:
      T: [0, 0, 100]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`
	_, err := UnmarshalChainYAML([]byte(badModel), "")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"one"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"two"`)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	test.That(t, os.WriteFile(path, []byte("name: x\n"), 0o600), test.ShouldBeNil)

	_, err := Load(path, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	var schemaErr *SchemaError
	test.That(t, errors.As(err, &schemaErr), test.ShouldBeTrue)
}

func TestOffsetRotationApplied(t *testing.T) {
	// A 90 degree offset rotation about X carries the child's +Z translation
	// onto the -Y axis.
	model := `
links:
  - joint:
      name: bend
      type: revolute
      axis: [0, 0, 1]
      limits: [-90, 90]
      home: 0
    offset:
      T: [0, 0, 0]
      R: [0.7071067811865476, 0.7071067811865475, 0, 0]
      Rformat: quaternion
  - joint:
      name: slide
      type: prismatic
      axis: [0, 0, 1]
      limits: [0, 100]
      home: 0
    offset:
      T: [0, 0, 10]
      R: [1, 0, 0, 0]
      Rformat: quaternion
`
	chain, err := UnmarshalChainYAML([]byte(model), "")
	test.That(t, err, test.ShouldBeNil)

	poses, err := chain.EvaluateHome()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[1].Point(), r3.Vector{Y: -10}, 1e-6), test.ShouldBeTrue)
}
