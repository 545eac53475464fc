package kinchain

import (
	"github.com/armatics/armkin/spatialmath"
)

// Chain is the ordered sequence of links from base to tool. The order is
// fixed at construction and the chain is immutable afterwards, so a single
// Chain may be shared by any number of concurrent evaluations without
// coordination.
type Chain struct {
	name  string
	links []*Link
}

// NewChain constructs a chain from links ordered root to tip. Joint names
// must be unique within the chain and at least one link is required.
func NewChain(name string, links []*Link) (*Chain, error) {
	if len(links) == 0 {
		return nil, &ValidationError{Reason: "chain must have at least one link"}
	}
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		jointName := link.joint.Name()
		if seen[jointName] {
			return nil, &ValidationError{Joint: jointName, Reason: "duplicate joint name in chain"}
		}
		seen[jointName] = true
	}
	held := make([]*Link, len(links))
	copy(held, links)
	return &Chain{name: name, links: held}, nil
}

// Name returns the name of the chain's model.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of links in the chain.
func (c *Chain) Len() int {
	return len(c.links)
}

// Link returns the link at the given root-to-tip index.
func (c *Chain) Link(i int) *Link {
	return c.links[i]
}

// Links returns the links in root-to-tip order.
func (c *Chain) Links() []*Link {
	links := make([]*Link, len(c.links))
	copy(links, c.links)
	return links
}

// JointNames returns the joint names in root-to-tip order.
func (c *Chain) JointNames() []string {
	names := make([]string, 0, len(c.links))
	for _, link := range c.links {
		names = append(names, link.joint.Name())
	}
	return names
}

// DoF returns one Limit per link, describing the min and max value of each
// degree of freedom in root-to-tip order.
func (c *Chain) DoF() []Limit {
	limits := make([]Limit, 0, len(c.links))
	for _, link := range c.links {
		limits = append(limits, link.joint.Limit())
	}
	return limits
}

// Home returns the chain's home configuration, one input per link.
func (c *Chain) Home() []Input {
	home := make([]Input, 0, len(c.links))
	for _, link := range c.links {
		home = append(home, Input{link.joint.Home()})
	}
	return home
}

// Evaluate computes the pose of every link's frame relative to the base frame
// for the given configuration, in root-to-tip order. The input length must
// equal the chain length (else ShapeError), and every value must lie within
// its joint's limits (else LimitError); bounds are inclusive. Evaluation is
// pure computation holding no state between calls.
func (c *Chain) Evaluate(inputs []Input) ([]spatialmath.Pose, error) {
	return c.evaluate(inputs, true)
}

// EvaluateUnchecked is Evaluate without the joint limit checks: out-of-range
// values are simply extrapolated. Useful for search and optimization contexts
// that temporarily explore outside the limits. The input length is still
// required to match the chain length.
func (c *Chain) EvaluateUnchecked(inputs []Input) ([]spatialmath.Pose, error) {
	return c.evaluate(inputs, false)
}

// EvaluateHome evaluates the chain at its home configuration.
func (c *Chain) EvaluateHome() ([]spatialmath.Pose, error) {
	return c.Evaluate(c.Home())
}

func (c *Chain) evaluate(inputs []Input, checkLimits bool) ([]spatialmath.Pose, error) {
	if len(inputs) != len(c.links) {
		return nil, &ShapeError{Got: len(inputs), Want: len(c.links)}
	}
	if checkLimits {
		for i, link := range c.links {
			if err := link.joint.checkLimit(inputs[i].Value); err != nil {
				return nil, err
			}
		}
	}

	poses := make([]spatialmath.Pose, 0, len(c.links))
	// Start at ((1+0i+0j+0k)+(+0+0i+0j+0k)ϵ) and compose outwards from the
	// base. Each link applies its fixed offset first, then its joint motion;
	// this order is part of the evaluation contract and must not be swapped.
	composed := spatialmath.NewZeroPose()
	for i, link := range c.links {
		composed = spatialmath.Compose(composed, link.offset)
		composed = spatialmath.Compose(composed, link.joint.motion(inputs[i].Value))
		poses = append(poses, composed)
	}
	return poses, nil
}
