package scene

import (
	"maps"
	"slices"
	"sort"

	"github.com/deadsy/sdfx/sdf"
)

// NodeID identifies a node in the scene graph.
type NodeID int

// InvalidNodeID means "no node". A root node has it as its parent.
const InvalidNodeID NodeID = -1

// Valid reports whether the id refers to a node.
func (id NodeID) Valid() bool {
	return id != InvalidNodeID
}

// NodeType enumerates the scene-graph node kinds.
type NodeType int

const (
	NodeTypeRoot NodeType = iota
	NodeTypeModel
	NodeTypeModelReference
	NodeTypeGroup
	NodeTypeCamera
	NodeTypePoint
	NodeTypeUnknown
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeRoot:
		return "root"
	case NodeTypeModel:
		return "model"
	case NodeTypeModelReference:
		return "modelreference"
	case NodeTypeGroup:
		return "group"
	case NodeTypeCamera:
		return "camera"
	case NodeTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// KeyFrameIndex is the frame number a keyframe sits on.
type KeyFrameIndex int

// InvalidKeyFrame means "no keyframe".
const InvalidKeyFrame KeyFrameIndex = -1

// Interpolation selects how a keyframe blends into the next one.
type Interpolation int

const (
	InterpolationInstant Interpolation = iota
	InterpolationLinear
	InterpolationQuadEaseIn
	InterpolationQuadEaseOut
	InterpolationCatmullRom
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationInstant:
		return "instant"
	case InterpolationLinear:
		return "linear"
	case InterpolationQuadEaseIn:
		return "quadeasein"
	case InterpolationQuadEaseOut:
		return "quadeaseout"
	case InterpolationCatmullRom:
		return "catmullrom"
	default:
		return "unknown"
	}
}

// KeyFrame is one animation key: a frame index and the node's local
// transform at that frame.
type KeyFrame struct {
	FrameIdx      KeyFrameIndex `json:"frame"`
	Interpolation Interpolation `json:"interpolation"`
	LongRotation  bool          `json:"long_rotation"`
	LocalMatrix   sdf.M44       `json:"-"`
}

// NewKeyFrame returns a linear keyframe at the frame with an identity transform.
func NewKeyFrame(frame KeyFrameIndex) KeyFrame {
	return KeyFrame{FrameIdx: frame, Interpolation: InterpolationLinear, LocalMatrix: sdf.Identity3d()}
}

// KeyFrames maps an animation name to its keyframes, ordered by frame.
// A nil map means "not captured"; an empty map is a valid, empty set.
type KeyFrames map[string][]KeyFrame

// Clone deep-copies the map. Nil stays nil.
func (k KeyFrames) Clone() KeyFrames {
	if k == nil {
		return nil
	}
	out := make(KeyFrames, len(k))
	for anim, frames := range k {
		out[anim] = slices.Clone(frames)
	}
	return out
}

// Animations returns the animation names in sorted order.
func (k KeyFrames) Animations() []string {
	names := make([]string, 0, len(k))
	for anim := range k {
		names = append(names, anim)
	}
	sort.Strings(names)
	return names
}

// Find returns the first keyframe on the given frame, scanning animations
// in sorted name order.
func (k KeyFrames) Find(frame KeyFrameIndex) (KeyFrame, bool) {
	for _, anim := range k.Animations() {
		for _, f := range k[anim] {
			if f.FrameIdx == frame {
				return f, true
			}
		}
	}
	return KeyFrame{}, false
}

// Properties holds free-form string properties of a node.
// A nil map means "not captured"; an empty map is a valid, empty set.
type Properties map[string]string

// Clone copies the map. Nil stays nil.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}
