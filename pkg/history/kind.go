package history

// Kind tags the type of edit a record describes.
type Kind int

const (
	KindInvalid Kind = iota
	KindModification
	KindNodeMoved
	KindNodeAdded
	KindNodeRemoved
	KindNodeRenamed
	KindNodeTransformed
	KindNodePaletteChanged
	KindNodeKeyFramesChanged
	KindNodePropertiesChanged
	KindPaletteChanged
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{
	KindModification,
	KindNodeMoved,
	KindNodeAdded,
	KindNodeRemoved,
	KindNodeRenamed,
	KindNodeTransformed,
	KindNodePaletteChanged,
	KindNodeKeyFramesChanged,
	KindNodePropertiesChanged,
	KindPaletteChanged,
}

func (k Kind) String() string {
	switch k {
	case KindModification:
		return "Modification"
	case KindNodeMoved:
		return "SceneNodeMove"
	case KindNodeAdded:
		return "SceneNodeAdded"
	case KindNodeRemoved:
		return "SceneNodeRemoved"
	case KindNodeRenamed:
		return "SceneNodeRenamed"
	case KindNodeTransformed:
		return "SceneNodeTransform"
	case KindNodePaletteChanged:
		return "SceneNodePaletteChanged"
	case KindNodeKeyFramesChanged:
		return "SceneNodeKeyFrames"
	case KindNodePropertiesChanged:
		return "SceneNodeProperties"
	case KindPaletteChanged:
		return "PaletteChanged"
	default:
		return "Invalid"
	}
}

// carriesVolume reports whether records of this kind hold voxel data.
func (k Kind) carriesVolume() bool {
	switch k {
	case KindModification, KindNodeAdded, KindNodeRemoved, KindNodePaletteChanged:
		return true
	}
	return false
}
