package format

import "strings"

type (
	ValueKind       uint8
	Interpolation   uint8
	CompressionType uint8
)

const (
	KindScalar     ValueKind = 0x1 // KindScalar represents a single float value (Alpha, Visibility, Intensity, ...).
	KindVector3    ValueKind = 0x2 // KindVector3 represents a 3-component vector (Translation, Scaling, Color).
	KindQuaternion ValueKind = 0x3 // KindQuaternion represents a rotation quaternion.
	KindIntegerID  ValueKind = 0x4 // KindIntegerID represents a discrete integer index (TextureID).

	DontInterp Interpolation = 0 // DontInterp holds the previous keyframe value.
	Linear     Interpolation = 1 // Linear blends keyframes linearly (spherically for quaternions).
	Hermite    Interpolation = 2 // Hermite blends keyframes with cubic Hermite tangents.
	Bezier     Interpolation = 3 // Bezier blends keyframes with cubic Bezier control points.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// KindForTitle classifies an animated attribute name into the value kind its keyframes carry.
//
// The classification is fixed:
//   - "Scaling", "Translation": KindVector3
//   - "Rotation": KindQuaternion
//   - "TextureID": KindIntegerID
//   - any title containing "Color" (Color, AmbColor): KindVector3
//   - everything else (Alpha, Visibility, Intensity, ...): KindScalar
func KindForTitle(title string) ValueKind {
	switch title {
	case "Scaling", "Translation":
		return KindVector3
	case "Rotation":
		return KindQuaternion
	case "TextureID":
		return KindIntegerID
	}

	if strings.Contains(title, "Color") {
		return KindVector3
	}

	return KindScalar
}

// Components returns the number of float components a value of this kind holds.
// KindIntegerID reports 1.
func (k ValueKind) Components() int {
	switch k {
	case KindVector3:
		return 3
	case KindQuaternion:
		return 4
	default:
		return 1
	}
}

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindVector3:
		return "Vector3"
	case KindQuaternion:
		return "Quaternion"
	case KindIntegerID:
		return "IntegerID"
	default:
		return "Unknown"
	}
}

// IsValid reports whether the interpolation value is one of the four known modes.
func (i Interpolation) IsValid() bool {
	return i <= Bezier
}

// IsCurved reports whether the mode uses per-keyframe tangents.
func (i Interpolation) IsCurved() bool {
	return i == Hermite || i == Bezier
}

// String returns the tag used for the mode in textual keyframe blocks.
func (i Interpolation) String() string {
	switch i {
	case DontInterp:
		return "DontInterp"
	case Linear:
		return "Linear"
	case Hermite:
		return "Hermite"
	case Bezier:
		return "Bezier"
	default:
		return "Unknown"
	}
}

// ParseInterpolation maps a textual tag to its interpolation mode.
// The second result is false when the tag does not name a mode.
func ParseInterpolation(tag string) (Interpolation, bool) {
	switch tag {
	case "DontInterp":
		return DontInterp, true
	case "Linear":
		return Linear, true
	case "Hermite":
		return Hermite, true
	case "Bezier":
		return Bezier, true
	default:
		return DontInterp, false
	}
}

// ParseCompression maps a config name (none, zstd, s2, lz4) to a compression type.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionNone, false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
