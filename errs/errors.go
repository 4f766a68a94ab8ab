// Package errs defines the sentinel errors shared by the keyframe packages.
//
// Callers match them with errors.Is; producers wrap them with fmt.Errorf and %w
// to attach the offending line, tag or track title.
package errs

import "errors"

// Malformed input. Ingestion of the affected track aborts; sibling tracks are unaffected.
var (
	ErrMalformedEntry          = errors.New("malformed keyframe entry")
	ErrUnrecognizedTitle       = errors.New("missing or unrecognized track title")
	ErrDuplicateGlobalSequence = errors.New("more than one global sequence id in the same track")
	ErrEntryCountMismatch      = errors.New("keyframe count does not match title count")
	ErrTangentWithoutEntry     = errors.New("tangent line without a preceding keyframe entry")
	ErrIncompleteTangents      = errors.New("tangents present on some keyframes but not all")
	ErrUnterminatedBlock       = errors.New("keyframe block is not terminated")
	ErrInvalidInterpolation    = errors.New("invalid interpolation type")
	ErrTruncatedChunk          = errors.New("track chunk is truncated")
	ErrUnknownChunkTag         = errors.New("unknown track chunk tag")
)

// Programming errors. Track mutators panic with a value wrapping ErrKindMismatch.
var (
	ErrKindMismatch    = errors.New("value kind mismatch")
	ErrTangentMismatch = errors.New("tangent data does not match keyframe data")
)

// Policy refusals and warning-class results.
var (
	// ErrGlobalSequenceLocked is returned when range deletion is refused on a global-sequence track.
	ErrGlobalSequenceLocked = errors.New("keyframe deletion blocked by a global sequence")
	// ErrTangentsDiscarded reports that a copy completed but tangent data had to be dropped.
	ErrTangentsDiscarded = errors.New("tangent data discarded to match copy source")
	// ErrUnknownGlobalSequence is returned when a resolver has no entry for an id or duration.
	ErrUnknownGlobalSequence = errors.New("unknown global sequence")
)

// Bundle errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid bundle header size")
	ErrInvalidMagicNumber = errors.New("invalid bundle magic number")
	ErrChecksumMismatch   = errors.New("bundle checksum mismatch")
	ErrDuplicateTrack     = errors.New("track already added to bundle")
	ErrTrackIDCollision   = errors.New("two tracks hash to the same track id")
	ErrCountMismatch      = errors.New("bundle entry count does not match header")
	ErrInvalidOwner       = errors.New("track owner must not be empty")
	ErrBundleFinished     = errors.New("bundle encoder already finished")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrTrackIDMismatch    = errors.New("track id does not match owner and title")
	ErrDecodedSizeLimit   = errors.New("declared payload size exceeds decode limit")
)
