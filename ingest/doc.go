// Package ingest normalizes keyframe data from its two source shapes into tracks.
//
// Binary model data arrives as Records whose payload type is one of the
// Component shapes; FromRecord turns any of them into a *track.Track and
// ToRecord projects a track back. Text model data arrives as keyframe blocks,
// read with ReadBlock or ReadAll and written with WriteBlock.
//
// A block that fails to parse reports an error wrapping one of the malformed
// input sentinels of package errs; other blocks in the same input are unaffected.
package ingest
