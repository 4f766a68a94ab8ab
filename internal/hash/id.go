// Package hash derives stable identifiers and checksums with xxHash64.
package hash

import "github.com/cespare/xxhash/v2"

// trackIDSeparator cannot appear in a track title, so "a"+"bc" and "ab"+"c" differ.
const trackIDSeparator = "\x00"

// TrackID identifies the track with the given title owned by owner, e.g. a bone
// or geoset name. The same pair always yields the same id.
func TrackID(owner, title string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(owner)
	_, _ = d.WriteString(trackIDSeparator)
	_, _ = d.WriteString(title)

	return d.Sum64()
}

// Checksum returns the xxHash64 digest of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
