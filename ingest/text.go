package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/track"
)

const (
	globalSeqDirective = "GlobalSeqId"
	inTanPrefix        = "InTan"
	outTanPrefix       = "OutTan"
	commentPrefix      = "//"
)

// pendingEntry is a keyframe whose tangent lines may still follow.
type pendingEntry struct {
	time          int
	value         track.Value
	inTan, outTan track.Value
	hasIn, hasOut bool
}

// ReadBlock reads the next keyframe block from r and parses it.
//
// Blank lines and "//" comment lines before the header are skipped. The block
// ends at a line holding only "}". It returns io.EOF when r holds no further
// block and an error wrapping errs.ErrUnterminatedBlock when r ends inside one.
// A block that fails to parse is consumed entirely, so the next call starts at
// the following block.
func ReadBlock(r *bufio.Reader) (*track.Track, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		switch {
		case len(lines) == 0 && (trimmed == "" || strings.HasPrefix(trimmed, commentPrefix)):
		case trimmed == "}":
			return ParseBlock(append(lines, line))
		default:
			lines = append(lines, line)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if len(lines) == 0 {
				return nil, io.EOF
			}

			return nil, fmt.Errorf("%w: %q", errs.ErrUnterminatedBlock, strings.TrimSpace(lines[0]))
		}
	}
}

// ReadAll parses every keyframe block in r.
//
// Blocks that fail to parse are skipped and their errors joined into the
// returned error; the tracks of every other block are still returned.
func ReadAll(r io.Reader) ([]*track.Track, error) {
	br := bufio.NewReader(r)

	var (
		tracks  []*track.Track
		errList []error
	)
	for {
		t, err := ReadBlock(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.WithError(err).WithField("block", len(tracks)+len(errList)).Warn("skipping keyframe block")
			errList = append(errList, err)

			if errors.Is(err, errs.ErrUnterminatedBlock) {
				break
			}

			continue
		}

		tracks = append(tracks, t)
	}

	return tracks, errors.Join(errList...)
}

// ParseBlock parses one keyframe block given as lines, header first:
//
//	Translation 2 {
//		Hermite,
//		GlobalSeqId 0,
//		0: { 0, 0, 0 },
//			InTan { 0, 0, 0 },
//			OutTan { 0, 0, 0 },
//		...
//	}
//
// Body lines are flag tags, a single GlobalSeqId directive, "time: value"
// entries, and InTan/OutTan lines directly after an entry. Either every entry
// has both tangents or none has. Blank and "//" comment lines are ignored. The
// closing brace is optional here.
func ParseBlock(lines []string) (*track.Track, error) {
	if len(lines) == 0 {
		return nil, errs.ErrUnrecognizedTitle
	}

	title, count, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	kind := format.KindForTitle(title)
	tags := []string{}
	globalSeq, hasGlobalSeq := 0, false

	var (
		entries []pendingEntry
		current *pendingEntry
	)
	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for n, raw := range lines[1:] {
		line := strings.TrimSuffix(strings.TrimSpace(raw), ",")
		lineNo := n + 2

		switch {
		case line == "", strings.HasPrefix(line, commentPrefix):
			continue
		case line == "}":
			flush()
			continue

		case strings.HasPrefix(line, inTanPrefix), strings.HasPrefix(line, outTanPrefix):
			if current == nil {
				return nil, fmt.Errorf("%w: track %q line %d", errs.ErrTangentWithoutEntry, title, lineNo)
			}

			isIn := strings.HasPrefix(line, inTanPrefix)
			prefix := outTanPrefix
			if isIn {
				prefix = inTanPrefix
			}
			v, err := parseValue(kind, strings.TrimPrefix(line, prefix))
			if err != nil {
				return nil, fmt.Errorf("%w: track %q line %d: %v", errs.ErrMalformedEntry, title, lineNo, err)
			}

			if isIn {
				if current.hasIn || current.hasOut {
					return nil, fmt.Errorf("%w: track %q line %d: unexpected InTan", errs.ErrMalformedEntry, title, lineNo)
				}
				current.inTan, current.hasIn = v, true
			} else {
				if current.hasOut {
					return nil, fmt.Errorf("%w: track %q line %d: repeated OutTan", errs.ErrMalformedEntry, title, lineNo)
				}
				current.outTan, current.hasOut = v, true
			}

		case strings.Contains(line, ":"):
			flush()

			timeText, valueText, _ := strings.Cut(line, ":")
			time, err := strconv.Atoi(strings.TrimSpace(timeText))
			if err != nil {
				return nil, fmt.Errorf("%w: track %q line %d: bad time %q", errs.ErrMalformedEntry, title, lineNo, timeText)
			}
			v, err := parseValue(kind, valueText)
			if err != nil {
				return nil, fmt.Errorf("%w: track %q line %d: %v", errs.ErrMalformedEntry, title, lineNo, err)
			}
			current = &pendingEntry{time: time, value: v}

		case strings.HasPrefix(line, globalSeqDirective):
			if hasGlobalSeq {
				return nil, fmt.Errorf("%w: track %q line %d", errs.ErrDuplicateGlobalSequence, title, lineNo)
			}
			id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, globalSeqDirective)))
			if err != nil {
				return nil, fmt.Errorf("%w: track %q line %d: bad global sequence id", errs.ErrMalformedEntry, title, lineNo)
			}
			globalSeq, hasGlobalSeq = id, true

		default:
			flush()
			tags = append(tags, line)
		}
	}
	flush()

	if len(entries) != count {
		return nil, fmt.Errorf("%w: track %q declares %d, has %d", errs.ErrEntryCountMismatch, title, count, len(entries))
	}

	withTans := len(entries) > 0 && entries[0].hasIn
	for _, e := range entries {
		if e.hasIn != withTans || e.hasOut != withTans {
			return nil, fmt.Errorf("%w: track %q at time %d", errs.ErrIncompleteTangents, title, e.time)
		}
	}

	t := track.New(title)
	t.SetTags(tags)
	if hasGlobalSeq {
		t.SetGlobalSequenceID(globalSeq)
	}
	for _, e := range entries {
		if withTans {
			t.AddEntryWithTangents(e.time, e.value, e.inTan, e.outTan)
		} else {
			t.AddEntry(e.time, e.value)
		}
	}

	return t, nil
}

// parseHeader splits "Title N {" into its title and entry count.
func parseHeader(line string) (string, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[len(fields)-1] != "{" {
		return "", 0, fmt.Errorf("%w: %q", errs.ErrUnrecognizedTitle, strings.TrimSpace(line))
	}

	title := fields[0]
	if len(fields) != 3 {
		return "", 0, fmt.Errorf("%w: header %q needs a title and an entry count", errs.ErrMalformedEntry, strings.TrimSpace(line))
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return "", 0, fmt.Errorf("%w: header %q has a bad entry count", errs.ErrMalformedEntry, strings.TrimSpace(line))
	}

	return title, count, nil
}

// parseValue parses a scalar, an integer, or a braced component list.
func parseValue(kind format.ValueKind, text string) (track.Value, error) {
	text = strings.TrimSpace(text)

	switch kind {
	case format.KindScalar:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return track.Value{}, err
		}

		return track.Scalar(f), nil

	case format.KindIntegerID:
		id, err := strconv.Atoi(text)
		if err != nil {
			return track.Value{}, err
		}

		return track.IntegerID(id), nil
	}

	inner, ok := strings.CutPrefix(text, "{")
	if ok {
		inner, ok = strings.CutSuffix(inner, "}")
	}
	if !ok {
		return track.Value{}, fmt.Errorf("%s value %q is not braced", kind, text)
	}

	parts := strings.Split(inner, ",")
	if len(parts) != kind.Components() {
		return track.Value{}, fmt.Errorf("%s value %q has %d components", kind, text, len(parts))
	}

	comps := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return track.Value{}, err
		}
		comps[i] = f
	}

	if kind == format.KindVector3 {
		return track.Vector(comps[0], comps[1], comps[2]), nil
	}

	return track.Quaternion(comps[0], comps[1], comps[2], comps[3]), nil
}

// WriteBlock writes t as a keyframe block indented by depth tabs.
//
// The track is sorted first. Nothing is written for a track without keyframes.
func WriteBlock(w io.Writer, t *track.Track, depth int) error {
	if t.Len() == 0 {
		return nil
	}
	t.Sort()

	tabs := strings.Repeat("\t", depth)
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s %d {\n", tabs, t.Title(), t.Len())
	for _, tag := range t.Tags() {
		fmt.Fprintf(&b, "%s\t%s,\n", tabs, tag)
	}
	if id, ok := t.GlobalSequenceID(); ok {
		fmt.Fprintf(&b, "%s\t%s %d,\n", tabs, globalSeqDirective, id)
	}
	for e := range t.All() {
		fmt.Fprintf(&b, "%s\t%d: %s,\n", tabs, e.Time, e.Value)
		if e.HasTangents {
			fmt.Fprintf(&b, "%s\t\t%s %s,\n", tabs, inTanPrefix, e.InTan)
			fmt.Fprintf(&b, "%s\t\t%s %s,\n", tabs, outTanPrefix, e.OutTan)
		}
	}
	fmt.Fprintf(&b, "%s}\n", tabs)

	_, err := io.WriteString(w, b.String())

	return err
}
