package m3u8

/*
 This file defines functions related to playlist parsing.
*/

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrExtM3UAbsent = errors.New("#EXTM3U absent")
var ErrVersionAbsent = errors.New("#EXT-X-VERSION absent")

// segmentMarker identifies a line as a transport-stream segment URI.
// Any other line between an EXTINF tag and its URI is skipped.
const segmentMarker = ".ts"

// DecodeMediaPlaylist parses a media playlist passed as a string.
// If the strict parameter is true, malformed numeric tag payloads are
// returned as errors. Otherwise they are collected as Warnings on the
// returned playlist and the previous value is kept.
func DecodeMediaPlaylist(text string, strict bool) (*MediaPlaylist, error) {
	buf := bytes.NewBufferString(text)
	return decodeMediaPlaylist(buf, strict)
}

// DecodeMediaPlaylistFrom parses a media playlist passed from an io.Reader.
// The strict parameter behaves as in DecodeMediaPlaylist.
func DecodeMediaPlaylistFrom(reader io.Reader, strict bool) (*MediaPlaylist, error) {
	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(reader)
	if err != nil {
		return nil, err
	}
	return decodeMediaPlaylist(buf, strict)
}

// Parse media playlist. Internal function.
func decodeMediaPlaylist(buf *bytes.Buffer, strict bool) (*MediaPlaylist, error) {
	var eof bool
	var line string
	var err error

	p := new(MediaPlaylist)
	state := new(decodingState)
	// The very first segment opens the first discontinuity group.
	state.discontinuityNext = true

	line, err = buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if trimLineEnd(line) != "#EXTM3U" {
		return nil, ErrExtM3UAbsent
	}
	eof = err == io.EOF

	for !eof {
		if line, err = buf.ReadString('\n'); err == io.EOF {
			eof = true
		} else if err != nil {
			break
		}
		line = trimLineEnd(line)
		if line == "" {
			continue
		}
		err = decodeLineOfMediaPlaylist(p, state, line, strict)
		if strict && err != nil {
			return nil, err
		}
	}

	if state.version == nil {
		return nil, ErrVersionAbsent
	}
	p.Version = *state.version
	return p, nil
}

// Parse one line of a media playlist. Tags are matched on substring
// content, first match wins, unrecognized lines are ignored.
func decodeLineOfMediaPlaylist(p *MediaPlaylist, state *decodingState, line string, strict bool) error {
	if state.scan == stateAwaitingURI {
		// Looking for the URI line announced by the last EXTINF tag.
		// Intervening tags (EXT-X-BYTERANGE, EXT-X-PROGRAM-DATE-TIME, ...)
		// are tolerated and skipped.
		if strings.Contains(line, segmentMarker) {
			p.appendSegment(state, MediaSegment{Duration: state.duration, URI: line})
			state.scan = stateScanning
		}
		return nil
	}

	switch {
	case strings.Contains(line, "EXT-X-TARGETDURATION"):
		secs, err := uintFromString(line[strings.LastIndex(line, ":")+1:])
		if err != nil {
			if strict {
				return fmt.Errorf("EXT-X-TARGETDURATION: %w", err)
			}
			p.Warnings = append(p.Warnings, fmt.Sprintf("EXT-X-TARGETDURATION: expecting digits, keeping %v: %q", p.TargetDuration, line))
			break
		}
		p.TargetDuration = time.Duration(secs) * time.Second
	case strings.Contains(line, "#EXT-X-VERSION:"):
		ver, err := strconv.ParseUint(tagPayload(line, "#EXT-X-VERSION:"), 10, 64)
		if err != nil {
			// A malformed version tag unsets any previously parsed
			// version, so decoding fails with ErrVersionAbsent at EOF.
			state.version = nil
			if strict {
				return fmt.Errorf("EXT-X-VERSION: %w", err)
			}
			p.Warnings = append(p.Warnings, fmt.Sprintf("EXT-X-VERSION: expecting an unsigned integer: %q", line))
			break
		}
		state.version = &ver
	case strings.Contains(line, "#EXTINF:"):
		payload, _, _ := strings.Cut(tagPayload(line, "#EXTINF:"), ",")
		secs, err := floatFromString(payload)
		if err != nil {
			if strict {
				return fmt.Errorf("EXTINF: %w", err)
			}
			p.Warnings = append(p.Warnings, fmt.Sprintf("EXTINF: expecting a decimal duration, keeping %v: %q", state.duration, line))
		} else {
			state.duration = durationFromSeconds(secs)
		}
		// The URI is expected on a following line even if the
		// duration payload did not parse.
		state.scan = stateAwaitingURI
	case strings.Contains(line, "#EXT-X-DISCONTINUITY"):
		state.discontinuityNext = true
	case strings.Contains(line, "#EXT-X-ENDLIST"):
		p.Ended = true
	}

	return nil
}

// appendSegment stores seg in the flat segment list and in its
// discontinuity group, opening a new group at a boundary.
func (p *MediaPlaylist) appendSegment(state *decodingState, seg MediaSegment) {
	p.Segments = append(p.Segments, seg)

	if len(p.Discontinuities) == 0 || state.discontinuityNext {
		p.Discontinuities = append(p.Discontinuities, DiscontinuityGroup{
			Duration: seg.Duration,
			Segments: []MediaSegment{seg},
		})
		state.discontinuityNext = false
		return
	}
	group := &p.Discontinuities[len(p.Discontinuities)-1]
	// Sum in whole milliseconds so repeated additions cannot pick up
	// sub-millisecond float residue.
	group.Duration = time.Duration(group.Duration.Milliseconds()+seg.Duration.Milliseconds()) * time.Millisecond
	group.Segments = append(group.Segments, seg)
}

// tagPayload returns the part of line after the first occurrence of tag.
func tagPayload(line, tag string) string {
	i := strings.Index(line, tag)
	if i < 0 {
		return line
	}
	return line[i+len(tag):]
}

// uintFromString strips everything but ASCII digits from s and parses
// the rest as an unsigned integer. Tolerates trailing annotations such
// as "20 (max)" but rejects payloads without any digits.
func uintFromString(s string) (uint64, error) {
	return strconv.ParseUint(keepChars(s, false), 10, 64)
}

// floatFromString strips everything but ASCII digits and '.' from s
// and parses the rest as a decimal number.
func floatFromString(s string) (float64, error) {
	return strconv.ParseFloat(keepChars(s, true), 64)
}

func keepChars(s string, keepDot bool) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (keepDot && r == '.') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// durationFromSeconds converts a decimal seconds value to a Duration
// rounded to whole milliseconds.
func durationFromSeconds(secs float64) time.Duration {
	return time.Duration(math.Round(secs*1000)) * time.Millisecond
}

// trimLineEnd removes a trailing `\n` or `\r\n` from a string.
func trimLineEnd(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
