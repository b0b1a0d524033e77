package m3u8

/*
 This file defines data structures related to package.
*/

import (
	"time"
)

// MediaPlaylist is the parsed form of a single-bitrate (media) playlist.
// It is built once by DecodeMediaPlaylist and not modified afterwards.
// URI lines in the playlist point to media segments.
type MediaPlaylist struct {
	TargetDuration  time.Duration        // EXT-X-TARGETDURATION. Whole seconds, max duration of any segment.
	Version         uint64               // EXT-X-VERSION. Mandatory, decoding fails without it.
	Segments        []MediaSegment       // Segments in playlist order. May be empty.
	Discontinuities []DiscontinuityGroup // Segments grouped by EXT-X-DISCONTINUITY boundaries.
	Ended           bool                 // EXT-X-ENDLIST was seen.
	Warnings        []string             // Soft diagnostics collected in lenient mode.
}

// MediaSegment represents one media segment of a media playlist.
type MediaSegment struct {
	Duration time.Duration // EXTINF first parameter, millisecond resolution.
	URI      string        // URI line following the EXTINF tag, verbatim.
}

// DiscontinuityGroup is a contiguous run of segments between two
// EXT-X-DISCONTINUITY boundaries (or between playlist start/end and
// the nearest boundary).
type DiscontinuityGroup struct {
	Duration time.Duration  // Sum of member segment durations, accumulated in whole milliseconds.
	Segments []MediaSegment // Members in playlist order. Copies of the flat Segments entries.
}

// scanState tells the decoder what the next line is expected to be.
type scanState uint

const (
	stateScanning    scanState = iota // dispatch lines on tag content
	stateAwaitingURI                  // EXTINF seen, looking for the segment URI line
)

// Internal structure for decoding a line of input stream.
type decodingState struct {
	scan              scanState
	duration          time.Duration // duration announced by the last EXTINF tag
	discontinuityNext bool          // next completed segment starts a new group
	version           *uint64       // nil until EXT-X-VERSION parses cleanly
}

// TotalDuration returns the sum of all segment durations, accumulated
// in whole milliseconds like the per-group durations.
func (p *MediaPlaylist) TotalDuration() time.Duration {
	var ms int64
	for _, s := range p.Segments {
		ms += s.Duration.Milliseconds()
	}
	return time.Duration(ms) * time.Millisecond
}

// SegmentURIs returns the URIs of all segments in playlist order.
func (p *MediaPlaylist) SegmentURIs() []string {
	uris := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		uris = append(uris, s.URI)
	}
	return uris
}
