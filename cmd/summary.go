package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ssukijth0330/disney-hls-parser-new-discontinuity/m3u8"
)

// playlistSummary is the report printed by inspect and fetch.
type playlistSummary struct {
	Version               uint64         `json:"version" yaml:"version"`
	TargetDurationSeconds float64        `json:"target_duration_seconds" yaml:"target_duration_seconds"`
	Ended                 bool           `json:"ended" yaml:"ended"`
	SegmentCount          int            `json:"segment_count" yaml:"segment_count"`
	TotalDurationSeconds  float64        `json:"total_duration_seconds" yaml:"total_duration_seconds"`
	Discontinuities       []groupSummary `json:"discontinuities" yaml:"discontinuities"`
	Warnings              []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type groupSummary struct {
	DurationSeconds float64  `json:"duration_seconds" yaml:"duration_seconds"`
	Segments        []string `json:"segments" yaml:"segments"`
}

func summarize(p *m3u8.MediaPlaylist) playlistSummary {
	s := playlistSummary{
		Version:               p.Version,
		TargetDurationSeconds: p.TargetDuration.Seconds(),
		Ended:                 p.Ended,
		SegmentCount:          len(p.Segments),
		TotalDurationSeconds:  p.TotalDuration().Seconds(),
		Warnings:              p.Warnings,
	}
	for _, g := range p.Discontinuities {
		s.Discontinuities = append(s.Discontinuities, groupSummary{
			DurationSeconds: g.Duration.Seconds(),
			Segments:        uris(g.Segments),
		})
	}
	return s
}

func uris(segments []m3u8.MediaSegment) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg.URI)
	}
	return out
}

// renderSummary writes the summary to w in the configured output format.
func renderSummary(w io.Writer, s playlistSummary) error {
	switch format := viper.GetString("output_format"); format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		return yaml.NewEncoder(w).Encode(s)
	case "table":
		return renderTable(w, s)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func renderTable(w io.Writer, s playlistSummary) error {
	fmt.Fprintf(w, "Version:          %d\n", s.Version)
	fmt.Fprintf(w, "Target duration:  %.0fs\n", s.TargetDurationSeconds)
	fmt.Fprintf(w, "Ended:            %t\n", s.Ended)
	fmt.Fprintf(w, "Segments:         %d\n", s.SegmentCount)
	fmt.Fprintf(w, "Total duration:   %.3fs\n", s.TotalDurationSeconds)
	fmt.Fprintf(w, "Discontinuities:  %d\n", len(s.Discontinuities))
	for i, g := range s.Discontinuities {
		fmt.Fprintf(w, "  group %d: %.3fs, %d segment(s)\n", i+1, g.DurationSeconds, len(g.Segments))
		for _, uri := range g.Segments {
			fmt.Fprintf(w, "    %s\n", uri)
		}
	}
	for _, warning := range s.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
