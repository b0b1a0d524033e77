package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ssukijth0330/disney-hls-parser-new-discontinuity/m3u8"
)

func samplePlaylist() *m3u8.MediaPlaylist {
	segments := []m3u8.MediaSegment{
		{Duration: 12166 * time.Millisecond, URI: "segment_1.ts"},
		{Duration: 13292 * time.Millisecond, URI: "segment_2.ts"},
	}
	return &m3u8.MediaPlaylist{
		Version:        4,
		TargetDuration: 20 * time.Second,
		Ended:          true,
		Segments:       segments,
		Discontinuities: []m3u8.DiscontinuityGroup{
			{Duration: 12166 * time.Millisecond, Segments: segments[0:1]},
			{Duration: 13292 * time.Millisecond, Segments: segments[1:2]},
		},
	}
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	s := summarize(samplePlaylist())

	is.Equal(s.Version, uint64(4))              // version carried over
	is.Equal(s.TargetDurationSeconds, 20.0)     // target duration in seconds
	is.True(s.Ended)                            // ended carried over
	is.Equal(s.SegmentCount, 2)                 // segment count
	is.True(math.Abs(s.TotalDurationSeconds-25.458) < 1e-6) // total duration in seconds
	is.Equal(len(s.Discontinuities), 2)         // one group summary per group
	is.Equal(s.Discontinuities[0].Segments, []string{"segment_1.ts"})
	is.Equal(s.Discontinuities[1].Segments, []string{"segment_2.ts"})
}

func TestRenderSummaryJSON(t *testing.T) {
	is := is.New(t)
	viper.Set("output_format", "json")
	defer viper.Set("output_format", "table")

	buf := new(bytes.Buffer)
	is.NoErr(renderSummary(buf, summarize(samplePlaylist())))

	var decoded playlistSummary
	is.NoErr(json.Unmarshal(buf.Bytes(), &decoded)) // output must be valid JSON
	is.Equal(decoded.Version, uint64(4))
	is.Equal(decoded.SegmentCount, 2)
}

func TestRenderSummaryYAML(t *testing.T) {
	is := is.New(t)
	viper.Set("output_format", "yaml")
	defer viper.Set("output_format", "table")

	buf := new(bytes.Buffer)
	is.NoErr(renderSummary(buf, summarize(samplePlaylist())))

	var decoded playlistSummary
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &decoded)) // output must be valid YAML
	is.Equal(decoded.Version, uint64(4))
	is.Equal(len(decoded.Discontinuities), 2)
}

func TestRenderSummaryTable(t *testing.T) {
	is := is.New(t)
	viper.Set("output_format", "table")

	buf := new(bytes.Buffer)
	is.NoErr(renderSummary(buf, summarize(samplePlaylist())))

	out := buf.String()
	is.True(strings.Contains(out, "Version:          4"))
	is.True(strings.Contains(out, "Segments:         2"))
	is.True(strings.Contains(out, "segment_1.ts"))
}

func TestRenderSummaryUnknownFormat(t *testing.T) {
	is := is.New(t)
	viper.Set("output_format", "csv")
	defer viper.Set("output_format", "table")

	err := renderSummary(new(bytes.Buffer), summarize(samplePlaylist()))
	is.True(err != nil) // unsupported format must be rejected
}
