package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/viper"
)

const testPlaylist = `#EXTM3U
#EXT-X-VERSION:4
#EXT-X-TARGETDURATION:20
#EXTINF:12.166,
segment_1.ts
#EXT-X-DISCONTINUITY
#EXTINF:13.292,
segment_2.ts
#EXT-X-ENDLIST
`

func TestRunInspect(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "media.m3u8")
	is.NoErr(os.WriteFile(file, []byte(testPlaylist), 0o644))

	viper.Set("output_format", "json")
	defer viper.Set("output_format", "table")

	buf := new(bytes.Buffer)
	inspectCmd.SetOut(buf)
	defer inspectCmd.SetOut(nil)

	is.NoErr(runInspect(inspectCmd, []string{file}))

	var s playlistSummary
	is.NoErr(json.Unmarshal(buf.Bytes(), &s)) // inspect must emit valid JSON
	is.Equal(s.Version, uint64(4))
	is.Equal(s.SegmentCount, 2)
	is.Equal(len(s.Discontinuities), 2)
	is.True(s.Ended)
}

func TestRunInspectMissingFile(t *testing.T) {
	is := is.New(t)
	err := runInspect(inspectCmd, []string{filepath.Join(t.TempDir(), "absent.m3u8")})
	is.True(err != nil) // unreadable input must surface as an error
}

func TestRunInspectBadPlaylist(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "media.m3u8")
	is.NoErr(os.WriteFile(file, []byte("not a playlist\n"), 0o644))

	err := runInspect(inspectCmd, []string{file})
	is.True(err != nil) // decode failure must surface as an error
}
