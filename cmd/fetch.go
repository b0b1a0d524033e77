package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssukijth0330/disney-hls-parser-new-discontinuity/m3u8"
)

const maxSimultaneousDownloads = 4

var (
	fetchDir      string
	fetchSegments bool
	fetchTimeout  time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download a playlist over HTTP and print its structure",
	Long: `Fetch an HLS media playlist from a URL, parse it and print the
summary. With --download-segments the listed segments are downloaded
next to each other into --dir, resolving relative segment URIs against
the playlist URL.

Examples:
  # Summarize a remote playlist
  hlsparse fetch https://example.com/vod/media.m3u8

  # Mirror the segments locally
  hlsparse fetch --download-segments --dir ./segments https://example.com/vod/media.m3u8`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchSegments, "download-segments", false,
		"download the segments listed in the playlist")
	fetchCmd.Flags().StringVarP(&fetchDir, "dir", "d", ".",
		"directory to download segments into")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second,
		"timeout for each HTTP request")
}

func runFetch(cmd *cobra.Command, args []string) error {
	base, err := url.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid playlist URL: %w", err)
	}

	ctx := cmd.Context()
	body, err := httpGet(ctx, base.String())
	if err != nil {
		return fmt.Errorf("fetching playlist: %w", err)
	}

	p, err := m3u8.DecodeMediaPlaylist(string(body), viper.GetBool("strict"))
	if err != nil {
		return fmt.Errorf("decoding playlist: %w", err)
	}
	for _, warning := range p.Warnings {
		slog.Debug("lenient decode", "detail", warning)
	}

	if err := renderSummary(cmd.OutOrStdout(), summarize(p)); err != nil {
		return err
	}

	if !fetchSegments {
		return nil
	}
	if err := os.MkdirAll(fetchDir, 0o755); err != nil {
		return fmt.Errorf("creating download dir: %w", err)
	}
	return downloadSegments(ctx, base, p.Segments, fetchDir)
}

func httpGet(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, rawURL)
	}
	return io.ReadAll(resp.Body)
}

// downloadSegments fetches every segment into dir, a few at a time.
func downloadSegments(ctx context.Context, base *url.URL, segments []m3u8.MediaSegment, dir string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bar := progressbar.Default(int64(len(segments)), "Downloading segments")

	sem := make(chan struct{}, maxSimultaneousDownloads)
	errChan := make(chan error, 1)
	var wg sync.WaitGroup

	for _, segment := range segments {
		wg.Add(1)
		sem <- struct{}{}

		go func(segment m3u8.MediaSegment) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := downloadSegment(ctx, base, segment, dir); err != nil {
				select {
				case errChan <- err:
					cancel()
				default:
				}
			}
			bar.Add(1)
		}(segment)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return fmt.Errorf("downloading segments: %w", err)
	}
	bar.Finish()
	return nil
}

func downloadSegment(ctx context.Context, base *url.URL, segment m3u8.MediaSegment, dir string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	abs, err := resolveSegmentURL(base, segment.URI)
	if err != nil {
		return err
	}
	body, err := httpGet(ctx, abs.String())
	if err != nil {
		return err
	}

	name := path.Base(abs.Path)
	if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	slog.Debug("segment downloaded", "uri", abs.String(), "file", name)
	return nil
}

// resolveSegmentURL resolves a possibly relative segment URI against
// the playlist URL.
func resolveSegmentURL(base *url.URL, uri string) (*url.URL, error) {
	ref, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid segment URI %q: %w", uri, err)
	}
	return base.ResolveReference(ref), nil
}
