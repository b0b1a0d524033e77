package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssukijth0330/disney-hls-parser-new-discontinuity/m3u8"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Parse a playlist file and print its structure",
	Long: `Parse an HLS media playlist from a file (or stdin when the
argument is "-") and print version, target duration, segment list and
discontinuity groups.

Examples:
  # Summarize a local playlist
  hlsparse inspect media.m3u8

  # Machine-readable output from stdin
  cat media.m3u8 | hlsparse inspect -o json -`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading playlist: %w", err)
	}

	p, err := m3u8.DecodeMediaPlaylist(string(data), viper.GetBool("strict"))
	if err != nil {
		return fmt.Errorf("decoding playlist: %w", err)
	}
	for _, warning := range p.Warnings {
		slog.Debug("lenient decode", "detail", warning)
	}

	return renderSummary(cmd.OutOrStdout(), summarize(p))
}
