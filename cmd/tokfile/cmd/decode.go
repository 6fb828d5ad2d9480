package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/tokfile"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <in.tok> [out.txt]",
	Short: "Decode a tokens file into text",
	Long: `Decode a tokens file into one line of space-separated token ids per line.

Output goes to stdout unless an output file is given. A trailing partial line
(no sentinel after it) is dropped with a warning.

Examples:
  tokfile decode corpus.tok
  tokfile decode --sentinel 0000 corpus.tok corpus.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		r, err := tokfile.NewReader(tokfile.ReaderConfig{
			FilePath:   args[0],
			Format:     s.format,
			BufferSize: s.config.BufferSize,
			Metrics:    s.metrics,
		})
		if err != nil {
			return err
		}
		defer r.Close()

		var out io.Writer = cmd.OutOrStdout()
		if len(args) == 2 {
			f, err := os.Create(args[1])
			if err != nil {
				return errors.Wrap(err, "create output")
			}
			defer func() {
				if closeErr := f.Close(); err == nil && closeErr != nil {
					err = errors.Wrap(closeErr, "close output")
				}
			}()
			out = f
		}

		var size int64
		if stat, statErr := os.Stat(args[0]); statErr == nil {
			size = stat.Size()
		}
		bar := newProgress(cmd, size)
		defer bar.Finish()

		lines, err := decodeTokens(r, out, func(n int) { bar.Add(n) })
		if err != nil {
			return err
		}

		if r.Discarded() > 0 {
			s.log.Warnf("Dropped %d trailing bytes of %s that did not end with sentinel %s",
				r.Discarded(), args[0], s.format.SentinelOrDefault())
		}
		s.log.Infof("Decoded %d lines from %s", lines, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
