package cmd

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/tokfile"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <in.txt|-> <out.tok>",
	Short: "Encode a text file of token ids into a tokens file",
	Long: `Encode a text file of token ids into a tokens file.

Each input line holds whitespace-separated decimal ids in 0..65535 and becomes
one line of the tokens file. A blank input line becomes an empty line.

Examples:
  tokfile encode corpus.txt corpus.tok
  tokfile encode --truncate --vocab-size 50257 - corpus.tok < corpus.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		truncate, _ := cmd.Flags().GetBool("truncate")
		allowCollisions, _ := cmd.Flags().GetBool("allow-collisions")
		vocabSize, _ := cmd.Flags().GetInt("vocab-size")
		fsync := s.config.Fsync
		if cmd.Flags().Changed("fsync") {
			fsync, _ = cmd.Flags().GetBool("fsync")
		}

		if vocabSize > 0 {
			if err := s.format.CheckVocabSize(vocabSize); err != nil {
				return err
			}
		}

		in, size, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		bar := newProgress(cmd, size)
		defer bar.Finish()

		w, err := tokfile.NewWriter(tokfile.WriterConfig{
			FilePath:   args[1],
			Format:     s.format,
			FlushEvery: s.config.FlushEvery,
			BufferSize: s.config.BufferSize,
			Fsync:      fsync,
			Truncate:   truncate,
			Metrics:    s.metrics,
		})
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := w.Close(); err == nil {
				err = closeErr
			}
		}()

		s.log.Debugf("Encoding %s to %s (sentinel %s, flush every %d lines)",
			args[0], args[1], s.format.SentinelOrDefault(), s.config.FlushEvery)

		res, err := encodeText(bar.NewProxyReader(in), w, s.format, allowCollisions)
		if err != nil {
			return err
		}

		s.log.Infof("Encoded %d lines (%d tokens) to %s", res.lines, res.tokens, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("truncate", false, "Replace the output file instead of appending to it")
	encodeCmd.Flags().Bool("fsync", false, "Fsync the output on every flush (overrides config)")
	encodeCmd.Flags().Bool("allow-collisions", false, "Write tokens that encode as the sentinel anyway")
	encodeCmd.Flags().Int("vocab-size", 0, "Reject the run if ids below this size can collide with the sentinel")
}

// openInput opens path, or stdin for "-", and returns its size if known
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, int64, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "open input")
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.Wrap(err, "stat input")
	}
	return f, stat.Size(), nil
}

func newProgress(cmd *cobra.Command, total int64) *pb.ProgressBar {
	bar := pb.New64(total)
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if noProgress {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(cmd.ErrOrStderr())
	}
	bar.Set(pb.Bytes, true)
	return bar.Start()
}
