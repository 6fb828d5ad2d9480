package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/stats"
	"github.com/ssargent/tokfile/pkg/tokfile"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <in.tok>",
	Short: "Summarise the lines of a tokens file",
	Long: `Summarise the lines of a tokens file: line and token counts, the largest
token id and the distribution of line lengths.

Example:
  tokfile stats --histogram corpus.tok`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		histogram, _ := cmd.Flags().GetBool("histogram")

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

		ls := stats.New(s.format)
		for line := range r.All() {
			ls.Observe(line)
		}
		if err := r.Err(); err != nil {
			return errors.Wrapf(err, "read %s", args[0])
		}
		if r.Discarded() > 0 {
			s.log.Warnf("Ignored %d trailing bytes without a sentinel", r.Discarded())
		}

		if err := outputSummary(cmd.OutOrStdout(), ls.Summary()); err != nil {
			return err
		}
		if histogram {
			cmd.Println("\nLine length distribution (from, to, count):")
			return ls.PrintDistribution(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("histogram", false, "Also print the line length distribution")
}
