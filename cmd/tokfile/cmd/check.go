package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/stats"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [in.txt|-]",
	Short: "Check a vocabulary or text input against the sentinel",
	Long: `Check that no token id can collide with the configured sentinel.

With --vocab-size, ids 0..N-1 are checked. With a text input, every id in it
is checked and the collisions are counted.

Examples:
  tokfile check --vocab-size 50257
  tokfile check --sentinel 0000 corpus.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		vocabSize, _ := cmd.Flags().GetInt("vocab-size")
		if vocabSize == 0 && len(args) == 0 {
			return errors.New("nothing to check: pass --vocab-size or an input file")
		}

		sentinel := s.format.SentinelOrDefault()
		if vocabSize > 0 {
			if err := s.format.CheckVocabSize(vocabSize); err != nil {
				return err
			}
			cmd.Printf("Vocabulary of %d ids is safe with sentinel %s\n", vocabSize, sentinel)
		}

		if len(args) == 0 {
			return nil
		}

		in, _, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		ls := stats.New(s.format)
		err = scanText(in, func(_ int, line []uint16) error {
			ls.Observe(line)
			return nil
		})
		if err != nil {
			return err
		}

		sum := ls.Summary()
		if sum.Collisions > 0 {
			return errors.Wrapf(codec.ErrSentinelCollision,
				"%d of %d tokens in %s encode as sentinel %s", sum.Collisions, sum.Tokens, args[0], sentinel)
		}
		cmd.Printf("%d tokens on %d lines are safe with sentinel %s\n", sum.Tokens, sum.Lines, sentinel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Int("vocab-size", 0, "Vocabulary size to check")
}
