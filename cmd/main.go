package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sc "ngramcorrector/internal/corrector"
	"ngramcorrector/internal/config"
	"ngramcorrector/internal/model"
	"ngramcorrector/pkg/options"
)

var (
	configPath string
	logLevel   string

	log *logrus.Logger
	cf  *config.CorrectorFile
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ngramcorrector",
		Short: "Context sensitive spelling correction",
		Long:  `Trains a lexicon and an n-gram back-off language model from text and uses them to correct misspelled words.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if log, err = config.NewLogger(logLevel, false); err != nil {
				return err
			}
			cf, err = config.LoadCorrectorFile(configPath)
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "corrector YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level")

	rootCmd.AddCommand(createTrainCmd())
	rootCmd.AddCommand(createCorrectCmd())
	rootCmd.AddCommand(createCheckCmd())
	return rootCmd
}

func createTrainCmd() *cobra.Command {
	var (
		order int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "train [corpus...]",
		Short: "Train a model from text files, or stdin when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("order") {
				order = cf.Order
			}
			opts := append(cf.ModelOptions(), model.WithLogger(log))
			m, err := model.New(order, opts...)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := m.TrainReader(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			for _, path := range args {
				if err := trainFile(m, path); err != nil {
					return err
				}
				log.Infof("trained on %s", path)
			}
			m.Finalize()
			if err := m.SaveFile(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d words to %s\n", m.Lexicon().Len(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&order, "order", model.DefaultOrder, "context length in words")
	cmd.Flags().StringVarP(&out, "out", "o", "model.gz", "output model file")
	return cmd
}

func trainFile(m *model.Model, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.TrainReader(f)
}

func createCorrectCmd() *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "correct [context...] word",
		Short: "Rank corrections for the last word given the words before it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorrector(modelPath)
			if err != nil {
				return err
			}
			suggs := c.CorrectWordInContext(args)
			if len(suggs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no candidates")
				return nil
			}
			k := c.Options().TopKSuggestions
			for i, s := range suggs {
				if k > 0 && i == k {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s score=%.3f distance=%d\n", s.Word, s.Score, s.Distance)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.gz", "model file")
	return cmd
}

func createCheckCmd() *cobra.Command {
	var (
		modelPath string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Correct a text file, or stdin, and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorrector(modelPath)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			text, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			res := c.CorrectText(string(text))
			fmt.Fprint(cmd.OutOrStdout(), res.Corrected)
			if verbose {
				printSuggestions(cmd.ErrOrStderr(), res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.gz", "model file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print suggestions to stderr")
	return cmd
}

func loadCorrector(path string) (*sc.Corrector, error) {
	opts := append(cf.ModelOptions(), model.WithLogger(log))
	m, err := model.LoadFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return sc.New(m.Lexicon(), m.LanguageModel(), append(cf.Options(), options.WithLogger(log))...), nil
}

func printSuggestions(w io.Writer, res sc.CorrectionResult) {
	idx := make([]int, 0, len(res.Suggestions))
	for i := range res.Suggestions {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		s := res.Suggestions[i]
		fmt.Fprintf(w, "%s -> %s (%s)\n", s.Token, strings.Join(s.Suggestions, ", "), s.Decision)
	}
}
