package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aouyang1/go-minsim"
	"github.com/aouyang1/go-minsim/corpus"
)

func newScanCommand(configFlag *string) *cobra.Command {
	var (
		shingleSize int
		numHashes   int
		threshold   float64
		seed        int64
		workers     int
		onError     string
		logLevel    string
		logFormat   string
		asTable     bool
		showStats   bool
		topN        int
		saveSigs    string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory of .txt files and report similar document pairs",
		Long: `Scan reads every .txt file in the directory, shingles it, builds one
minhash signature per document and estimates the Jaccard similarity of every
pair. Pairs at or above the threshold are reported.

The pairwise stage is quadratic in the number of documents, which is the
limiting factor for corpus size. It honors Ctrl-C.

Examples:
  minsim scan ./docs
  minsim scan --shingle-size 5 --num-hashes 200 --threshold 0.3 ./docs
  minsim scan --seed 42 --table ./docs   # reproducible run, table output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*configFlag)
			if err != nil {
				return err
			}

			// command line overrides the config file
			flags := cmd.Flags()
			if flags.Changed("shingle-size") {
				cfg.ShingleSize = shingleSize
			}
			if flags.Changed("num-hashes") {
				cfg.NumHashes = numHashes
			}
			if flags.Changed("threshold") {
				cfg.Threshold = threshold
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("on-error") {
				cfg.OnError = onError
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opt := &minsim.Options{
				ShingleSize:         cfg.ShingleSize,
				NumHashes:           cfg.NumHashes,
				SimilarityThreshold: cfg.Threshold,
				NumWorkers:          cfg.Workers,
			}
			var rnd *rand.Rand
			if flags.Changed("seed") || cfg.Seed != 0 {
				rnd = rand.New(rand.NewSource(cfg.Seed))
			}
			ms, err := minsim.NewWithSource(opt, rnd)
			if err != nil {
				return err
			}

			policy := corpus.SkipUnreadable
			if cfg.OnError == "abort" {
				policy = corpus.AbortOnError
			}
			loader := &corpus.Loader{
				Dir:         args[0],
				ShingleSize: cfg.ShingleSize,
				OnError:     policy,
				Logger:      logger,
			}
			docs, err := loader.Load(ctx)
			if err != nil {
				return err
			}
			logger.Info("corpus loaded", "documents", len(docs))

			sigs, err := ms.Signatures(ctx, docs)
			if err != nil {
				return err
			}
			logger.Info("signatures generated", "num_hashes", cfg.NumHashes)

			if saveSigs != "" {
				if err := minsim.SaveSignatures(saveSigs, ms.Family, sigs); err != nil {
					return fmt.Errorf("saving signatures: %w", err)
				}
				logger.Info("signatures saved", "path", saveSigs)
			}

			out := cmd.OutOrStdout()

			if showStats {
				// stats need the full pair space, so score it once and
				// report from the same slice
				scores, err := minsim.AllPairs(ctx, sigs, opt.NumWorkers)
				if err != nil {
					return err
				}
				printStats(cmd, minsim.Stats(scores, len(docs), cfg.NumHashes))

				if asTable {
					res := minsim.NewResults(topN, cfg.Threshold)
					for _, s := range scores {
						res.Update(s)
					}
					fmt.Fprintln(out, renderScores(docs, res.Fetch()))
					return nil
				}
				for _, s := range scores {
					if s.Similarity < cfg.Threshold {
						continue
					}
					fmt.Fprintf(out, "Document %d is similar to Document %d with similarity %.8f\n", s.I, s.J, s.Similarity)
				}
				return nil
			}

			if asTable {
				res := minsim.NewResults(topN, cfg.Threshold)
				err := minsim.StreamPairs(ctx, sigs, cfg.Threshold, func(s minsim.Score) error {
					res.Update(s)
					return nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderScores(docs, res.Fetch()))
				return nil
			}

			return minsim.StreamPairs(ctx, sigs, cfg.Threshold, func(s minsim.Score) error {
				fmt.Fprintf(out, "Document %d is similar to Document %d with similarity %.8f\n", s.I, s.J, s.Similarity)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&shingleSize, "shingle-size", 3, "Words per shingle window")
	cmd.Flags().IntVar(&numHashes, "num-hashes", 100, "Hash functions per signature")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Minimum similarity to report")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the hash family, for reproducible runs")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker goroutines, 0 means one per CPU")
	cmd.Flags().StringVar(&onError, "on-error", "skip", "Unreadable file policy: skip or abort")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render matches as a table")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print score distribution and estimator error")
	cmd.Flags().IntVar(&topN, "top", 0, "Keep only the N best pairs in table mode, 0 keeps all")
	cmd.Flags().StringVar(&saveSigs, "save-signatures", "", "Write the signature cache to this path")

	return cmd
}
