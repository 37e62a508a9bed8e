package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/aouyang1/go-minsim"
)

// renderScores renders matched pairs with their file names, best match first.
func renderScores(docs []minsim.Document, scores minsim.Scores) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Document A", "Document B", "Similarity"})

	for _, s := range scores {
		tw.AppendRow(table.Row{
			docs[s.I].Name,
			docs[s.J].Name,
			fmt.Sprintf("%.4f", s.Similarity),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// printStats writes the run summary and the estimator standard error curve.
func printStats(cmd *cobra.Command, stats *minsim.Statistics) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "documents: %d  pairs: %d  mean similarity: %.4f  stddev: %.4f\n",
		stats.NumDocs, stats.NumPairs, stats.MeanSimilarity, stats.StdDev)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"True similarity", "Std error"})
	for _, se := range stats.StandardErrors {
		tw.AppendRow(table.Row{
			fmt.Sprintf("%.1f", se.Similarity),
			fmt.Sprintf("%.4f", se.StdErr),
		})
	}
	fmt.Fprintln(out, tw.Render())
}
