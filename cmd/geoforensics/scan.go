package main

import (
	"fmt"
	"geo-forensics-service/internal/adapters/evidence"
	"geo-forensics-service/internal/report"
	"geo-forensics-service/internal/services"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newScanCmd(root *rootOptions) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Resolve every image in a folder into an ordered track",
		Long: "Resolve every png, jpg, jpeg, and webp image in a folder, in file-name order.\n" +
			"Embedded GPS tags are used first; images without them are sent to the vision model.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := evidence.LoadFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				return fmt.Errorf("no images found in %s", args[0])
			}

			a, err := root.buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Pipeline.Resolve(cmd.Context(), sources)
			if err != nil && cmd.Context().Err() == nil {
				return err
			}

			printResult(cmd.OutOrStdout(), len(sources), result)

			if reportPath != "" {
				if werr := writeReport(reportPath, result); werr != nil {
					return werr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", reportPath)
			}

			return err
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "write a CSV report to this path")

	return cmd
}

func printResult(w io.Writer, total int, result services.ResolveResult) {
	for i, item := range result.Track {
		fmt.Fprintf(w, "%3d  %-28s %-10s %-32s %10.6f %11.6f  %s\n",
			i+1,
			item.SourceFile,
			item.Provenance,
			item.Label,
			item.Coordinates.Lat,
			item.Coordinates.Lon,
			item.MapsURL(),
		)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "FAILED  %s\n", d)
	}
	fmt.Fprintf(w, "resolved %d of %d images, %d failed, total distance %.3f km\n",
		result.Resolved, total, result.Failed, result.TotalDistance())
}

func writeReport(path string, result services.ResolveResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WriteCSV(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
