package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathfinder/internal/report"
	"github.com/abhisek/pathfinder/internal/submission"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a generated report and print its conclusion and careers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		res := report.Parse(string(raw))
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(parsedReport{
				Conclusion:      res.Conclusion,
				Recommendations: report.ParseRecommendations(res.Recommendations),
				Complete:        res.Complete(),
			}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, "Conclusion:")
			fmt.Fprintln(out, res.Conclusion)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Careers:")
			for i, t := range res.Titles {
				fmt.Fprintf(out, "  %d. %s\n", i+1, t)
			}
		}

		if !res.Complete() {
			return &submission.MalformedResponseError{
				MissingConclusion:      res.Conclusion == "",
				MissingRecommendations: res.Recommendations == "",
			}
		}
		return nil
	},
}

type parsedReport struct {
	Conclusion      string                  `json:"conclusion"`
	Recommendations []report.Recommendation `json:"recommendations"`
	Complete        bool                    `json:"complete"`
}

func init() {
	parseCmd.Flags().Bool("json", false, "Print the parsed report as JSON")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return data, nil
}
