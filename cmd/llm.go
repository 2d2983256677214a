package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathfinder/internal/llm"
	"github.com/abhisek/pathfinder/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

// withStore opens the configured database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newTable(headers ...string) *table.Table {
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withStore(cmd, func(st *store.Store) error {
			events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				ok := "yes"
				if !e.Success {
					ok = "no"
				}
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(timeLayout),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					ok,
				)
			}
			fmt.Fprintln(out, t.String())
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and response of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		return withStore(cmd, func(st *store.Store) error {
			e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			out := cmd.OutOrStdout()
			field := func(name, value string) { fmt.Fprintf(out, "%-10s %s\n", name+":", value) }
			field("ID", strconv.Itoa(e.ID))
			field("Time", e.Timestamp.Local().Format(timeLayout))
			field("Provider", e.Provider)
			field("Model", e.Model)
			field("Purpose", e.Purpose)
			field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
			field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
			field("Success", strconv.FormatBool(e.Success))
			if e.ErrorMessage != "" {
				field("Error", e.ErrorMessage)
			}

			printBlock(out, "REQUEST", e.RequestBody)
			printBlock(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func printBlock(out io.Writer, title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	rule := strings.Repeat("─", 60)
	fmt.Fprintf(out, "\n%s\n%s\n%s\n%s\n", rule, title, rule, body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *store.Store) error {
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			usage := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
			var calls, in, outTok int
			for _, s := range byPurpose {
				usage.Row(s.Purpose, strconv.Itoa(s.Calls), strconv.Itoa(s.InputTokens),
					strconv.Itoa(s.OutputTokens), strconv.Itoa(s.InputTokens+s.OutputTokens),
					strconv.FormatInt(s.AvgLatencyMs, 10))
				calls += s.Calls
				in += s.InputTokens
				outTok += s.OutputTokens
			}
			usage.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
			fmt.Fprintln(out, "Usage by Purpose")
			fmt.Fprintln(out, usage.String())

			byModel, err := st.EventRepo().LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(byModel) == 0 {
				return nil
			}

			costs := newTable("Model", "Calls", "Input", "Output", "Cost")
			var total float64
			var unpriced []string
			for _, m := range byModel {
				cost := "?"
				if p := llm.LookupCost(m.Model); p != nil {
					c := p.Cost(m.InputTokens, m.OutputTokens)
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, m.Model)
				}
				costs.Row(truncate(m.Model, 32), strconv.Itoa(m.Calls), strconv.Itoa(m.InputTokens),
					strconv.Itoa(m.OutputTokens), cost)
			}
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			costs.Row(label, "", "", "", formatCost(total))

			fmt.Fprintln(out, "\nEstimated Cost (USD)")
			fmt.Fprintln(out, costs.String())
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. career-report)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
