package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/bs2tutor/internal/llm"
	"github.com/abhisek/bs2tutor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and prune logged model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withEvents(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			writeEventList(cmd.OutOrStdout(), events)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and answer of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		return withEvents(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			writeEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by purpose: %w", err)
			}
			byModel, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by model: %w", err)
			}
			writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
			return nil
		})
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete logged calls older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		return withEvents(cmd, func(repo store.EventRepo) error {
			n, err := repo.DeleteLLMEventsBefore(cmd.Context(), time.Now().Add(-age))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d call(s).\n", n)
			return nil
		})
	},
}

func writeEventList(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM calls found.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Time", "Purpose", "Model", "In", "Out", "ms", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format(time.DateTime),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	fmt.Fprintln(w, t.String())
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Provider:  %s (%s)\n", e.Provider, e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	section := func(title, body string) {
		rule := strings.Repeat("─", 60)
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, body)
	}
	section("PROMPT", e.RequestBody)
	section("ANSWER", e.ResponseBody)
}

func writeUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	purposes := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Purpose", "Calls", "Input", "Output", "Avg ms")
	var calls, in, out int
	for _, u := range byPurpose {
		purposes.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	purposes.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")
	fmt.Fprintln(w, "Usage by purpose")
	fmt.Fprintln(w, purposes.String())

	if len(byModel) == 0 {
		return
	}
	models := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Model", "Calls", "Input", "Output", "Cost (USD)")
	var total float64
	var unknown []string
	for _, u := range byModel {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, u.Model)
		}
		models.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	models.Row(label, "", "", "", formatCost(total))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost")
	fmt.Fprintln(w, models.String())
	if len(unknown) > 0 {
		fmt.Fprintf(w, "No pricing for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// withEvents opens the database for the inspection commands. Only the
// database path is needed, so config validation errors are ignored.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	cfg, _ := loadConfig(cmd)
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (question-gen, answer-validation, chat-answer, ...)")
	llmListCmd.Flags().Duration("since", 0, "Only calls from the last duration, e.g. 1h")
	llmPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete calls older than this")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmPruneCmd)
}
