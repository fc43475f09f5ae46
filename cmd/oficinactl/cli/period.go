package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/period"

	"github.com/spf13/cobra"
)

func newPeriodCmd(opts *rootOptions) *cobra.Command {
	var (
		now        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "period <text>",
		Short: "Resolve a Portuguese period expression",
		Example: `  oficinactl period "mês passado"
  oficinactl period "últimos 7 dias" --now 2025-03-31 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}

			var resolverOpts []period.Option
			if now != "" {
				ref, err := period.ParseDate(now)
				if err != nil {
					return fmt.Errorf("invalid --now %q: expected YYYY-MM-DD", now)
				}
				resolverOpts = append(resolverOpts, period.WithClock(func() time.Time { return *ref }))
			}

			text := strings.Join(args, " ")
			r, ok := period.New(log, resolverOpts...).Resolve(text)

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(dto.PeriodResponse{Text: text, Period: r, Recognized: ok}); err != nil {
					return err
				}
			} else if ok {
				fmt.Fprintf(out, "%s .. %s\n", orDash(r.StartDate()), orDash(r.EndDate()))
			}

			if !ok {
				if !jsonOutput {
					fmt.Fprintf(cmd.ErrOrStderr(), "Período não reconhecido: %q\n", text)
				}
				return &SilentError{Err: fmt.Errorf("period not recognized: %q", text)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "Reference date (YYYY-MM-DD), defaults to today in UTC")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
