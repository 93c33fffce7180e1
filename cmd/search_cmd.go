package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/sessgrep/internal/render"
	"github.com/nextlevelbuilder/sessgrep/internal/search"
)

func searchCmd() *cobra.Command {
	var (
		project       string
		role          string
		since         string
		until         string
		literal       bool
		ignoreCase    bool
		radius        int
		maxLength     int
		maxResults    int
		maxTokens     int
		preciseTokens bool
		jsonOut       bool
		noColor       bool
	)

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search transcripts for a regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			q := search.Query{
				Pattern:       args[0],
				Literal:       literal,
				IgnoreCase:    ignoreCase,
				Project:       project,
				Role:          role,
				Radius:        radius,
				MaxLength:     maxLength,
				MaxResults:    maxResults,
				MaxTokens:     maxTokens,
				PreciseTokens: preciseTokens,
				Tokenizer:     cfg.Tokenizer,
			}
			// Negative flag values mean "use the config"; an explicit 0 for
			// the caps means unlimited.
			if radius < 0 {
				q.Radius = cfg.Search.Radius
			}
			if maxLength < 0 {
				q.MaxLength = cfg.Search.MaxLength
			}
			if maxResults < 0 {
				q.MaxResults = cfg.Search.MaxResults
			}
			if maxTokens < 0 {
				q.MaxTokens = cfg.Search.MaxTokens
			}
			if q.Since, err = parseDate(since, false); err != nil {
				return err
			}
			if q.Until, err = parseDate(until, true); err != nil {
				return err
			}

			engine := search.NewEngine(newManager(cfg), nil)
			resp, err := engine.Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			if jsonOut {
				return render.JSON(os.Stdout, resp)
			}
			render.Results(os.Stdout, resp, !noColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "only search this project")
	cmd.Flags().StringVar(&role, "role", "", "only match messages with this role (user, assistant)")
	cmd.Flags().StringVar(&since, "since", "", "only messages at or after this date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&until, "until", "", "only messages up to this date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVarP(&literal, "fixed-strings", "F", false, "treat the pattern as a literal string")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	cmd.Flags().IntVar(&radius, "context", -1, "context bytes around each match")
	cmd.Flags().IntVar(&maxLength, "max-length", -1, "cap each excerpt at this many bytes (0 = unlimited)")
	cmd.Flags().IntVar(&maxResults, "max-results", -1, "cap the number of results")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", -1, "token budget across all results (0 = unlimited)")
	cmd.Flags().BoolVar(&preciseTokens, "precise-tokens", false, "count tokens with the real tokenizer instead of the chars/4 heuristic")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable match highlighting")
	return cmd
}

// parseDate accepts RFC3339 timestamps or bare dates. A bare --until date
// is pushed to the end of that day so the day itself is included.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC3339)", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
