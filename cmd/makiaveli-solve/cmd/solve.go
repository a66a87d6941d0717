package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"makiaveli/internal/config"
	"makiaveli/internal/driver"
)

// request is the JSON wire shape for a solve call, per spec.md §6.
type request struct {
	Hand        []string   `json:"hand"`
	FloorGroups [][]string `json:"floor_groups"`
	Cross       []string   `json:"cross"`
	DeadlineMS  *int       `json:"deadline_ms,omitempty"`
}

func newSolveCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Read a hand/floor/cross request and print the solved rearrangement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(configPath); err != nil {
				return fmt.Errorf("loading solver config: %w", err)
			}

			raw, err := readRequest(inputPath)
			if err != nil {
				return fmt.Errorf("reading request: %w", err)
			}

			var req request
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("decoding request: %w", err)
			}

			logger.Debug().Int("hand", len(req.Hand)).Int("floor_groups", len(req.FloorGroups)).Int("cross", len(req.Cross)).Msg("solving")

			out := driver.Solve(driver.Input{
				Hand:        req.Hand,
				FloorGroups: req.FloorGroups,
				Cross:       req.Cross,
				DeadlineMS:  req.DeadlineMS,
			})

			if out.Error != "" {
				logger.Error().Str("kind", string(out.Error)).Msg("solve failed")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "-", "path to a request JSON file, or - for stdin")
	return cmd
}

func readRequest(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
