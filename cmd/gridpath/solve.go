package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

// pathMark overlays path cells in the rendered map.
const pathMark = '*'

func newSolveCmd(v *viper.Viper) *cobra.Command {
	var mapFile string
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search an ASCII map and print the path",
		Long: `Reads a map where '.' is walkable, '#' is blocked, 'S' is the start and
'E' is the end (first line is the top row), runs the chosen strategy and prints
the map with the path marked by '*', followed by a one-line summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := readConfig(v)
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			strategy, err := search.ParseStrategy(cfg.Strategy)
			if err != nil {
				return err
			}
			g, err := readMap(mapFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts := []session.Option{session.WithLogger(logger)}
			if showEvents {
				out := cmd.OutOrStdout()
				opts = append(opts, session.WithObserver(session.ObserverFunc(func(e search.Event) {
					fmt.Fprintln(out, e)
				})))
			}
			s, err := session.New(g, strategy, opts...)
			if err != nil {
				return err
			}
			res, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), g, res)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&mapFile, "map", "m", "-", "map file, or - for stdin")
	f.BoolVar(&showEvents, "events", false, "print every search event")
	f.StringP(keyStrategy, "s", "astar", "search strategy: bfs or astar")
	_ = v.BindPFlag(keyStrategy, f.Lookup(keyStrategy))
	return cmd
}

// readMap parses the map at path, or stdin for "-".
func readMap(path string, stdin io.Reader) (*grid.Grid, error) {
	if path == "-" {
		return grid.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return grid.Parse(f)
}

// printResult renders the map with the path overlay and a summary line.
func printResult(w io.Writer, g *grid.Grid, res session.Result) error {
	overlay := make(map[grid.Coord]byte, len(res.Path))
	for _, c := range res.Path {
		overlay[c] = pathMark
	}
	if _, err := io.WriteString(w, g.Render(overlay)); err != nil {
		return err
	}

	summary := fmt.Sprintf("strategy=%s outcome=%s steps=%d expanded=%d discovered=%d",
		res.Strategy, res.Outcome, res.Steps, res.Expanded, res.Discovered)
	switch res.Outcome {
	case session.OutcomeFound:
		summary += fmt.Sprintf(" length=%d", len(res.Path)-1)
	case session.OutcomeRejected:
		summary += " reason=" + res.Reason.String()
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
