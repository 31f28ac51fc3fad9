package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/config"
	"github.com/bitdittowit/autoduo/internal/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve [fixture.html]",
	Short: "Solve one exercise from an HTML file without a browser",
	Long: "Parses an exercise snapshot from an HTML file (or stdin when the\n" +
		"argument is - or absent), runs the solver chain against it, and\n" +
		"prints the derived answer and the UI actions it would perform.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, args)
	},
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	snap, err := challenge.ParseFixture(in)
	if err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	registry := solver.NewRegistry(solver.Options{Calibration: cfg.Calibration}, logger)
	res, matched := registry.Solve(snap)
	if !matched {
		return fmt.Errorf("no solver matched (header: %q)", snap.HeaderText)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.String())
	printActions(out, snap)

	if !res.Success {
		return fmt.Errorf("solve failed: %s", res.Err)
	}
	return nil
}

// printActions lists the UI actions recorded on the fixture's elements.
func printActions(out io.Writer, snap *challenge.Context) {
	if el, ok := snap.TextInput.(*challenge.StaticElement); ok && el != nil {
		for _, v := range el.Typed() {
			fmt.Fprintf(out, "  type %q into answer field\n", v)
		}
	}
	for i, c := range snap.Choices {
		el, ok := c.(*challenge.StaticElement)
		if !ok {
			continue
		}
		for n := 0; n < el.Clicks(); n++ {
			fmt.Fprintf(out, "  click choice %d (%q)\n", i, el.Text())
		}
	}
	for i, w := range snap.Widgets {
		sw, ok := w.(*challenge.StaticWidget)
		if !ok {
			continue
		}
		for _, script := range sw.Execs() {
			fmt.Fprintf(out, "  exec in widget %d: %s\n", i, script)
		}
		for _, msg := range sw.Posts() {
			fmt.Fprintf(out, "  post to widget %d: %s\n", i, msg)
		}
	}
}
