package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xab-mack/metaast/internal/codec"
	"github.com/xab-mack/metaast/internal/config"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/plugins"
	"github.com/xab-mack/metaast/internal/registry"
	"github.com/xab-mack/metaast/internal/report"
	"github.com/xab-mack/metaast/internal/runner"
	"github.com/xab-mack/metaast/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newRunCmd())
	root.AddCommand(newAnalyzersCmd())
	root.AddCommand(newInitCmd())
}

// prepare loads the static config and auto-registers the built-in analyzers.
func prepare() *registry.Registry {
	cfg, _, err := config.Load(".")
	if err != nil {
		cfg = config.Default()
	}
	reg := registry.Default()
	if len(reg.ListAll()) == 0 {
		reg.AutoRegister(cfg, plugins.Builtin())
	}
	return reg
}

func newRunCmd() *cobra.Command {
	var (
		format      string
		outputFile  string
		useTUI      bool
		haltOnError bool
		maxIssues   int
		timing      bool
		names       []string
		failOn      string
	)
	cmd := &cobra.Command{
		Use:   "run <document>...",
		Short: "Analyze one or more serialized MetaAST documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prepare()
			opts := runner.Options{
				Analyzers:   names,
				HaltOnError: haltOnError,
				MaxIssues:   maxIssues,
				TrackTiming: timing,
				Registry:    reg,
			}

			// Documents decode and run in parallel; each run is itself
			// single-threaded. Output stays in argument order.
			reports := make([]*model.Report, len(args))
			var g errgroup.Group
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					f, err := codec.FormatForPath(path)
					if err != nil {
						return err
					}
					doc, err := codec.Decode(data, f)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					rep, err := runner.Run(doc, opts)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					reports[i] = rep
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if useTUI {
				if len(reports) != 1 {
					return fmt.Errorf("--tui supports exactly one document")
				}
				return tui.Run(reports[0])
			}
			for i, rep := range reports {
				switch format {
				case "json":
					data, err := report.ToJSON(rep)
					if err != nil {
						return err
					}
					if outputFile != "" {
						return os.WriteFile(outputFile, data, 0o644)
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				default:
					if len(reports) > 1 {
						fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", args[i])
					}
					report.WriteTable(cmd.OutOrStdout(), rep)
				}
			}

			if failOn != "" {
				threshold := model.ParseSeverity(failOn)
				for _, rep := range reports {
					for _, is := range rep.Issues {
						if model.SeverityGTE(is.Severity, threshold) {
							return fmt.Errorf("fail-on threshold met: %s", is.Severity)
						}
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().BoolVar(&haltOnError, "halt-on-error", false, "Stop the traversal at the first error-severity issue")
	cmd.Flags().IntVar(&maxIssues, "max-issues", 0, "Cap the number of reported issues (0 = unlimited)")
	cmd.Flags().BoolVar(&timing, "timing", false, "Record per-analyzer timing in the report")
	cmd.Flags().StringSliceVar(&names, "analyzers", nil, "Run only the named analyzers")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if an issue of this severity or higher exists (info|warning|error)")
	return cmd
}

func newAnalyzersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "analyzers", Short: "List registered analyzers"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered analyzers with their metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prepare()
			for _, a := range reg.ListAll() {
				m := a.Meta()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", m.Name, m.Category, m.Severity, m.Description)
			}
			return nil
		},
	})
	return cmd
}

func newInitCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a metaast.toml in the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = "."
			}
			return config.WriteDefault(filepath.Join(dir, config.FileName))
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write config file to")
	return cmd
}
