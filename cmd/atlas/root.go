package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"atlas/internal/atlas"
	"atlas/internal/config"
	"atlas/internal/interactive"
	"atlas/internal/logger"
	"atlas/internal/memory"
	"atlas/internal/scanner"
	"atlas/internal/stress"
)

// coreOpener builds the engine and returns a function releasing its backends.
type coreOpener func(ctx context.Context, cfg *config.AppConfig) (*atlas.Core, func() error, error)

func openCore(ctx context.Context, cfg *config.AppConfig) (*atlas.Core, func() error, error) {
	if !cfg.Engine.TemporalEnabled {
		return atlas.New(atlas.EngineOptions(cfg.Engine, nil)...), func() error { return nil }, nil
	}
	store, closeFn, err := memory.Open(ctx, cfg.Memory, cfg.Redis, logger.WithComponent("memory"))
	if err != nil {
		return nil, nil, err
	}
	return atlas.New(atlas.EngineOptions(cfg.Engine, store)...), closeFn, nil
}

type cli struct {
	cfg  *config.AppConfig
	open coreOpener
}

func (c *cli) withCore(cmd *cobra.Command, fn func(core *atlas.Core) error) error {
	core, closeFn, err := c.open(cmd.Context(), c.cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(core)
}

func newRootCmd(cfg *config.AppConfig, open coreOpener) *cobra.Command {
	c := &cli{cfg: cfg, open: open}
	root := &cobra.Command{
		Use:          "atlas",
		Short:        "Multi-domain cognitive analysis engine",
		SilenceUsage: true,
	}
	root.AddCommand(
		c.analyzeCmd(),
		c.interactiveCmd(),
		c.scanCmd(),
		c.diagnosticsCmd(),
		c.stressCmd(),
		c.apocalypseCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) analyzeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <domain> <query>...",
		Short: "Analyze one query within a domain",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCore(cmd, func(core *atlas.Core) error {
				res := core.AnalyzeQuery(cmd.Context(), args[0], strings.Join(args[1:], " "))
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, res)
				}
				if !res.Success {
					return fmt.Errorf("analysis failed: %s", res.Error)
				}
				_, err := fmt.Fprintln(out, res.Simplified)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func (c *cli) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start the menu-driven analysis session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withCore(cmd, func(core *atlas.Core) error {
				_, err := interactive.NewSession(core, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
				return err
			})
		},
	}
}

func (c *cli) scanCmd() *cobra.Command {
	var (
		lang string
		list bool
	)
	cmd := &cobra.Command{
		Use:   "scan [domain] [input]...",
		Short: "Scan a phenomenon with the domain catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scanner.New()
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				for _, d := range s.Domains() {
					fmt.Fprintf(out, "%-14s %s\n", d.Key, d.Name)
				}
				return nil
			}
			input := strings.Join(args[1:], " ")
			if input == "" {
				sample, err := s.Sample(args[0], lang)
				if err != nil {
					return err
				}
				input = sample
			}
			rep := s.Scan(args[0], input, lang)
			if !rep.Success {
				return fmt.Errorf("scan failed: %s", rep.Error)
			}
			_, err := fmt.Fprintln(out, rep.Simplified)
			return err
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", c.cfg.Engine.DefaultLanguage, "report language")
	cmd.Flags().BoolVar(&list, "list", false, "list supported domains")
	return cmd
}

func (c *cli) diagnosticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Print the engine status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withCore(cmd, func(core *atlas.Core) error {
				return writeJSON(cmd.OutOrStdout(), core.Status(cmd.Context()))
			})
		},
	}
}

// target resolves the stress target: a remote API when url is set, the
// in-process core otherwise.
func (c *cli) target(cmd *cobra.Command, url string, fn func(stress.Target) error) error {
	if url != "" {
		t, err := stress.NewHTTPTarget(url, nil)
		if err != nil {
			return err
		}
		return fn(t)
	}
	return c.withCore(cmd, func(core *atlas.Core) error {
		return fn(stress.NewCoreTarget(core))
	})
}

func (c *cli) stressCmd() *cobra.Command {
	sc := c.cfg.Stress
	var (
		workers  int
		duration time.Duration
		qps      float64
		url      string
		sample   time.Duration
		phase    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a concurrent load test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.target(cmd, url, func(t stress.Target) error {
				r := stress.Runner{
					Workers:        workers,
					Duration:       duration,
					Limit:          rate.Limit(qps),
					Burst:          workers,
					SampleInterval: sample,
					PhaseInterval:  phase,
				}
				rep, err := r.Run(cmd.Context(), t)
				if rep != nil {
					rep.WriteTo(cmd.OutOrStdout())
				}
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", sc.Workers, "concurrent workers")
	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Duration(sc.DurationSec)*time.Second, "test duration")
	cmd.Flags().Float64Var(&qps, "rate", sc.RateLimit, "queries per second across workers (0 = unlimited)")
	cmd.Flags().StringVar(&url, "target", sc.TargetURL, "base URL of a running API (default: in-process core)")
	cmd.Flags().DurationVar(&sample, "sample", 10*time.Second, "QPS sampling interval for the stability analysis")
	cmd.Flags().DurationVar(&phase, "phase", 3*time.Minute, "stability phase length")
	return cmd
}

func (c *cli) apocalypseCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "apocalypse",
		Short: "Run the extreme resilience scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.target(cmd, url, func(t stress.Target) error {
				rep, err := stress.RunScenarios(cmd.Context(), t)
				if err != nil {
					return err
				}
				_, err = rep.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&url, "target", c.cfg.Stress.TargetURL, "base URL of a running API (default: in-process core)")
	return cmd
}
