package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/linqsamples/internal/app"
	"github.com/phenrril/linqsamples/internal/config"
	"github.com/phenrril/linqsamples/internal/report/xlsx"
	"github.com/phenrril/linqsamples/internal/usecase"
)

type cli struct {
	cfg config.Config

	locale  string
	fixture string
	source  string
	envFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "linqsamples",
		Short:         "Query exercises over an in-memory customers, orders, suppliers and products dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.locale, "locale", "", "BCP 47 locale for numbers (empty: invariant)")
	flags.StringVar(&c.fixture, "fixture", "", "YAML dataset file instead of the embedded one")
	flags.StringVar(&c.source, "source", "", "dataset source: fixture or postgres")
	flags.StringVar(&c.envFile, "env-file", "", "load variables from this file instead of ./.env")

	root.AddCommand(c.listCmd(), c.runCmd(), c.exportCmd(), c.serveCmd(), c.seedCmd())
	return root
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	var err error
	if c.envFile != "" {
		c.cfg, err = config.LoadFile(c.envFile)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("locale") {
		c.cfg.Locale = c.locale
	}
	if flags.Changed("fixture") {
		c.cfg.FixturePath = c.fixture
	}
	if flags.Changed("source") {
		c.cfg.Source = c.source
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	zerolog.SetGlobalLevel(c.cfg.Level())
	return nil
}

func (c *cli) open(ctx context.Context) (*app.App, error) {
	return app.NewApp(ctx, c.cfg)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			out := cmd.OutOrStdout()
			for _, e := range a.Exercises.List() {
				fmt.Fprintf(out, "%s\t%s\t%s\n", e.ID, e.Title, e.Description)
			}
			return nil
		},
	}
}

// runSelected runs ids, or every exercise when all is set.
func runSelected(ctx context.Context, uc *usecase.ExerciseUC, ids []string, all bool) ([]usecase.Result, error) {
	if all {
		return uc.RunAll(ctx)
	}
	if len(ids) == 0 {
		return nil, errors.New("pass exercise ids or --all")
	}
	return uc.RunAll(ctx, ids...)
}

func (c *cli) runCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "run [id...]",
		Short: "Run exercises and print their output",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			results, err := runSelected(cmd.Context(), a.Exercises, args, all)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "=== %s: %s\n", r.Exercise.Title, r.Exercise.Description)
				for _, l := range r.Lines {
					fmt.Fprintln(out, l)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "run every exercise")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Write exercise output to an XLSX workbook, one sheet per exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			results, err := runSelected(cmd.Context(), a.Exercises, args, len(args) == 0)
			if err != nil {
				return err
			}
			sheets := make([]xlsx.Sheet, 0, len(results))
			for _, r := range results {
				sheets = append(sheets, xlsx.Sheet{ID: r.Exercise.ID, Title: r.Exercise.Title, Lines: r.Lines})
			}
			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "create workbook")
			}
			if err := xlsx.Write(f, sheets); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			zlog.Info().Str("file", outPath).Int("sheets", len(sheets)).Msg("workbook written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "exercises.xlsx", "output file")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the exercises over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(a.HTTPHandler(), c.cfg.Port)
		},
	}
}

// listen falls back to the next free port in 8081..8090 when port is taken.
func listen(port string) (net.Listener, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err == nil {
		return ln, nil
	}
	for p := 8081; p <= 8090; p++ {
		if l2, err2 := net.Listen("tcp", net.JoinHostPort("", fmt.Sprint(p))); err2 == nil {
			zlog.Warn().Str("wanted", port).Int("port", p).Msg("port busy, using fallback")
			return l2, nil
		}
	}
	return nil, errors.Wrapf(err, "listen on %s", port)
}

func serve(h http.Handler, port string) error {
	ln, err := listen(port)
	if err != nil {
		return err
	}
	server := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate the Postgres schema and load the fixture into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Seed(cmd.Context(), c.cfg)
		},
	}
}
