package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
	"github.com/ziadkadry99/apidash/internal/progress"
)

var (
	fetchParams    []string
	fetchHTML      bool
	fetchAll       bool
	fetchNoHistory bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [panel]",
	Short: "Fetch one panel, or every panel with --all, and print the result",
	Long: `Performs the same fetch as pressing a panel's button on the dashboard and
prints the rendered result. Panel inputs are passed with --param, e.g.

  apidash fetch weather --param city=Lisbon
  apidash fetch currency --param base=EUR --param symbols=USD,GBP

With --all, every panel that does not need user input is fetched
concurrently.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if fetchAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringArrayVarP(&fetchParams, "param", "p", nil, "panel input as key=value (repeatable)")
	fetchCmd.Flags().BoolVar(&fetchHTML, "html", false, "print the HTML fragment instead of text")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every panel that needs no input")
	fetchCmd.Flags().BoolVar(&fetchNoHistory, "no-history", false, "do not record the fetch in the history")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	params, err := parseParams(fetchParams)
	if err != nil {
		return err
	}

	var store *history.Store
	if !fetchNoHistory {
		s, database, err := openHistory(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer database.Close()
		store = s
	}

	f := &fetcher{registry: registry, history: store, logger: logger, html: fetchHTML}
	if fetchAll {
		return f.all(ctx, cmd.OutOrStdout(), progress.NewReporter(cmd.ErrOrStderr()))
	}
	return f.one(ctx, cmd.OutOrStdout(), args[0], params)
}

// fetcher runs panels from the command line.
type fetcher struct {
	registry *panels.Registry
	history  *history.Store
	logger   zerolog.Logger
	html     bool
}

func (f *fetcher) run(ctx context.Context, p *panels.Panel, params panels.Params) panels.Result {
	res := p.Fetch(ctx, params)
	if !res.OK && !res.Invalid {
		f.logger.Debug().Err(res.Err).Str("panel", p.ID).Msg("panel fetch failed")
	}
	if f.history != nil {
		if _, err := f.history.Record(context.WithoutCancel(ctx), history.FromResult(res, history.SourceCLI)); err != nil {
			f.logger.Warn().Err(err).Str("panel", p.ID).Msg("recording fetch")
		}
	}
	return res
}

func (f *fetcher) output(res panels.Result) string {
	if f.html {
		return string(res.HTML) + "\n"
	}
	return res.Text
}

func (f *fetcher) one(ctx context.Context, w io.Writer, id string, params panels.Params) error {
	p, ok := f.registry.Get(id)
	if !ok {
		var ids []string
		for _, p := range f.registry.List() {
			ids = append(ids, p.ID)
		}
		return fmt.Errorf("%w: %s (available: %s)", panels.ErrUnknownPanel, id, strings.Join(ids, ", "))
	}

	res := f.run(ctx, p, params)
	if !res.OK {
		return errors.New(res.Message)
	}
	_, err := io.WriteString(w, f.output(res))
	return err
}

// all fetches every panel without required input concurrently and prints
// the results in dashboard order.
func (f *fetcher) all(ctx context.Context, w io.Writer, reporter progress.Reporter) error {
	var todo []*panels.Panel
	for _, p := range f.registry.List() {
		if !p.NeedsInput() {
			todo = append(todo, p)
		}
	}

	results := make([]panels.Result, len(todo))
	reporter.Start(len(todo))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for i, p := range todo {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.run(ctx, p, nil)
			mu.Lock()
			done++
			reporter.Update(done, p.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()
	reporter.Finish()

	failed := 0
	for i, p := range todo {
		res := results[i]
		fmt.Fprintf(w, "== %s ==\n", p.Title)
		if res.OK {
			fmt.Fprint(w, f.output(res))
		} else {
			failed++
			fmt.Fprintln(w, res.Message)
		}
		fmt.Fprintln(w)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d panels failed", failed, len(todo))
	}
	return nil
}
