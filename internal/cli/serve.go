package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/server"
	"github.com/roomml/roomml/pkg/store"
	"github.com/roomml/roomml/pkg/watch"
)

const shutdownTimeout = 5 * time.Second

// serveFlags holds the serve command's flags.
type serveFlags struct {
	addr      string
	store     string
	storeDir  string
	mongoURI  string
	mongoDB   string
	watchFile string
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the roomml HTTP API.

Endpoints validate, lay out and render posted documents, and store named
documents in memory, on disk (--store file) or in MongoDB (--store mongo).

With --watch, the given file is re-run on every save and the result is pushed
to every client of the /v1/live websocket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyServeConfig(cmd, &f)
			return c.runServe(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (default from config or :8080)")
	cmd.Flags().StringVar(&f.store, "store", "", "document store: memory, file, mongo")
	cmd.Flags().StringVar(&f.storeDir, "store-dir", "", "directory for the file store")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&f.watchFile, "watch", "", "publish this file to /v1/live whenever it changes")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// applyServeConfig fills flags that were not given from the config file.
func (c *CLI) applyServeConfig(cmd *cobra.Command, f *serveFlags) {
	cfg := c.cfg().Serve
	fill := func(name string, dst *string, v string) {
		if !cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	fill("addr", &f.addr, cfg.Addr)
	fill("store", &f.store, cfg.Store)
	fill("store-dir", &f.storeDir, cfg.StoreDir)
	fill("mongo-uri", &f.mongoURI, cfg.MongoURI)
	fill("mongo-db", &f.mongoDB, cfg.MongoDatabase)
}

func (c *CLI) openStore(ctx context.Context, f serveFlags) (store.Store, error) {
	switch f.store {
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeFile:
		return store.NewFileStore(f.storeDir)
	case storeMongo:
		c.Logger.Info("connecting to mongo", "database", f.mongoDB)
		return store.NewMongoStore(ctx, f.mongoURI, f.mongoDB)
	}
	return nil, fmt.Errorf("unknown store %q (must be memory, file or mongo)", f.store)
}

func (c *CLI) runServe(ctx context.Context, f serveFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.openStore(ctx, f)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	srv := server.New(runner, st, c.Logger)
	httpServer := &http.Server{
		Addr:              f.addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)
	go func() {
		c.Logger.Info("listening", "addr", f.addr, "store", f.store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	if f.watchFile != "" {
		go func() {
			errc <- watch.File(ctx, f.watchFile, 0, func(ctx context.Context) error {
				c.publish(ctx, runner, srv.Hub(), f.watchFile)
				return nil
			})
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}

// publish runs path through the pipeline and pushes the result to the hub.
func (c *CLI) publish(ctx context.Context, runner *pipeline.Runner, hub *server.Hub, path string) {
	res, err := c.analyze(ctx, runner, path, pipeline.Options{})
	if err != nil {
		c.Logger.Error("watch run failed", "source", path, "error", err)
		return
	}
	if err := hub.Publish(path, res); err != nil {
		c.Logger.Error("publish failed", "error", err)
		return
	}
	errs, warns := res.Stats.Errors, res.Stats.Warnings
	c.Logger.Info("published", "source", path, "clients", hub.Len(), "errors", errs, "warnings", warns)
}
