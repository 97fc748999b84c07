package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	adapthttp "growthchart/internal/adapter/http"
	"growthchart/internal/adapter/sheets"
	"growthchart/internal/app"
	"growthchart/internal/config"
	"growthchart/internal/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateMirror(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	birth, err := cfg.Birth()
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// The in-memory store has no separate migrate run to seed it.
	if cfg.Database.Driver == "memory" {
		if _, _, err := migrate(ctx, st, cfg.Seed); err != nil {
			return err
		}
	}
	if err := checkSchema(ctx, st); err != nil {
		return err
	}

	mirror, err := openMirror(ctx, cfg.Mirror, cfg.Credentials)
	if err != nil {
		return err
	}

	logger := log.StandardLogger()
	ms := app.NewMeasurementService(st, mirror, birth,
		app.WithLocation(loc),
		app.WithMirrorTimeout(cfg.Mirror.Timeout),
		app.WithLogger(logger),
	)
	cs := app.NewChartService(st, table, birth)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(ms, cs, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openMirror(ctx context.Context, c config.Mirror, credentials string) (domain.Mirror, error) {
	if !c.Enabled {
		log.Warn("spreadsheet mirror disabled")
		return domain.NoopMirror{}, nil
	}
	srv, err := sheets.NewService(ctx, credentials, c.Timeout)
	if err != nil {
		return nil, err
	}
	m := sheets.New(srv, c.SpreadsheetID, c.Worksheet)
	if c.VerifyOnStart {
		vctx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()
		if err := m.Verify(vctx); err != nil {
			return nil, err
		}
	}
	log.WithFields(log.Fields{"spreadsheet": c.SpreadsheetID, "worksheet": c.Worksheet}).Info("spreadsheet mirror ready")
	return m, nil
}
