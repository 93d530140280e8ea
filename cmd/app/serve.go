package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"carebridge/cmd/fx/account_fx"
	"carebridge/cmd/fx/config_fx"
	"carebridge/cmd/fx/continuity_fx"
	"carebridge/cmd/fx/controllers_fx"
	"carebridge/cmd/fx/db_fx"
	"carebridge/cmd/fx/link_fx"
	"carebridge/cmd/fx/logger_fx"
	"carebridge/cmd/fx/note_fx"
	"carebridge/cmd/fx/session_fx"
	"carebridge/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(appOptions())
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func appOptions() fx.Option {
	return fx.Options(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		account_fx.Module,
		link_fx.Module,
		session_fx.Module,
		note_fx.Module,
		continuity_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
	)
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
