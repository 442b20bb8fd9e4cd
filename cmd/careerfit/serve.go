package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apihttp "careerfit-workers/internal/api/http"
	"careerfit-workers/internal/api/http/handlers"
	"careerfit-workers/internal/app"
	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/config"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the career prediction HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.ListenAddress = addr
			}
			log := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log, appName)
			if err != nil {
				return err
			}
			defer a.Close()

			server := apihttp.NewApp(apihttp.ServerConfig{
				ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
				WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout),
			}, log)
			apihttp.Register(server,
				handlers.NewCareerHandler(a.Service, careerfit.DefaultResourceLibrary(), log),
				handlers.NewHealthHandler(config.GetDuration(cfg.HTTP.ReadTimeout), a.Pingers()...),
			)

			log.Info("HTTP API listening", map[string]interface{}{"address": cfg.HTTP.ListenAddress})
			return apihttp.Serve(ctx, server, cfg.HTTP.ListenAddress)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "", "listen address, overrides http.listen_address")
	return cmd
}
