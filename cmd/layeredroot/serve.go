package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/layerkit/layeredroot"
	"github.com/layerkit/layeredroot/conf"
	"github.com/layerkit/layeredroot/server"
)

func newServeCommand() *cobra.Command {
	var configPath, settingsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured site with layer overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()

			settings, err := loadSettings(fsys, settingsPath)
			if err != nil {
				return err
			}
			level, err := settings.slogLevel()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			site, err := conf.Load(fsys, configPath)
			if err != nil {
				return err
			}

			resolver := layeredroot.New(
				layeredroot.WithFs(fsys),
				layeredroot.WithLogger(logger),
			)
			pipeline := server.NewPipeline()
			server.Register(pipeline, resolver)

			handler := server.NewHandler(site, pipeline,
				server.WithFs(fsys),
				server.WithLogger(logger),
				server.WithAccessLog(*settings.AccessLog),
			)

			// A Listen directive in the site config wins over the
			// settings file.
			addr := settings.Listen
			if site.Listen != "" {
				addr = site.Listen
			}
			logger.Info("listening", "addr", addr, "config", configPath)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "site.conf", "directive configuration file")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "optional YAML settings file")

	return cmd
}
