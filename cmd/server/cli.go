package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/directions-api/internal/config"
	"github.com/phrazzld/directions-api/internal/domain"
	"github.com/phrazzld/directions-api/internal/geometry"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "directions-api",
		Short:        "Serve the directions API",
		Long:         "Serve the directions API. Configuration is read from config.yaml, DIRECTIONS_* environment variables and flags, in increasing precedence.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log := logger.New(cfg.Server, os.Stdout)
			log.Info("server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"compress", cfg.Server.Compress,
				"engine_version", cfg.Routing.EngineVersion)

			app, err := newApplication(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.startHTTPServer(cmd.Context(), app.setupRouter())
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.Flags().IntP("port", "p", 8080, "HTTP listen port")
	root.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.Flags().Bool("compress", true, "gzip responses when the client accepts it")

	root.AddCommand(newPolylineCmd())
	return root
}

func newPolylineCmd() *cobra.Command {
	var elevation bool

	cmd := &cobra.Command{
		Use:   "polyline",
		Short: "Encode or decode route geometry polylines",
	}
	cmd.PersistentFlags().BoolVarP(&elevation, "elevation", "e", false, "points carry elevation as a third value")

	cmd.AddCommand(&cobra.Command{
		Use:   "encode [<json points>]",
		Short: "Encode a JSON array of [lon, lat(, elevation)] points",
		Long:  "Encode a JSON array of [lon, lat(, elevation)] points. The points are read from the argument or, without one, from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := input(cmd, args)
			if err != nil {
				return err
			}
			points, err := readPoints(in, elevation)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), geometry.Encode(points, elevation))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode [<polyline>]",
		Short: "Decode a polyline into a JSON array of points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := input(cmd, args)
			if err != nil {
				return err
			}
			points, err := geometry.Decode(strings.TrimSpace(in), elevation)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(geometry.Plain(points, elevation))
		},
	})

	return cmd
}

func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func readPoints(s string, elevation bool) ([]domain.Point, error) {
	var tuples [][]float64
	if err := json.Unmarshal([]byte(s), &tuples); err != nil {
		return nil, fmt.Errorf("points must be a JSON array of numeric tuples: %w", err)
	}

	dims := 2
	if elevation {
		dims = 3
	}
	points := make([]domain.Point, len(tuples))
	for i, t := range tuples {
		if len(t) != dims {
			return nil, fmt.Errorf("point %d has %d values, want %d", i, len(t), dims)
		}
		points[i] = domain.Point{Lon: t[0], Lat: t[1]}
		if elevation {
			points[i].Elevation = t[2]
		}
	}
	return points, nil
}
