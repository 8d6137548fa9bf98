package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/deepzoom"
	"github.com/phanxgames/deepzoom/config"
	"github.com/phanxgames/deepzoom/scenefile"
)

var (
	cfgFile   string
	sceneFile string
	startPath string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "deepzoom",
	Short: "Infinite pan/zoom viewer for nested diagrams",
	Long: `deepzoom shows a spatially nested scene tree on an infinite canvas.
Zooming into a group that has contents switches the view into it; zooming
out far enough returns to the parent.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "deepzoom.yml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&sceneFile, "scene", "s", "", "scene file (YAML); a built-in demo scene when empty")
	rootCmd.PersistentFlags().StringVar(&startPath, "level", "", "path of the level to open, e.g. library/reading-room")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadSettings reads the configuration and the scene level to open.
func loadSettings(ctx context.Context) (deepzoom.Config, *deepzoom.ViewGroup, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, nil, err
	}
	if debug {
		cfg.Debug = true
	}

	var provider deepzoom.SceneProvider = deepzoom.StaticProvider{Root: demoScene()}
	if sceneFile != "" {
		provider = scenefile.NewProvider(sceneFile)
	}
	level, err := provider.Load(ctx, startPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, level, nil
}
