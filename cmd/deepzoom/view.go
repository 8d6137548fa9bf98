package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/deepzoom"
	"github.com/phanxgames/deepzoom/ebitenhost"
)

var (
	viewWidth  int
	viewHeight int
	showFPS    bool
	scriptFile string
	shotDir    string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the scene in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, level, err := loadSettings(cmd.Context())
		if err != nil {
			return err
		}

		layer := ebitenhost.NewCanvasLayer()
		d, err := deepzoom.NewDiagram(deepzoom.Options{
			Viewport: deepzoom.Rect{Width: float64(viewWidth), Height: float64(viewHeight)},
			Render:   layer,
			Config:   &cfg,
			Logger:   slog.Default(),
			Level:    level,
		})
		if err != nil {
			return err
		}
		defer d.Close()

		if scriptFile != "" {
			runner, err := loadScript(scriptFile)
			if err != nil {
				return err
			}
			d.SetGestureRunner(runner)
		}

		return ebitenhost.Run(d, layer, ebitenhost.RunConfig{
			Title:         "deepzoom: " + level.Name,
			Width:         viewWidth,
			Height:        viewHeight,
			ShowFPS:       showFPS,
			ShowDebug:     debug,
			Resizable:     true,
			ScreenshotDir: shotDir,
		})
	},
}

func init() {
	viewCmd.Flags().IntVar(&viewWidth, "width", 1280, "window width")
	viewCmd.Flags().IntVar(&viewHeight, "height", 720, "window height")
	viewCmd.Flags().BoolVar(&showFPS, "fps", false, "show frame rate")
	viewCmd.Flags().StringVar(&scriptFile, "script", "", "gesture script (JSON) to play on open")
	viewCmd.Flags().StringVar(&shotDir, "shots", "", "directory for screenshots (F12 and script checkpoints)")
	rootCmd.AddCommand(viewCmd)
}
