package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/deepzoom"
	"github.com/phanxgames/deepzoom/ecs"
)

var (
	replayWidth  float64
	replayHeight float64
	frameTime    time.Duration
	maxFrames    int
	jsonOutput   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Play a gesture script headlessly and print checkpoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, level, err := loadSettings(cmd.Context())
		if err != nil {
			return err
		}
		runner, err := loadScript(args[0])
		if err != nil {
			return err
		}
		res, err := replay(cfg, level, runner)
		if err != nil {
			return err
		}
		return res.write(cmd.OutOrStdout(), jsonOutput)
	},
}

func init() {
	replayCmd.Flags().Float64Var(&replayWidth, "width", 1280, "viewport width")
	replayCmd.Flags().Float64Var(&replayHeight, "height", 720, "viewport height")
	replayCmd.Flags().DurationVar(&frameTime, "frame", time.Second/60, "simulated frame duration")
	replayCmd.Flags().IntVar(&maxFrames, "max-frames", 36000, "stop after this many frames")
	replayCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.AddCommand(replayCmd)
}

func loadScript(path string) (*deepzoom.GestureRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return deepzoom.LoadGestureScript(data)
}

type replayResult struct {
	Frames      int                   `json:"frames"`
	Checkpoints []deepzoom.Checkpoint `json:"checkpoints"`
	Pans        int                   `json:"pans"`
	Zooms       int                   `json:"zooms"`
	Levels      []string              `json:"levels"`
	Errors      []string              `json:"errors,omitempty"`
}

// replay drives a headless Diagram frame by frame on a manual clock until
// the script is done and the last animation settled.
func replay(cfg deepzoom.Config, level *deepzoom.ViewGroup, runner *deepzoom.GestureRunner) (*replayResult, error) {
	clock := deepzoom.NewManualClock(time.Unix(0, 0))
	layer := deepzoom.NewRecordingLayer()
	d, err := deepzoom.NewDiagram(deepzoom.Options{
		Viewport: deepzoom.Rect{Width: replayWidth, Height: replayHeight},
		Render:   layer,
		Config:   &cfg,
		Clock:    clock,
		Logger:   slog.Default(),
	})
	if err != nil {
		return nil, err
	}
	defer d.Close()

	// Camera and level events are counted through an ECS world, the way a
	// game would consume them.
	world := donburi.NewWorld()
	bridge := ecs.NewDonburiBridge(world, d.Camera())
	camHandle := d.Camera().AttachObserver(bridge)
	defer camHandle.Remove()
	lvlHandle := d.References().OnLevelChanged(bridge.LevelChanged)
	defer lvlHandle.Remove()

	res := &replayResult{}
	ecs.CameraEventType.Subscribe(world, func(w donburi.World, e ecs.CameraEvent) {
		switch e.Kind {
		case ecs.CameraPanned:
			res.Pans++
		case ecs.CameraZoomed:
			res.Zooms++
		}
	})
	ecs.LevelEventType.Subscribe(world, func(w donburi.World, e ecs.LevelEvent) {
		res.Levels = append(res.Levels, e.Change.String()+" /"+e.Path)
	})

	d.SetLevel(level)
	d.SetGestureRunner(runner)

	for res.Frames < maxFrames {
		if runner.Done() && !d.Navigator().Animating() && d.Pending() == 0 {
			break
		}
		clock.Advance(frameTime)
		d.Update()
		ecs.CameraEventType.ProcessEvents(world)
		ecs.LevelEventType.ProcessEvents(world)
		res.Frames++
	}
	if res.Frames >= maxFrames {
		slog.Warn("replay stopped at frame limit", "frames", maxFrames)
	}

	res.Checkpoints = runner.Checkpoints()
	for _, err := range runner.Errors() {
		res.Errors = append(res.Errors, err.Error())
	}
	return res, nil
}

func (r *replayResult) write(w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(w, "frames: %d  pans: %d  zooms: %d\n", r.Frames, r.Pans, r.Zooms)
	for _, l := range r.Levels {
		fmt.Fprintf(w, "level %s\n", l)
	}
	for _, cp := range r.Checkpoints {
		fmt.Fprintf(w, "%-16s frame %5d  /%-24s scale %-10.4g center (%.2f, %.2f)  %s\n",
			cp.Label, cp.Frame, cp.Level, cp.Scale, cp.CenterX, cp.CenterY, cp.State)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	return nil
}
