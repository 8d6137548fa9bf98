package ebitenhost

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a capture of the next drawn frame. The PNG is written to
// RunConfig.ScreenshotDir as <timestamp>_<level>_<label>.png. Without a directory
// the request is dropped.
func (g *Game) Screenshot(label string) {
	if g.cfg.ScreenshotDir == "" {
		return
	}
	g.shots = append(g.shots, label)
}

// queueCheckpointShots requests one capture per gesture checkpoint recorded
// since the previous frame.
func (g *Game) queueCheckpointShots() {
	r := g.diagram.GestureRunner()
	if r == nil || g.cfg.ScreenshotDir == "" {
		return
	}
	cps := r.Checkpoints()
	for _, cp := range cps[min(g.shotCheckpoints, len(cps)):] {
		g.Screenshot(cp.Label)
	}
	g.shotCheckpoints = len(cps)
}

// flushScreenshots writes every queued capture of screen. Called at the end
// of Draw.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.shots) == 0 {
		return
	}
	defer func() { g.shots = g.shots[:0] }()

	dir := g.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("screenshot directory", "dir", dir, "err", err)
		return
	}

	// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout;
	// the PNG encoder converts to straight alpha itself.
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	level := ""
	if cur := g.diagram.Level(); cur != nil {
		level = cur.Path()
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.shots {
		path := filepath.Join(dir, shotName(stamp, level, label))
		if err := encodeShot(path, img); err != nil {
			slog.Warn("screenshot", "err", err)
			continue
		}
		slog.Debug("screenshot written", "path", path)
	}
}

// shotName builds <stamp>_<level>_<label>.png. Level paths and labels are
// reduced to file-name-safe characters; the root level is "root".
func shotName(stamp, level, label string) string {
	if level == "" {
		level = "root"
	}
	if label = strings.TrimSpace(label); label == "" {
		label = "shot"
	}
	return fmt.Sprintf("%s_%s_%s.png", stamp, fileSafe(level), fileSafe(label))
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && (r == '-' || r == '.' || r >= '0' && r <= '9' ||
			r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return r
		}
		return '_'
	}, s)
}

// encodeShot writes img as a fast-compressed PNG at path.
func encodeShot(path string, img image.Image) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode screenshot %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	return nil
}
