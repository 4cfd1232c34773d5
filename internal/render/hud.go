package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/logger"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	hudLogLines   = 5
	hudLogSize    = 16
	// updateInterval: FPS text is rebuilt every N frames to limit allocations.
	updateInterval = 30
)

var hudLogColor = rl.NewColor(230, 230, 230, 220)

// hud draws the FPS counter (top right) and the newest log lines (bottom left).
type hud struct {
	log        *logger.Logger
	opts       Options
	frameCount uint32
	fpsText    string
}

func newHUD(log *logger.Logger, opts Options) *hud {
	return &hud{log: log, opts: opts}
}

func (h *hud) draw() {
	h.frameCount++
	if h.opts.ShowFPS {
		if h.fpsText == "" || h.frameCount%updateInterval == 0 {
			h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(h.fpsText, hudFontSize)
		rl.DrawText(h.fpsText, int32(rl.GetScreenWidth())-w-hudPadding, hudPadding, hudFontSize, rl.Green)
	}
	if h.opts.ShowLog && h.log != nil {
		lines := h.log.Tail(hudLogLines)
		y := int32(rl.GetScreenHeight()) - hudPadding - int32(len(lines))*hudLineHeight
		for _, line := range lines {
			if len(line) > 120 {
				line = line[:117] + "..."
			}
			rl.DrawText(line, hudPadding, y, hudLogSize, hudLogColor)
			y += hudLineHeight
		}
	}
}
