package render

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/config"
)

// Hooks are the callbacks Run drives. Any of them may be nil.
type Hooks struct {
	// Ready runs once, after the window and GL context exist.
	Ready func()
	// Update runs every frame with the time elapsed since the previous frame.
	Update func(dt time.Duration)
	// Clear returns the background color for the frame.
	Clear func() rl.Color
	// Draw renders the frame.
	Draw func()
	// Shutdown runs after the loop ends, while the GL context is still alive.
	Shutdown func()
}

// Run opens the window and drives the main loop until the window is closed.
func Run(win config.Window, h Hooks) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	if win.TargetFPS > 0 {
		rl.SetTargetFPS(int32(win.TargetFPS))
	}
	if h.Ready != nil {
		h.Ready()
	}

	for !rl.WindowShouldClose() {
		if h.Update != nil {
			dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
			h.Update(dt)
		}

		rl.BeginDrawing()
		bg := rl.Black
		if h.Clear != nil {
			bg = h.Clear()
		}
		rl.ClearBackground(bg)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
	}

	if h.Shutdown != nil {
		h.Shutdown()
	}
}
