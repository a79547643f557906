package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/brickmesh/internal/config"
	"github.com/Faultbox/brickmesh/internal/scene"
)

// Run opens a window and renders the scene until the user quits.
// Left mouse drag orbits, the wheel zooms, Escape closes.
func Run(scn *scene.Scene, title string, cfg config.ViewerConfig) error {
	win, err := NewWindow(WindowConfig{
		Title:      title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := NewRenderer(scn)
	if err != nil {
		return err
	}
	defer renderer.Close()

	cam := NewOrbitCamera()
	cam.FitToBounds(scn.Bounds())

	var frameDelay uint32
	if cfg.FPSLimit > 0 {
		frameDelay = uint32(1000 / cfg.FPSLimit)
	}

	dragging := false
	lastX, lastY := int32(0), int32(0)

	for {
		frameStart := sdl.GetTicks()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil

			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return nil
				}

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
					lastX, lastY = e.X, e.Y
				}

			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.X-lastX), float32(e.Y-lastY))
					lastX, lastY = e.X, e.Y
				}

			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))
			}
		}

		w, h := win.GetSize()
		renderer.Draw(w, h, cam)
		win.SwapBuffers()

		if frameDelay > 0 {
			elapsed := sdl.GetTicks() - frameStart
			if elapsed < frameDelay {
				sdl.Delay(frameDelay - elapsed)
			}
		}
	}
}
