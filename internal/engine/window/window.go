// Package window handles the SDL2 window and the 2D renderer the skeleton
// viewer draws debug lines with.
package window

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-skel/internal/engine/camera"
	"github.com/Faultbox/midgard-skel/internal/logger"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its accelerated renderer. Between
// BeginFrame and Present it implements anim.LineDrawer.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer

	proj  camera.Projector
	lines int
}

// New creates a new window with a 2D renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rflags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}
	if err := w.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		logger.Warn("failed to enable blending", zap.Error(err))
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the renderer and window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// BeginFrame clears the back buffer and sets the projection used by
// DrawLine until Present.
func (w *Window) BeginFrame(proj camera.Projector, background anim.Color) {
	w.proj = proj
	w.lines = 0
	r, g, b, a := background.RGBA8()
	w.renderer.SetDrawColor(r, g, b, a)
	w.renderer.Clear()
}

// DrawLine implements anim.LineDrawer.
func (w *Window) DrawLine(start, end math.Vec3, color anim.Color) {
	x0, y0, ok0 := w.proj.Project(start)
	x1, y1, ok1 := w.proj.Project(end)
	if !ok0 || !ok1 {
		return
	}
	r, g, b, a := color.RGBA8()
	w.renderer.SetDrawColor(r, g, b, a)
	w.renderer.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1))
	w.lines++
}

// Lines returns the number of lines drawn this frame.
func (w *Window) Lines() int {
	return w.lines
}

// Present shows the back buffer.
func (w *Window) Present() {
	w.renderer.Present()
}

// GetSize returns the current drawable size in pixels.
func (w *Window) GetSize() (int, int) {
	width, height, err := w.renderer.GetOutputSize()
	if err != nil {
		ww, wh := w.sdlWindow.GetSize()
		return int(ww), int(wh)
	}
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// ReadPixels copies the back buffer into an RGBA image. Call it before
// Present.
func (w *Window) ReadPixels() (*image.RGBA, error) {
	width, height := w.GetSize()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return img, nil
	}
	// ABGR8888 is R, G, B, A in memory order on little-endian hosts
	err := w.renderer.ReadPixels(nil, sdl.PIXELFORMAT_ABGR8888, unsafe.Pointer(&img.Pix[0]), img.Stride)
	if err != nil {
		return nil, fmt.Errorf("SDL_RenderReadPixels failed: %w", err)
	}
	return img, nil
}
