package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/learngl/glimpse"
	"github.com/oliverbestmann/learngl/pulse"
	"github.com/pkg/profile"
)

// DefaultClearColor is the dark teal all tutorial programs clear with.
var DefaultClearColor = pulse.ColorLinearRGBA(0.2, 0.3, 0.3, 1.0)

type RunOptions struct {
	// scene to run. Scene and Platform are required
	Scene    Scene
	Platform Platform

	Config Config

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// ClearColor defaults to DefaultClearColor
	ClearColor *pulse.Color

	DepthTest bool

	// InitialMix is the mix value of the first frame
	InitialMix float32
}

func Run(opts RunOptions) error {
	if opts.Scene == nil {
		return errors.New("Scene must not be nil")
	}

	if opts.Platform == nil {
		return errors.New("Platform must not be nil")
	}

	clearColor := DefaultClearColor
	if opts.ClearColor != nil {
		clearColor = *opts.ClearColor
	}

	if stop := startProfile(opts.Config.Profile); stop != nil {
		defer stop()
	}

	win, err := opts.Platform.OpenWindow(glimpse.Options{
		Width:     opts.WindowWidth,
		Height:    opts.WindowHeight,
		Title:     opts.WindowTitle,
		Resizable: true,
	})
	if err != nil {
		slog.Error("Failed to create window", slog.String("err", err.Error()))
		return &InitError{Op: "create window", Err: err}
	}

	defer win.Terminate()

	gl, err := opts.Platform.OpenGL()
	if err != nil {
		slog.Error("Failed to initialize OpenGL", slog.String("err", err.Error()))
		return &InitError{Op: "initialize opengl", Err: err}
	}

	ctx := pulse.NewContext(gl)

	// releases all resources while the context is still current
	defer ctx.Release()

	width, height := win.FramebufferSize()
	ctx.SetViewport(pulse.RectangleFromXYWH(0, 0, int32(width), int32(height)))

	win.OnResize(func(width, height int) {
		slog.Debug("Resize framebuffer",
			slog.Int("width", width),
			slog.Int("height", height),
		)

		ctx.SetViewport(pulse.RectangleFromXYWH(0, 0, int32(width), int32(height)))
	})

	ctx.SetClearColor(clearColor)
	ctx.SetDepthTest(opts.DepthTest)

	if err := opts.Scene.Setup(ctx); err != nil {
		return fmt.Errorf("setup scene: %w", err)
	}

	state := newLoopState(ctx, opts.InitialMix)

	for state.Phase == Running {
		if err := loopOnce(win, state, opts.Scene); err != nil {
			return err
		}
	}

	slog.Info("Render loop finished",
		slog.Uint64("frames", state.Frames.FrameCount),
		slog.Duration("maxFrameTime", state.Frames.MaxDuration),
	)

	return nil
}

func startProfile(mode string) func() {
	var option func(*profile.Profile)

	switch mode {
	case "":
		return nil
	case "cpu":
		option = profile.CPUProfile
	case "mem":
		option = profile.MemProfile
	default:
		slog.Warn("Unknown profile mode", slog.String("mode", mode))
		return nil
	}

	return profile.Start(option, profile.ProfilePath("."), profile.NoShutdownHook).Stop
}
