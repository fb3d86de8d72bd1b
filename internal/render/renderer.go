package render

import "image/color"

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. The viewer only talks to this interface, so it can be
// driven headless in tests.
type Renderer interface {
	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to.
// It abstracts the underlying image implementation.
type Image interface {
	Size() (width, height int)
	Fill(clr color.Color)
}

// InputManager handles input from the user (keyboard).
type InputManager interface {
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the viewer controls
const (
	KeyW Key = iota // next source
	KeyS            // previous source
	KeyV            // toggle variation
	KeyM            // cycle draw mode
	KeyUp           // more lighthouses
	KeyDown         // fewer lighthouses
	KeyLeft         // previous target
	KeyRight        // next target
	KeyEscape
)

// Game represents the game interface that the engine will call.
// This is typically implemented by the viewer.
type Game interface {
	// Update updates the scene. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the engine that manages the main loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the main loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
