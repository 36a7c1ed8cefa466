// Package graphics opens a raylib window that shows the editor scene as wireframes.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Title  string
	Width  int32
	Height int32
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// (input, camera), then clears the screen and calls draw.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
