package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// only rebuild the text every N frames
	hudUpdateInterval = 30
)

// HUD draws status lines in the top-right corner: the FPS counter and whatever Lines returns.
type HUD struct {
	ShowFPS bool
	// Lines is called every hudUpdateInterval frames. Optional.
	Lines func() []string

	frameCount uint32
	fpsText    string
	lines      []string
}

// NewHUD returns a HUD with the FPS counter shown.
func NewHUD(lines func() []string) *HUD {
	return &HUD{ShowFPS: true, Lines: lines}
}

// Draw renders the overlay. Call after the 3D pass.
func (h *HUD) Draw() {
	h.frameCount++
	if h.frameCount%hudUpdateInterval == 1 {
		h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		if h.Lines != nil {
			h.lines = h.Lines()
		}
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(hudPadding)
	draw := func(text string) {
		w := rl.MeasureText(text, hudFontSize)
		rl.DrawText(text, screenW-w-hudPadding, y, hudFontSize, rl.Green)
		y += hudLineHeight
	}
	if h.ShowFPS {
		draw(h.fpsText)
	}
	for _, line := range h.lines {
		draw(line)
	}
}
