package graphics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"box2d-shapes/internal/scene"
)

const (
	gridExtent     = 20
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 90
	axisLineAlpha  = 160
	sphereRings    = 8
)

// Viewer draws the nodes of a scene over an editor grid with an orbiting camera.
// Nodes whose material is a wireframe are drawn as wires in the material colour; other nodes
// are drawn as grey wires.
type Viewer struct {
	Camera rl.Camera3D
	scene  *scene.Scene
	hud    *HUD
}

// NewViewer returns a viewer for s with the camera at (10,10,10) looking at the origin.
func NewViewer(s *scene.Scene, hud *HUD) *Viewer {
	v := &Viewer{scene: s, hud: hud}
	v.Camera.Position = rl.NewVector3(10, 10, 10)
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	return v
}

// Update moves the camera.
func (v *Viewer) Update() {
	rl.UpdateCamera(&v.Camera, rl.CameraOrbital)
}

// Draw renders the grid, the nodes and the HUD.
func (v *Viewer) Draw() {
	rl.BeginMode3D(v.Camera)
	drawEditorGrid()
	for _, n := range v.scene.Nodes() {
		drawNode(n)
	}
	rl.EndMode3D()
	if v.hud != nil {
		v.hud.Draw()
	}
}

func nodeColor(n *scene.Node) rl.Color {
	if n.Material == nil || !n.Material.Wireframe {
		return rl.Gray
	}
	c := n.Material.Color
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// drawNode applies the node transform (rotation in Y, X, Z order) and draws its geometry
// around the local origin.
func drawNode(n *scene.Node) {
	rl.PushMatrix()
	defer rl.PopMatrix()

	rl.Translatef(float32(n.Position.X), float32(n.Position.Y), float32(n.Position.Z))
	rl.Rotatef(degrees(n.Rotation.Y), 0, 1, 0)
	rl.Rotatef(degrees(n.Rotation.X), 1, 0, 0)
	rl.Rotatef(degrees(n.Rotation.Z), 0, 0, 1)
	rl.Scalef(float32(n.Scaling.X), float32(n.Scaling.Y), float32(n.Scaling.Z))

	origin := rl.NewVector3(0, 0, 0)
	c := nodeColor(n)
	switch n.Geometry.Kind {
	case scene.GeometryBox:
		size := float32(n.Geometry.Size)
		rl.DrawCubeWires(origin, size, size, size, c)
	case scene.GeometrySphere:
		rl.DrawSphereWires(origin, float32(n.Geometry.Diameter/2), sphereRings, int32(max(n.Geometry.Segments, 3))*2, c)
	}
}

func degrees(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and the three axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
