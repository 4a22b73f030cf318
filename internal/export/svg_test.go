package export

import (
	"strings"
	"testing"

	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/geom"
	"github.com/roberte777/miniphys/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.Set(1, 1)
	c.Set(2, 3)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("got %d circles, want 2", got)
	}

	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should produce empty output")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	points := []geom.Vec2{geom.V(0, 0), geom.V(1, 2), geom.V(2, 0)}
	svg := TrajectoryToSVG(points, 200, 100, "#fff")

	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("got %d line segments, want 2", got)
	}

	if TrajectoryToSVG(points[:1], 200, 100, "#fff") != "" {
		t.Error("single point should produce empty output")
	}
}

func TestMeshToSVG(t *testing.T) {
	mesh, err := cloth.New(3, 3, 10)
	if err != nil {
		t.Fatal(err)
	}

	svg := MeshToSVG(mesh, 400, 300)
	if got := strings.Count(svg, "<line"); got != len(mesh.Constraints()) {
		t.Errorf("got %d lines, want %d", got, len(mesh.Constraints()))
	}

	pinned := 0
	for _, p := range mesh.Particles() {
		if p.Pinned {
			pinned++
		}
	}
	if got := strings.Count(svg, "<circle"); got != pinned {
		t.Errorf("got %d pin markers, want %d", got, pinned)
	}

	if MeshToSVG(nil, 100, 100) != "" {
		t.Error("nil mesh should produce empty output")
	}
}
