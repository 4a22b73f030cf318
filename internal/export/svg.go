// Package export renders canvases, trajectories, and cloth meshes to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/geom"
	"github.com/roberte777/miniphys/internal/viz"
)

const svgBackground = "#0a0a0a"

// CanvasToSVG converts a braille canvas to an SVG dot grid. Scale is the
// rendered size of one sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, svgBackground))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a polyline through the points, auto-fitted to the
// viewport with 10%% padding. Y increases upward, as in the simulators.
func TrajectoryToSVG(points []geom.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// MeshToSVG renders a cloth mesh as its constraint wireframe, fitted to the
// viewport. Pinned particles are marked with filled circles.
func MeshToSVG(mesh *cloth.Mesh, width, height int) string {
	if mesh == nil {
		return ""
	}
	particles := mesh.Particles()
	if len(particles) == 0 {
		return ""
	}

	minX, maxX := particles[0].Position.X, particles[0].Position.X
	minY, maxY := particles[0].Position.Y, particles[0].Position.Y
	for _, p := range particles {
		if p.Position.X < minX {
			minX = p.Position.X
		}
		if p.Position.X > maxX {
			maxX = p.Position.X
		}
		if p.Position.Y < minY {
			minY = p.Position.Y
		}
		if p.Position.Y > maxY {
			maxY = p.Position.Y
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.05
	toX := func(x float64) float64 {
		return (pad + (1-2*pad)*(x-minX)/rangeX) * float64(width)
	}
	// cloth Y grows downward; SVG shares that convention
	toY := func(y float64) float64 {
		return (pad + (1-2*pad)*(y-minY)/rangeY) * float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="#00ff00" stroke-width="1">
`, width, height, width, height, svgBackground))

	for _, c := range mesh.Constraints() {
		a, b := particles[c.A].Position, particles[c.B].Position
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, toX(a.X), toY(a.Y), toX(b.X), toY(b.Y)))
	}
	sb.WriteString("</g>\n<g fill=\"#ff5050\">\n")
	for _, p := range particles {
		if p.Pinned {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>
`, toX(p.Position.X), toY(p.Position.Y)))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
