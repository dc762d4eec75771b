// Package view turns mesh coordinates into screen positions for the mesh
// viewer. It has no dependency on the window toolkit.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const maxPitch = math.Pi/2 - 0.01

// Projector is a perspective camera orbiting a target point.
type Projector struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
	FovY     float64 // radians

	Width, Height int
}

// NewProjector frames the bounding box of points on a width by height
// screen.
func NewProjector(points []mgl64.Vec3, width, height int) *Projector {
	p := &Projector{Distance: 1, FovY: mgl64.DegToRad(45), Width: width, Height: height}
	if len(points) == 0 {
		return p
	}
	lo, hi := points[0], points[0]
	for _, v := range points[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	p.Target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius > 0 {
		p.Distance = radius / math.Sin(p.FovY/2) * 1.1
	}
	return p
}

// Eye returns the camera position.
func (p *Projector) Eye() mgl64.Vec3 {
	cp := math.Cos(p.Pitch)
	dir := mgl64.Vec3{cp * math.Sin(p.Yaw), math.Sin(p.Pitch), cp * math.Cos(p.Yaw)}
	return p.Target.Add(dir.Mul(p.Distance))
}

// Orbit turns the camera around the target. Pitch stops short of the poles.
func (p *Projector) Orbit(dYaw, dPitch float64) {
	p.Yaw += dYaw
	p.Pitch = mgl64.Clamp(p.Pitch+dPitch, -maxPitch, maxPitch)
}

// Zoom scales the distance to the target.
func (p *Projector) Zoom(factor float64) {
	if factor > 0 {
		p.Distance *= factor
	}
}

func (p *Projector) matrices() (mgl64.Mat4, mgl64.Mat4) {
	viewM := mgl64.LookAtV(p.Eye(), p.Target, mgl64.Vec3{0, 1, 0})
	aspect := 1.0
	if p.Height > 0 {
		aspect = float64(p.Width) / float64(p.Height)
	}
	proj := mgl64.Perspective(p.FovY, aspect, p.near(), p.Distance*100)
	return viewM, proj
}

// Project maps v to screen coordinates with y growing downwards. ok is false
// for points behind the camera.
func (p *Projector) Project(v mgl64.Vec3) (x, y float64, ok bool) {
	viewM, proj := p.matrices()
	if viewM.Mul4x1(v.Vec4(1)).Z() >= 0 {
		return 0, 0, false
	}
	win := mgl64.Project(v, viewM, proj, 0, 0, p.Width, p.Height)
	return win.X(), float64(p.Height) - win.Y(), true
}

// ProjectAll projects every point; ok[i] reports whether point i is in
// front of the camera.
func (p *Projector) ProjectAll(points []mgl64.Vec3) (xs, ys []float32, ok []bool) {
	viewM, proj := p.matrices()
	xs = make([]float32, len(points))
	ys = make([]float32, len(points))
	ok = make([]bool, len(points))
	for i, v := range points {
		if viewM.Mul4x1(v.Vec4(1)).Z() >= 0 {
			continue
		}
		win := mgl64.Project(v, viewM, proj, 0, 0, p.Width, p.Height)
		xs[i], ys[i], ok[i] = float32(win.X()), float32(float64(p.Height)-win.Y()), true
	}
	return xs, ys, ok
}
