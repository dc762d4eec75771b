package view

import "github.com/go-gl/mathgl/mgl64"

// ClipNear clips a camera-space polygon, looking down -z, to the part with
// z <= -near. It returns nil when nothing is left.
func ClipNear(poly []mgl64.Vec3, near float64) []mgl64.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	inside := func(v mgl64.Vec3) bool { return v.Z() <= -near }

	var out []mgl64.Vec3
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, intersectNear(prev, cur, near), cur)
		case inside(prev):
			out = append(out, intersectNear(prev, cur, near))
		}
		prev = cur
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// intersectNear returns where segment a-b crosses z = -near.
func intersectNear(a, b mgl64.Vec3, near float64) mgl64.Vec3 {
	t := (-near - a.Z()) / (b.Z() - a.Z())
	return a.Add(b.Sub(a).Mul(t))
}

func (p *Projector) near() float64 {
	return p.Distance / 100
}

// ProjectFace clips the face against the near plane and returns its screen
// outline. ok is false when the whole face is behind the near plane.
func (p *Projector) ProjectFace(points []mgl64.Vec3, face []int) (xs, ys []float32, ok bool) {
	viewM, proj := p.matrices()
	poly := make([]mgl64.Vec3, len(face))
	for i, v := range face {
		poly[i] = viewM.Mul4x1(points[v].Vec4(1)).Vec3()
	}
	poly = ClipNear(poly, p.near())
	if poly == nil {
		return nil, nil, false
	}

	xs = make([]float32, len(poly))
	ys = make([]float32, len(poly))
	w, h := float64(p.Width), float64(p.Height)
	for i, v := range poly {
		c := proj.Mul4x1(v.Vec4(1))
		ndc := c.Vec3().Mul(1 / c.W())
		xs[i] = float32(w * (ndc.X() + 1) / 2)
		ys[i] = float32(h - h*(ndc.Y()+1)/2)
	}
	return xs, ys, true
}
