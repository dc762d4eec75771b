package view

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// DepthOrder returns face indices with the faces farthest from eye first,
// measured at their centroids. Ties keep face order.
func DepthOrder(points []mgl64.Vec3, faces [][]int, eye mgl64.Vec3) []int {
	dist := make([]float64, len(faces))
	for f, face := range faces {
		var c mgl64.Vec3
		for _, v := range face {
			c = c.Add(points[v])
		}
		if len(face) > 0 {
			c = c.Mul(1 / float64(len(face)))
		}
		dist[f] = c.Sub(eye).Len()
	}

	order := make([]int, len(faces))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dist[order[i]] > dist[order[j]]
	})
	return order
}

// FaceNormal returns the unit normal of a planar polygon by Newell's method,
// or the zero vector for a degenerate face.
func FaceNormal(points []mgl64.Vec3, face []int) mgl64.Vec3 {
	var n mgl64.Vec3
	for i, v := range face {
		a, b := points[v], points[face[(i+1)%len(face)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

// Palette returns n well separated opaque colors, one per component.
func Palette(n int) []color.RGBA {
	const golden = 0.618033988749895
	out := make([]color.RGBA, n)
	h := 0.0
	for i := range out {
		out[i] = hsv(h, 0.65, 0.95)
		h = math.Mod(h+golden, 1)
	}
	return out
}

// Shade darkens c by the cosine between normal and the direction to light.
func Shade(c color.RGBA, normal, light mgl64.Vec3) color.RGBA {
	k := 0.35
	if l := light.Len(); l > 0 && normal.Len() > 0 {
		k += 0.65 * math.Abs(normal.Dot(light)/l)
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

func hsv(h, s, v float64) color.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p, q, t := v*(1-s), v*(1-f*s), v*(1-(1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
