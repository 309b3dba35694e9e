package world

import (
	"math"

	"github.com/golangdaddy/laneshift/pkg/transform"
)

// Box is an oriented collider resolved into world space
type Box struct {
	Name        string
	Layer       string
	Center      transform.Vec3
	Rotation    transform.Rotation
	HalfExtents transform.Vec3
}

// collider attaches a box to a barrier node
type collider struct {
	node        *transform.Node
	halfExtents transform.Vec3
	layer       string
}

// box resolves c under the root pose
func (c collider) box(rootPos transform.Vec3, rootRot transform.Rotation) Box {
	return Box{
		Name:        c.node.Name,
		Layer:       c.layer,
		Center:      rootPos.Add(rootRot.Apply(c.node.LocalPosition())),
		Rotation:    rootRot.Compose(c.node.LocalRotation()),
		HalfExtents: c.halfExtents,
	}
}

// Intersects reports whether the ray from origin along dir enters the box
// within maxDistance. dir need not be normalised; distance is measured along
// its unit vector.
func (b Box) Intersects(origin, dir transform.Vec3, maxDistance float64) bool {
	mag := dir.Magnitude()
	if mag == 0 {
		return false
	}
	inv := b.Rotation.Inverse()
	o := inv.Apply(origin.Sub(b.Center))
	d := inv.Apply(dir.Scale(1 / mag))

	tMin, tMax := 0.0, maxDistance
	for _, axis := range [][3]float64{
		{o.X, d.X, b.HalfExtents.X},
		{o.Y, d.Y, b.HalfExtents.Y},
		{o.Z, d.Z, b.HalfExtents.Z},
	} {
		p, v, h := axis[0], axis[1], axis[2]
		if math.Abs(v) < 1e-12 {
			if p < -h || p > h {
				return false
			}
			continue
		}
		t1, t2 := (-h-p)/v, (h-p)/v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Raycast implements vehicle.Probe against the barrier colliders
func (w *World) Raycast(origin, dir transform.Vec3, maxDistance float64, layer string) bool {
	for _, c := range w.colliders {
		if c.layer != layer {
			continue
		}
		if c.box(w.rootPos, w.rootRot).Intersects(origin, dir, maxDistance) {
			return true
		}
	}
	return false
}

// Boxes returns the barrier colliders in world space, lead first
func (w *World) Boxes() []Box {
	boxes := make([]Box, len(w.colliders))
	for i, c := range w.colliders {
		boxes[i] = c.box(w.rootPos, w.rootRot)
	}
	return boxes
}
