package transform

import "math"

// Vec3 is a local-space position or direction
type Vec3 struct {
	X, Y, Z float64
}

// Unit axes of the local frame
var (
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
	Right   = Vec3{1, 0, 0}
)

// Add returns the component-wise sum
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v minus o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Magnitude returns the vector length
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Magnitude()
}

// MoveTowards moves current toward target by at most maxDelta.
// Returns target exactly once it is within reach.
func MoveTowards(current, target Vec3, maxDelta float64) Vec3 {
	diff := target.Sub(current)
	dist := diff.Magnitude()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(diff.Scale(maxDelta / dist))
}

// Rotation is an orientation around the vertical axis, in degrees.
// Barrier arms and vehicles only ever yaw, so a single angle is enough.
type Rotation struct {
	Yaw float64
}

// Euler builds a rotation from a yaw angle in degrees
func Euler(yaw float64) Rotation {
	return Rotation{Yaw: yaw}
}

// deltaAngle returns the signed shortest angle from a to b in (-180, 180]
func deltaAngle(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Angle returns the unsigned angular distance between a and b in degrees
func Angle(a, b Rotation) float64 {
	return math.Abs(deltaAngle(a.Yaw, b.Yaw))
}

// RotateTowards turns current toward target by at most maxDegrees
func RotateTowards(current, target Rotation, maxDegrees float64) Rotation {
	d := deltaAngle(current.Yaw, target.Yaw)
	if math.Abs(d) <= maxDegrees {
		return target
	}
	if d < 0 {
		return Rotation{Yaw: current.Yaw - maxDegrees}
	}
	return Rotation{Yaw: current.Yaw + maxDegrees}
}

// ForwardVector returns the unit direction the rotation faces (yaw 0 faces +Z)
func (r Rotation) ForwardVector() Vec3 {
	rad := r.Yaw * math.Pi / 180
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}

// RightVector returns the unit direction to the right of the facing
func (r Rotation) RightVector() Vec3 {
	rad := r.Yaw * math.Pi / 180
	return Vec3{X: math.Cos(rad), Z: -math.Sin(rad)}
}

// Apply rotates v by the yaw, clockwise seen from above
func (r Rotation) Apply(v Vec3) Vec3 {
	rad := r.Yaw * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Inverse returns the rotation that undoes r
func (r Rotation) Inverse() Rotation {
	return Rotation{Yaw: -r.Yaw}
}

// Compose returns r followed by o
func (r Rotation) Compose(o Rotation) Rotation {
	return Rotation{Yaw: r.Yaw + o.Yaw}
}

// Transform is a handle to a movable object owned by the engine
type Transform interface {
	LocalPosition() Vec3
	SetLocalPosition(Vec3)
	LocalRotation() Rotation
	SetLocalRotation(Rotation)
}

// Node is an in-memory Transform
type Node struct {
	Name     string
	Position Vec3
	Rotation Rotation
}

// NewNode creates a node at the given local position
func NewNode(name string, pos Vec3) *Node {
	return &Node{Name: name, Position: pos}
}

// LocalPosition implements Transform
func (n *Node) LocalPosition() Vec3 {
	return n.Position
}

// SetLocalPosition implements Transform
func (n *Node) SetLocalPosition(p Vec3) {
	n.Position = p
}

// LocalRotation implements Transform
func (n *Node) LocalRotation() Rotation {
	return n.Rotation
}

// SetLocalRotation implements Transform
func (n *Node) SetLocalRotation(r Rotation) {
	n.Rotation = r
}
