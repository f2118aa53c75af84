package types

import "math"

// Vec2 二维世界坐标（Y 轴向上，与编队上下方向一致）
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 返回 v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect 以中心点和尺寸描述的轴对齐矩形
type Rect struct {
	Center Vec2    `yaml:"center"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Min 左下角
func (r Rect) Min() Vec2 {
	return Vec2{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max 右上角
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// Overlaps AABB 重叠检测，边界接触也算作重叠
func (r Rect) Overlaps(o Rect) bool {
	rMin, rMax := r.Min(), r.Max()
	oMin, oMax := o.Min(), o.Max()
	return rMax.X >= oMin.X &&
		rMin.X <= oMax.X &&
		rMax.Y >= oMin.Y &&
		rMin.Y <= oMax.Y
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	rMin, rMax := r.Min(), r.Max()
	return p.X >= rMin.X && p.X <= rMax.X && p.Y >= rMin.Y && p.Y <= rMax.Y
}

// Bounds 逐点扩展的包围盒
// 零值为空包围盒，第一次 Encapsulate 之后才有效
type Bounds struct {
	Min, Max Vec2
	valid    bool
}

// Encapsulate 扩展包围盒使其包含点 p
func (b *Bounds) Encapsulate(p Vec2) {
	if !b.valid {
		b.Min, b.Max = p, p
		b.valid = true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// IsEmpty 是否为空包围盒
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Center 包围盒中心
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Expand 在每个方向外扩 padding/2，总尺寸增加 padding
func (b Bounds) Expand(padding float64) Bounds {
	if !b.valid {
		return b
	}
	half := padding / 2
	return Bounds{
		Min:   Vec2{X: b.Min.X - half, Y: b.Min.Y - half},
		Max:   Vec2{X: b.Max.X + half, Y: b.Max.Y + half},
		valid: true,
	}
}
