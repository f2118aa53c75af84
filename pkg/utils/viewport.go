package utils

import (
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// OrthoViewport 正交视口
//
// 世界坐标 Y 轴向上；视口坐标范围 0~1，(0,0) 为左下角；
// 屏幕坐标以像素为单位，(0,0) 为左上角。
type OrthoViewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewOrthoViewport 由视口配置创建
func NewOrthoViewport(cfg config.ViewportConfig) *OrthoViewport {
	return &OrthoViewport{
		MinX: cfg.MinX,
		MaxX: cfg.MaxX,
		MinY: cfg.MinY,
		MaxY: cfg.MaxY,
	}
}

// WorldToViewport 世界坐标 -> 视口坐标（0~1，可超出）
func (v *OrthoViewport) WorldToViewport(p types.Vec2) types.Vec2 {
	return types.Vec2{
		X: (p.X - v.MinX) / (v.MaxX - v.MinX),
		Y: (p.Y - v.MinY) / (v.MaxY - v.MinY),
	}
}

// WorldToScreen 世界坐标 -> 屏幕像素坐标
//
// 参数：
//   - p: 世界坐标
//   - screenW, screenH: 逻辑屏幕尺寸（像素）
//
// 返回：
//   - x, y: 屏幕坐标，Y 轴向下
func (v *OrthoViewport) WorldToScreen(p types.Vec2, screenW, screenH int) (x, y float64) {
	vp := v.WorldToViewport(p)
	return vp.X * float64(screenW), (1 - vp.Y) * float64(screenH)
}

// PixelsPerUnit 每个世界单位对应的像素数（水平、垂直）
func (v *OrthoViewport) PixelsPerUnit(screenW, screenH int) (sx, sy float64) {
	return float64(screenW) / (v.MaxX - v.MinX), float64(screenH) / (v.MaxY - v.MinY)
}

// RectToScreen 世界矩形 -> 屏幕矩形（左上角和尺寸）
func (v *OrthoViewport) RectToScreen(r types.Rect, screenW, screenH int) (x, y, w, h float64) {
	sx, sy := v.PixelsPerUnit(screenW, screenH)
	cx, cy := v.WorldToScreen(r.Center, screenW, screenH)
	w, h = r.Width*sx, r.Height*sy
	return cx - w/2, cy - h/2, w, h
}
