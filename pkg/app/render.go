package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/invasion/pkg/types"
)

var (
	colorBackground = color.RGBA{R: 8, G: 10, B: 24, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	colorBarrier    = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	colorText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorHighlight  = color.RGBA{R: 255, G: 210, B: 80, A: 255}
	colorOverlay    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	colorDanger     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

// meshColors 敌人模型 -> 颜色
var meshColors = map[string]color.RGBA{
	"enemy_easy":   {R: 120, G: 230, B: 120, A: 255},
	"enemy_normal": {R: 240, G: 220, B: 90, A: 255},
	"enemy_hard":   {R: 240, G: 90, B: 90, A: 255},
}

// materialColors 子弹材质 -> 颜色
var materialColors = map[string]color.RGBA{
	"bolt_blue":   {R: 110, G: 180, B: 255, A: 255},
	"bolt_green":  {R: 120, G: 255, B: 140, A: 255},
	"bolt_yellow": {R: 255, G: 240, B: 110, A: 255},
	"bolt_red":    {R: 255, G: 100, B: 100, A: 255},
}

func lookupColor(table map[string]color.RGBA, key string) color.RGBA {
	if c, ok := table[key]; ok {
		return c
	}
	return colorText
}

// fillWorldRect 以世界坐标绘制实心矩形
func (a *App) fillWorldRect(screen *ebiten.Image, r types.Rect, clr color.Color) {
	x, y, w, h := a.viewport.RectToScreen(r, ScreenWidth, ScreenHeight)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawField 绘制掩体、敌人、玩家、子弹
func (a *App) drawField(screen *ebiten.Image) {
	formation := a.session.Formation()

	for _, b := range formation.Barriers() {
		if !b.Visible() {
			continue
		}
		c := colorBarrier
		// 血量越低越透明
		c.A = uint8(80 + 175*b.Health()/b.MaxHealth())
		a.fillWorldRect(screen, b.Hitbox(), c)
	}

	for _, e := range formation.Enemies() {
		if !e.Active() {
			continue
		}
		a.fillWorldRect(screen, e.Hitbox(), lookupColor(meshColors, e.Mesh()))
	}

	player := a.session.Player()
	// 无敌期间闪烁，复活等待期间隐藏
	visible := !player.IsRespawning() && (!player.IsInvincible() || (a.hud.frames/4)%2 == 0)
	if visible {
		a.fillWorldRect(screen, player.Hitbox(), colorPlayer)
	}

	a.projectiles = a.session.Projectiles().Snapshot(a.projectiles[:0])
	for _, p := range a.projectiles {
		a.fillWorldRect(screen, p.Hitbox(), lookupColor(materialColors, p.Material()))
	}
}

// drawHUD 绘制分数、生命、最高分和菜单
func (a *App) drawHUD(screen *ebiten.Image) {
	livesColor := color.Color(colorText)
	if a.hud.hitFlash > 0 {
		livesColor = colorDanger
	}

	a.drawText(screen, fmt.Sprintf("SCORE %d", a.hud.score), 12, 20, colorText, text.AlignStart)
	a.drawText(screen, fmt.Sprintf("LIVES %d", a.hud.lives), ScreenWidth/2, 20, livesColor, text.AlignCenter)
	a.drawText(screen, fmt.Sprintf("HI %d", a.settings.HighScore()), ScreenWidth-12, 20, colorText, text.AlignEnd)
	a.drawText(screen, fmt.Sprintf("DIFFICULTY %s", a.session.Formation().Difficulty()), 12, ScreenHeight-12, colorText, text.AlignStart)

	title, subtitle, ok := a.hud.overlay()
	if !ok {
		return
	}
	vector.DrawFilledRect(screen, 0, ScreenHeight/2-50, ScreenWidth, 100, colorOverlay, false)
	a.drawText(screen, title, ScreenWidth/2, ScreenHeight/2-14, colorHighlight, text.AlignCenter)
	a.drawText(screen, subtitle, ScreenWidth/2, ScreenHeight/2+14, colorText, text.AlignCenter)
	if a.hud.finishVisible {
		a.drawText(screen, fmt.Sprintf("FINAL SCORE %d", a.hud.finalScore), ScreenWidth/2, ScreenHeight/2+34, colorText, text.AlignCenter)
	}
}

// drawText 按 align 水平对齐、垂直居中绘制一行文字
func (a *App) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, a.face, op)
}
