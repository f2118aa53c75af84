package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/invasion/pkg/game"
)

// cursorContext 把输入映射切换落到 ebiten 光标模式上
type cursorContext struct{}

var _ game.InputContext = cursorContext{}

func (cursorContext) SwitchActionMap(m game.ActionMap) {
	log.Printf("[Input] Action map -> %s", m)
}

func (cursorContext) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}
