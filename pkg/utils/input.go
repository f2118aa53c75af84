// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/invasion/pkg/game"
	"github.com/decker502/invasion/pkg/types"
)

// KeyBindings 键盘映射
type KeyBindings struct {
	Left   []ebiten.Key
	Right  []ebiten.Key
	Fire   []ebiten.Key
	Pause  []ebiten.Key
	Cancel []ebiten.Key
	Start  []ebiten.Key
	Quit   []ebiten.Key
}

// DefaultKeyBindings 默认键位：方向键/AD 移动，空格射击，Esc/P 暂停，回车开始
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:   []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:  []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Fire:   []ebiten.Key{ebiten.KeySpace},
		Pause:  []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
		Cancel: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyBackspace},
		Start:  []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter},
		Quit:   []ebiten.Key{ebiten.KeyQ},
	}
}

// MenuInput 菜单层按键（由应用层转换为界面信号）
type MenuInput struct {
	Confirm          bool
	Quit             bool
	ToggleFullscreen bool
	// Difficulty 在 HasDifficulty 为 true 时有效
	Difficulty    types.Difficulty
	HasDifficulty bool
}

// InputReader 每帧采样键盘和触摸输入
type InputReader struct {
	bindings KeyBindings
	touch    bool
	touchIDs []ebiten.TouchID
}

// NewInputReader 创建输入采样器
//
// 参数：
//   - bindings: 键盘映射
//   - touch: 是否启用触屏操作（屏幕左右三分之一移动，中间射击）
func NewInputReader(bindings KeyBindings, touch bool) *InputReader {
	return &InputReader{bindings: bindings, touch: touch}
}

// Read 采样本帧的游戏输入
//
// 参数：
//   - screenW: 逻辑屏幕宽度，用于划分触屏区域
//
// 返回：
//   - game.InputState: 本帧输入
func (r *InputReader) Read(screenW int) game.InputState {
	in := game.InputState{
		Move:        MoveAxis(anyPressed(r.bindings.Left), anyPressed(r.bindings.Right)),
		FirePressed: anyPressed(r.bindings.Fire),
		PauseEdge:   anyJustPressed(r.bindings.Pause),
		CancelEdge:  anyJustPressed(r.bindings.Cancel),
		StartEdge:   anyJustPressed(r.bindings.Start),
	}

	if !r.touch {
		return in
	}

	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	for _, id := range r.touchIDs {
		x, _ := ebiten.TouchPosition(id)
		move, fire := TouchZone(x, screenW)
		if move != 0 {
			in.Move = move
		}
		in.FirePressed = in.FirePressed || fire
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		in.StartEdge = true
	}
	return in
}

// ReadMenu 采样菜单层按键
// 1/2/3 选择难度，F11 切换全屏
func (r *InputReader) ReadMenu() MenuInput {
	m := MenuInput{
		Confirm:          anyJustPressed(r.bindings.Start),
		Quit:             anyJustPressed(r.bindings.Quit),
		ToggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
	}
	if r.touch {
		if pressed, _, _ := IsJustTouchedOrClicked(); pressed {
			m.Confirm = true
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		m.Difficulty, m.HasDifficulty = types.DifficultyEasy, true
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		m.Difficulty, m.HasDifficulty = types.DifficultyNormal, true
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		m.Difficulty, m.HasDifficulty = types.DifficultyHard, true
	}
	return m
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// MoveAxis 由左右两个按键合成水平轴，同时按下时抵消
func MoveAxis(left, right bool) float64 {
	var axis float64
	if left {
		axis--
	}
	if right {
		axis++
	}
	return axis
}

// TouchZone 触点所在区域
//
// 返回：
//   - move: 左三分之一为 -1，右三分之一为 1，中间为 0
//   - fire: 触点位于中间区域
func TouchZone(x, screenW int) (move float64, fire bool) {
	if screenW <= 0 {
		return 0, false
	}
	third := screenW / 3
	switch {
	case x < third:
		return -1, false
	case x >= screenW-third:
		return 1, false
	default:
		return 0, true
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
