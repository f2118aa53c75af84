package app

import (
	"github.com/decker502/invasion/pkg/game"
	"github.com/decker502/invasion/pkg/utils"
)

// menuSignal 把菜单按键翻译为当前状态下的界面信号
//
// 参数：
//   - state: 当前流程状态
//   - menu: 本帧菜单按键
//
// 返回：
//   - game.UISignal: 要发送的信号
//   - bool: 本帧是否有信号
func menuSignal(state game.StateID, menu utils.MenuInput) (game.UISignal, bool) {
	switch state {
	case game.StateIntro:
		if menu.Confirm {
			return game.SignalPlay, true
		}
	case game.StatePause:
		if menu.Confirm {
			return game.SignalResume, true
		}
		if menu.Quit {
			return game.SignalExit, true
		}
	case game.StateFinish:
		if menu.Confirm || menu.Quit {
			return game.SignalExit, true
		}
	}
	return 0, false
}
