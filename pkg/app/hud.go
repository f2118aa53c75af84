package app

import (
	"log"

	"github.com/decker502/invasion/pkg/game"
)

// hitFlashFrames 被击中后 HUD 闪烁的帧数
const hitFlashFrames = 30

// hudPresenter 保存界面显示所需的状态
// 只在对局通知中修改，Draw 中只读
type hudPresenter struct {
	introVisible   bool
	prepareVisible bool
	pauseVisible   bool
	finishVisible  bool
	finalScore     int

	lives int
	score int

	barrierHealth []int
	hitFlash      int
	frames        int
}

var _ game.Presenter = (*hudPresenter)(nil)

func newHUDPresenter(barrierCount int) *hudPresenter {
	return &hudPresenter{barrierHealth: make([]int, barrierCount)}
}

func (h *hudPresenter) IntroActive(active bool) {
	h.introVisible = active
	if active {
		h.finishVisible = false
	}
}

func (h *hudPresenter) PrepareActive(active bool) { h.prepareVisible = active }

func (h *hudPresenter) PauseActive(active bool) { h.pauseVisible = active }

func (h *hudPresenter) Finish(score int) {
	h.finishVisible = true
	h.finalScore = score
	log.Printf("[HUD] Game over, score=%d", score)
}

func (h *hudPresenter) BarrierHealthChanged(index, health int) {
	if index < 0 || index >= len(h.barrierHealth) {
		return
	}
	h.barrierHealth[index] = health
}

func (h *hudPresenter) LivesChanged(lives int) { h.lives = lives }

func (h *hudPresenter) ScoreChanged(score int) { h.score = score }

func (h *hudPresenter) PlayerHit() { h.hitFlash = hitFlashFrames }

// tick 推进 HUD 动画（每帧一次）
func (h *hudPresenter) tick() {
	h.frames++
	if h.hitFlash > 0 {
		h.hitFlash--
	}
}

// overlay 当前需要显示的菜单文字（标题、副标题）
func (h *hudPresenter) overlay() (title, subtitle string, ok bool) {
	switch {
	case h.finishVisible:
		return "GAME OVER", "Enter: back to title", true
	case h.pauseVisible:
		return "PAUSED", "Enter: resume   Esc: back to game   Q: quit to title", true
	case h.prepareVisible:
		return "GET READY", "Press Enter to start", true
	case h.introVisible:
		return "INVASION", "Enter: play   1/2/3: difficulty   F11: fullscreen", true
	}
	return "", "", false
}
