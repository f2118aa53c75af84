package game

import "github.com/decker502/invasion/pkg/entities"

// Presenter 表现层接口
// 状态只在 Enter/Exit 中发布界面通知，玩家和掩体在数值变化时发布
type Presenter interface {
	entities.PlayerObserver

	IntroActive(active bool)
	PrepareActive(active bool)
	PauseActive(active bool)
	Finish(score int)
	BarrierHealthChanged(index, health int)
}

// NopPresenter 不做任何显示（无界面运行、测试）
type NopPresenter struct{}

func (NopPresenter) IntroActive(bool)              {}
func (NopPresenter) PrepareActive(bool)            {}
func (NopPresenter) PauseActive(bool)              {}
func (NopPresenter) Finish(int)                    {}
func (NopPresenter) BarrierHealthChanged(int, int) {}
func (NopPresenter) LivesChanged(int)              {}
func (NopPresenter) ScoreChanged(int)              {}
func (NopPresenter) PlayerHit()                    {}
