package entities

import (
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// Barrier 掩体
// 玩家和敌人的子弹都会打在掩体上；生命值耗尽后隐藏，直到下次重置
type Barrier struct {
	index     int
	cfg       config.BarrierConfig
	health    int
	visible   bool
	onChanged func(index, health int)
}

// NewBarrier 创建掩体
//
// 参数:
//   - index: 掩体序号，随生命值变化一起通知表现层
//   - cfg: 位置、大小、最大生命值
//   - onHealthChanged: 生命值变化回调，可为 nil
func NewBarrier(index int, cfg config.BarrierConfig, onHealthChanged func(index, health int)) *Barrier {
	b := &Barrier{
		index:     index,
		cfg:       cfg,
		onChanged: onHealthChanged,
	}
	b.ResetBarrier()
	return b
}

// ResetBarrier 恢复满生命值并显示
func (b *Barrier) ResetBarrier() {
	b.health = b.cfg.MaxHealth
	b.visible = true
	b.notify()
}

// Hitbox 碰撞盒
func (b *Barrier) Hitbox() types.Rect {
	return types.Rect{Center: b.cfg.Position, Width: b.cfg.Width, Height: b.cfg.Height}
}

// Accepts 可见时接受任意已发射的子弹
func (b *Barrier) Accepts(p *Projectile) bool {
	return b.visible && p.Tag() != TagUntagged
}

// OnProjectileHit 扣除生命值并消耗子弹
func (b *Barrier) OnProjectileHit(p *Projectile) {
	b.health -= p.Damage()
	p.Destroy()
	b.notify()

	if b.health <= 0 {
		b.visible = false
	}
}

func (b *Barrier) notify() {
	if b.onChanged != nil {
		b.onChanged(b.index, b.health)
	}
}

// Index 掩体序号
func (b *Barrier) Index() int { return b.index }

// Health 剩余生命值（可能低于 0，取决于最后一发的伤害）
func (b *Barrier) Health() int { return b.health }

// MaxHealth 最大生命值
func (b *Barrier) MaxHealth() int { return b.cfg.MaxHealth }

// Visible 是否仍在场
func (b *Barrier) Visible() bool { return b.visible }
