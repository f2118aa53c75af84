// Package entities 定义可被子弹命中的游戏角色：子弹、敌人、玩家、掩体
//
// 角色之间不直接引用，依赖通过小接口注入（调度器、子弹生成器、视口投影），
// 生命周期由对应的系统（对象池拥有者）负责。
package entities

import (
	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/types"
)

// Scheduler 延迟行为调度接口
// 由 clock.Scheduler 实现，测试中可直接使用真实调度器手动推进
type Scheduler interface {
	After(delay float64, fn func()) *clock.Timer
	Every(first, interval float64, fn func()) *clock.Timer
}

// ProjectileSpawner 子弹生成接口
// 由 systems.ProjectileSystem 实现，对象池耗尽时返回错误
type ProjectileSpawner interface {
	Spawn(params LaunchParams) (*Projectile, error)
}

// Viewport 世界坐标到视口坐标（0~1）的投影
type Viewport interface {
	WorldToViewport(p types.Vec2) types.Vec2
}

// HitTarget 子弹命中目标的统一契约
//
// 碰撞系统对每个重叠的 (子弹, 目标) 先调用 Accepts，
// 返回 true 时再调用 OnProjectileHit；目标负责消耗（Destroy）子弹。
type HitTarget interface {
	Hitbox() types.Rect
	Accepts(p *Projectile) bool
	OnProjectileHit(p *Projectile)
}
