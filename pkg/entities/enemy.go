package entities

import (
	"log"
	"math/rand"

	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// EnemyDeps 敌人依赖与固定参数
type EnemyDeps struct {
	Scheduler        Scheduler
	Spawner          ProjectileSpawner
	Rand             *rand.Rand
	HitboxWidth      float64
	HitboxHeight     float64
	MuzzleOffset     float64 // 枪口相对中心的向下偏移
	InitialFireDelay float64 // 首次射击的固定延迟（秒）
}

// Enemy 编队中的敌人
//
// 属于当前波次；生命值降到 0 时只报告一次被击毁，然后由编队系统回收。
type Enemy struct {
	deps EnemyDeps

	difficulty types.Difficulty
	settings   config.EnemySettings
	health     int
	damage     int
	fireRate   float64
	points     int

	anchor *types.Vec2 // 编队锚点（父节点）
	local  types.Vec2  // 相对锚点的偏移

	active        bool
	defeated      bool
	fireTimer     *clock.Timer
	destroyAction func(*Enemy)
}

// NewEnemy 创建敌人实例（由对象池的 Create 回调调用）
func NewEnemy(deps EnemyDeps) *Enemy {
	return &Enemy{deps: deps}
}

// Activate 从对象池取出时调用
func (e *Enemy) Activate() {
	e.active = true
	e.defeated = false
}

// Deactivate 归还对象池时调用，同时停止射击
func (e *Enemy) Deactivate() {
	e.StopFire()
	e.active = false
	e.destroyAction = nil
}

// SetSettings 应用难度档位属性
func (e *Enemy) SetSettings(difficulty types.Difficulty, settings config.EnemySettings) {
	e.difficulty = difficulty
	e.settings = settings
	e.damage = settings.Damage
	e.fireRate = settings.FireRate
	e.health = settings.Health
	e.points = settings.Points
}

// SetParent 挂到编队锚点下
//
// 参数:
//   - anchor: 编队锚点，敌人世界坐标 = *anchor + local
//   - local: 相对锚点的偏移
func (e *Enemy) SetParent(anchor *types.Vec2, local types.Vec2) {
	e.anchor = anchor
	e.local = local
}

// SetDestroyAction 设置被击毁时的回调
func (e *Enemy) SetDestroyAction(action func(*Enemy)) {
	e.destroyAction = action
}

// WorldPosition 世界坐标
func (e *Enemy) WorldPosition() types.Vec2 {
	if e.anchor == nil {
		return e.local
	}
	return e.anchor.Add(e.local)
}

// StartFire 开始周期射击
// 首发延迟 = 随机抖动 [0, 1/fireRate) + 固定初始延迟，之后每 1/fireRate 秒一发
func (e *Enemy) StartFire() {
	e.StopFire()
	if e.fireRate <= 0 || e.deps.Scheduler == nil {
		return
	}
	interval := 1 / e.fireRate
	jitter := 0.0
	if e.deps.Rand != nil {
		jitter = e.deps.Rand.Float64() * interval
	}
	e.fireTimer = e.deps.Scheduler.Every(jitter+e.deps.InitialFireDelay, interval, e.fire)
}

// StopFire 停止射击
func (e *Enemy) StopFire() {
	if e.fireTimer != nil {
		e.fireTimer.Stop()
		e.fireTimer = nil
	}
}

// IsFiring 射击循环是否在运行
func (e *Enemy) IsFiring() bool {
	return e.fireTimer.Active()
}

func (e *Enemy) fire() {
	if !e.active || e.deps.Spawner == nil {
		return
	}
	muzzle := e.WorldPosition()
	muzzle.Y -= e.deps.MuzzleOffset
	_, err := e.deps.Spawner.Spawn(LaunchParams{
		Position:       muzzle,
		Heading:        HeadingDown,
		Speed:          e.settings.ProjectileSpeed,
		Damage:         e.damage,
		IsPlayerBullet: false,
		Material:       e.settings.ProjectileMaterial,
	})
	if err != nil {
		log.Printf("[Enemy] fire skipped: %v", err)
	}
}

// Hitbox 碰撞盒
func (e *Enemy) Hitbox() types.Rect {
	return types.Rect{Center: e.WorldPosition(), Width: e.deps.HitboxWidth, Height: e.deps.HitboxHeight}
}

// Accepts 只响应玩家子弹，敌人子弹直接穿过
func (e *Enemy) Accepts(p *Projectile) bool {
	return e.active && p.Tag() == TagPlayerProjectile
}

// OnProjectileHit 扣除生命值并消耗子弹，生命值耗尽时报告一次被击毁
func (e *Enemy) OnProjectileHit(p *Projectile) {
	if !e.active {
		log.Printf("[Enemy] WARNING: hit on an inactive enemy, ignored")
		return
	}
	if p.IsPlayerBullet() {
		e.health -= p.Damage()
	}
	p.Destroy()

	if e.health <= 0 && !e.defeated {
		e.defeated = true
		if e.destroyAction != nil {
			e.destroyAction(e)
		}
	}
}

// Active 是否在场
func (e *Enemy) Active() bool { return e.active }

// Health 剩余生命值
func (e *Enemy) Health() int { return e.health }

// Damage 子弹伤害
func (e *Enemy) Damage() int { return e.damage }

// FireRate 每秒射击次数
func (e *Enemy) FireRate() float64 { return e.fireRate }

// Points 击毁得分
func (e *Enemy) Points() int { return e.points }

// Difficulty 当前档位
func (e *Enemy) Difficulty() types.Difficulty { return e.difficulty }

// Mesh 外观名称
func (e *Enemy) Mesh() string { return e.settings.Mesh }
