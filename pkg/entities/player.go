package entities

import (
	"log"

	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// PlayerObserver 玩家状态广播
// 由表现层实现（HUD、受击特效），核心逻辑不关心如何显示
type PlayerObserver interface {
	LivesChanged(lives int)
	ScoreChanged(score int)
	PlayerHit()
}

// PlayerDeps 玩家依赖
type PlayerDeps struct {
	Scheduler Scheduler
	Spawner   ProjectileSpawner
	Viewport  Viewport
	Observer  PlayerObserver
}

// Player 玩家飞船
//
// 不变式：
//   - 生命和分数非负
//   - 复活中不更新位置
//   - 每次有效受击只开启一次无敌时间，无敌期间的命中不再扣命
type Player struct {
	cfg  config.PlayerConfig
	deps PlayerDeps

	position        types.Vec2
	initialPosition types.Vec2
	movement        float64

	score int
	lives int

	onCooldown bool
	respawning bool
	invincible bool

	cooldownTimer   *clock.Timer
	invincibleTimer *clock.Timer
	respawnTimer    *clock.Timer
}

// NewPlayer 创建玩家
//
// 参数:
//   - cfg: 玩家配置，SpawnPosition 作为初始位置
//   - deps: 调度器、子弹生成器、视口、状态观察者
//
// 返回:
//   - *Player: 已重置的玩家
func NewPlayer(cfg config.PlayerConfig, deps PlayerDeps) *Player {
	p := &Player{
		cfg:             cfg,
		deps:            deps,
		initialPosition: cfg.SpawnPosition,
	}
	p.ResetPlayer()
	return p
}

// ResetPlayer 重置分数、生命和位置
//
// 同时取消上一局遗留的冷却、无敌和复活计时器，
// 避免旧的死亡延迟在新一局中扣命。
func (p *Player) ResetPlayer() {
	p.cooldownTimer.Stop()
	p.invincibleTimer.Stop()
	p.respawnTimer.Stop()
	p.onCooldown = false
	p.invincible = false
	p.respawning = false
	p.movement = 0

	p.score = 0
	p.lives = p.cfg.MaxLives
	p.position = p.initialPosition

	if p.deps.Observer != nil {
		p.deps.Observer.LivesChanged(p.lives)
		p.deps.Observer.ScoreChanged(p.score)
	}
}

// AddPoints 击毁敌人加分
func (p *Player) AddPoints(points int) {
	if points < 0 {
		log.Printf("[Player] WARNING: negative points %d ignored", points)
		return
	}
	p.score += points
	if p.deps.Observer != nil {
		p.deps.Observer.ScoreChanged(p.score)
	}
}

// SetMovement 设置水平移动输入（-1 ~ 1）
func (p *Player) SetMovement(x float64) {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	p.movement = x
}

// Update 水平移动
// 复活中不移动；靠近视口边缘且继续向外移动时不移动
//
// 参数:
//   - dt: 经过时间缩放的帧时间（秒）
func (p *Player) Update(dt float64) {
	if p.respawning {
		return
	}
	if p.deps.Viewport != nil {
		vp := p.deps.Viewport.WorldToViewport(p.position)
		threshold := p.cfg.ScreenEdgeThreshold
		if (vp.X < threshold && p.movement < 0) || (vp.X > 1-threshold && p.movement > 0) {
			return
		}
	}
	p.position.X += p.movement * p.cfg.Speed * dt
}

// Fire 按下射击键
// 冷却中忽略；成功发射后进入 1/fireRate 秒的冷却
//
// 返回:
//   - bool: 是否发射了子弹
func (p *Player) Fire() bool {
	if p.onCooldown || p.deps.Spawner == nil {
		return false
	}

	muzzle := p.position
	muzzle.Y += p.cfg.MuzzleOffset
	_, err := p.deps.Spawner.Spawn(LaunchParams{
		Position:       muzzle,
		Heading:        HeadingUp,
		Speed:          p.cfg.ProjectileSpeed,
		Damage:         p.cfg.ProjectileDamage,
		IsPlayerBullet: true,
		Material:       p.cfg.ProjectileMaterial,
	})
	if err != nil {
		log.Printf("[Player] fire skipped: %v", err)
		return false
	}

	p.onCooldown = true
	p.cooldownTimer = p.deps.Scheduler.After(1/p.cfg.FireRate, func() {
		p.onCooldown = false
	})
	return true
}

// Hitbox 碰撞盒
func (p *Player) Hitbox() types.Rect {
	return types.Rect{Center: p.position, Width: p.cfg.HitboxWidth, Height: p.cfg.HitboxHeight}
}

// Accepts 只响应敌人子弹
func (p *Player) Accepts(proj *Projectile) bool {
	return proj.Tag() == TagEnemyProjectile
}

// OnProjectileHit 受击
// 不在无敌或复活中时开始受伤流程；子弹无论如何都会被消耗
func (p *Player) OnProjectileHit(proj *Projectile) {
	if !proj.IsPlayerBullet() && !p.invincible && !p.respawning {
		p.takeDamage(proj.Damage())
	}
	proj.Destroy()
}

// takeDamage 立即开启无敌并进入复活状态，死亡延迟后扣命并复位
func (p *Player) takeDamage(damage int) {
	p.startInvincibility()

	p.respawning = true
	if p.deps.Observer != nil {
		p.deps.Observer.PlayerHit()
	}

	p.respawnTimer = p.deps.Scheduler.After(p.cfg.DeathDelay, func() {
		p.lives -= damage
		if p.lives < 0 {
			p.lives = 0
		}
		p.position = p.initialPosition
		if p.deps.Observer != nil {
			p.deps.Observer.LivesChanged(p.lives)
		}
		p.respawning = false
	})
}

func (p *Player) startInvincibility() {
	p.invincible = true
	p.invincibleTimer = p.deps.Scheduler.After(p.cfg.InvincibilityTime, func() {
		p.invincible = false
	})
}

// CurrentScore 当前分数
func (p *Player) CurrentScore() int { return p.score }

// CurrentLives 当前生命
func (p *Player) CurrentLives() int { return p.lives }

// IsInvincible 是否处于无敌时间
func (p *Player) IsInvincible() bool { return p.invincible }

// IsRespawning 是否处于复活中
func (p *Player) IsRespawning() bool { return p.respawning }

// IsOnCooldown 射击是否冷却中
func (p *Player) IsOnCooldown() bool { return p.onCooldown }

// Position 当前位置
func (p *Player) Position() types.Vec2 { return p.position }
