package systems

import (
	"github.com/decker502/invasion/pkg/entities"
)

// CollisionSystem 子弹与目标的碰撞检测
//
// 每帧对飞行中的子弹做 AABB 检测，目标顺序为：玩家、可见掩体、敌人。
// 一发子弹最多命中一个目标；目标的 Accepts 决定是否响应该标签的子弹。
type CollisionSystem struct {
	projectiles *ProjectileSystem
	formation   *FormationSystem
	player      entities.HitTarget

	projectileBuf []*entities.Projectile
	enemyBuf      []*entities.Enemy
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - projectiles: 子弹系统（提供飞行中的子弹）
//   - formation: 编队系统（提供敌人和掩体）
//   - player: 玩家命中目标，可为 nil
func NewCollisionSystem(projectiles *ProjectileSystem, formation *FormationSystem, player entities.HitTarget) *CollisionSystem {
	return &CollisionSystem{
		projectiles: projectiles,
		formation:   formation,
		player:      player,
	}
}

// Update 处理本帧的所有命中
//
// 返回:
//   - int: 本帧命中次数
func (s *CollisionSystem) Update() int {
	s.projectileBuf = s.projectiles.Snapshot(s.projectileBuf[:0])
	s.enemyBuf = append(s.enemyBuf[:0], s.formation.Enemies()...)

	hits := 0
	for _, p := range s.projectileBuf {
		if s.resolve(p) {
			hits++
		}
	}

	clear(s.projectileBuf)
	clear(s.enemyBuf)
	return hits
}

// resolve 为一发子弹找到第一个命中目标
func (s *CollisionSystem) resolve(p *entities.Projectile) bool {
	if !p.Active() {
		return false
	}
	if s.player != nil && s.hit(p, s.player) {
		return true
	}
	for _, b := range s.formation.Barriers() {
		if s.hit(p, b) {
			return true
		}
	}
	for _, e := range s.enemyBuf {
		if !e.Active() {
			continue
		}
		if s.hit(p, e) {
			return true
		}
	}
	return false
}

func (s *CollisionSystem) hit(p *entities.Projectile, target entities.HitTarget) bool {
	if !target.Accepts(p) {
		return false
	}
	if !p.Hitbox().Overlaps(target.Hitbox()) {
		return false
	}
	target.OnProjectileHit(p)
	return true
}
