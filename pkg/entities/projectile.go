package entities

import (
	"log"

	"github.com/decker502/invasion/pkg/types"
)

// Heading 子弹飞行方向
type Heading int

const (
	// HeadingDown 向下（敌人子弹）
	HeadingDown Heading = -1
	// HeadingUp 向上（玩家子弹）
	HeadingUp Heading = 1
)

// ProjectileTag 子弹碰撞标签
type ProjectileTag int

const (
	// TagUntagged 未发射（池中或刚取出）
	TagUntagged ProjectileTag = iota
	// TagPlayerProjectile 玩家子弹
	TagPlayerProjectile
	// TagEnemyProjectile 敌人子弹
	TagEnemyProjectile
)

// String 返回标签名称
func (t ProjectileTag) String() string {
	switch t {
	case TagPlayerProjectile:
		return "Projectile"
	case TagEnemyProjectile:
		return "EnemyProjectile"
	default:
		return "Untagged"
	}
}

// LaunchParams 子弹发射参数
type LaunchParams struct {
	Position       types.Vec2
	Heading        Heading
	Speed          float64
	Damage         int
	IsPlayerBullet bool
	Material       string
}

// Projectile 池化的子弹
//
// 方向、伤害等参数在 Launch 时确定，回收前不可修改。
// "销毁"即归还对象池，整局游戏中不会真正释放。
type Projectile struct {
	Position types.Vec2

	heading        Heading
	speed          float64
	damage         int
	isPlayerBullet bool
	tag            ProjectileTag
	material       string

	width, height float64

	active        bool
	destroyAction func(*Projectile)
}

// NewProjectile 创建子弹实例（由对象池的 Create 回调调用）
func NewProjectile(width, height float64) *Projectile {
	return &Projectile{
		width:  width,
		height: height,
	}
}

// Activate 从对象池取出时调用
func (p *Projectile) Activate(destroyAction func(*Projectile)) {
	p.destroyAction = destroyAction
	p.tag = TagUntagged
	p.active = true
}

// Deactivate 归还对象池时调用
func (p *Projectile) Deactivate() {
	p.active = false
	p.tag = TagUntagged
}

// Launch 设置发射参数
// 只由子弹系统在取出实例后立即调用一次
func (p *Projectile) Launch(params LaunchParams) {
	p.Position = params.Position
	p.heading = params.Heading
	p.speed = params.Speed
	p.damage = params.Damage
	p.isPlayerBullet = params.IsPlayerBullet
	p.material = params.Material
	if params.IsPlayerBullet {
		p.tag = TagPlayerProjectile
	} else {
		p.tag = TagEnemyProjectile
	}
}

// Update 沿飞行方向移动，与帧率无关
//
// 参数:
//   - dt: 经过时间缩放的帧时间（秒）
func (p *Projectile) Update(dt float64) {
	if !p.active {
		return
	}
	p.Position.Y += float64(p.heading) * p.speed * dt
}

// Destroy 消耗子弹，归还对象池
// 每个生命周期只会调用一次回收回调，重复调用只记录日志
func (p *Projectile) Destroy() {
	if !p.active {
		log.Printf("[Projectile] WARNING: Destroy on an inactive projectile, ignored")
		return
	}
	if p.destroyAction == nil {
		log.Printf("[Projectile] WARNING: no destroy action set, deactivating in place")
		p.Deactivate()
		return
	}
	p.destroyAction(p)
}

// Hitbox 碰撞盒
func (p *Projectile) Hitbox() types.Rect {
	return types.Rect{Center: p.Position, Width: p.width, Height: p.height}
}

// Active 是否处于飞行中（已取出未回收）
func (p *Projectile) Active() bool { return p.active }

// Damage 伤害
func (p *Projectile) Damage() int { return p.damage }

// Heading 飞行方向
func (p *Projectile) Heading() Heading { return p.heading }

// Speed 飞行速度
func (p *Projectile) Speed() float64 { return p.speed }

// IsPlayerBullet 是否为玩家发射
func (p *Projectile) IsPlayerBullet() bool { return p.isPlayerBullet }

// Tag 碰撞标签
func (p *Projectile) Tag() ProjectileTag { return p.tag }

// Material 材质名称
func (p *Projectile) Material() string { return p.material }
