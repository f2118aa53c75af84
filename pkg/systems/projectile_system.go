package systems

import (
	"fmt"
	"log"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/pool"
)

// ProjectileSystem 子弹对象池的拥有者
// 负责发射、移动、越界回收；命中回收由目标调用 Projectile.Destroy 完成
type ProjectileSystem struct {
	cfg    config.ProjectileConfig
	pool   *pool.Pool[*entities.Projectile]
	active []*entities.Projectile // 飞行中的子弹，顺序不保证
}

// NewProjectileSystem 创建子弹系统
//
// 参数:
//   - cfg: 对象池容量、子弹尺寸、飞行边界
//
// 返回:
//   - *ProjectileSystem: 子弹系统实例
func NewProjectileSystem(cfg config.ProjectileConfig) *ProjectileSystem {
	s := &ProjectileSystem{
		cfg:    cfg,
		active: make([]*entities.Projectile, 0, cfg.MaxSize),
	}
	s.pool = pool.New("projectiles", pool.Hooks[*entities.Projectile]{
		Create: func() *entities.Projectile {
			return entities.NewProjectile(cfg.Width, cfg.Height)
		},
		OnGet: func(p *entities.Projectile) {
			p.Activate(s.release)
		},
		OnRelease: func(p *entities.Projectile) {
			p.Deactivate()
		},
	}, cfg.DefaultCapacity, cfg.MaxSize)
	return s
}

// Spawn 从对象池取出一发子弹并发射
// 实现 entities.ProjectileSpawner
//
// 返回:
//   - error: 对象池耗尽时返回包装的 pool.ErrExhausted
func (s *ProjectileSystem) Spawn(params entities.LaunchParams) (*entities.Projectile, error) {
	p, err := s.pool.Get()
	if err != nil {
		return nil, fmt.Errorf("spawn projectile: %w", err)
	}
	p.Launch(params)
	s.active = append(s.active, p)
	return p, nil
}

// Update 移动所有子弹，回收飞出边界的子弹
//
// 参数:
//   - dt: 经过时间缩放的帧时间（秒）
func (s *ProjectileSystem) Update(dt float64) {
	// 倒序遍历，release 的交换删除只会换入已处理过的元素
	for i := len(s.active) - 1; i >= 0; i-- {
		p := s.active[i]
		p.Update(dt)
		if !s.cfg.Boundary.Contains(p.Position) {
			s.release(p)
		}
	}
}

// release 归还对象池（Projectile.Destroy 的回收回调）
func (s *ProjectileSystem) release(p *entities.Projectile) {
	if !s.pool.Release(p) {
		return
	}
	for i, q := range s.active {
		if q == p {
			last := len(s.active) - 1
			s.active[i] = s.active[last]
			s.active[last] = nil
			s.active = s.active[:last]
			return
		}
	}
	log.Printf("[ProjectileSystem] WARNING: released projectile was not tracked")
}

// ReleaseAll 回收所有飞行中的子弹
func (s *ProjectileSystem) ReleaseAll() {
	for _, p := range s.active {
		s.pool.Release(p)
	}
	clear(s.active)
	s.active = s.active[:0]
}

// Snapshot 把飞行中的子弹追加到 dst 并返回
// 碰撞检测在快照上遍历，命中回收不会影响遍历
func (s *ProjectileSystem) Snapshot(dst []*entities.Projectile) []*entities.Projectile {
	return append(dst, s.active...)
}

// Active 飞行中的子弹（只读，用于绘制）
func (s *ProjectileSystem) Active() []*entities.Projectile {
	return s.active
}

// ActiveCount 飞行中的子弹数
func (s *ProjectileSystem) ActiveCount() int {
	return s.pool.CountActive()
}

// CreatedCount 对象池已创建的实例数
func (s *ProjectileSystem) CreatedCount() int {
	return s.pool.CountAll()
}
