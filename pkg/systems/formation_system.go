package systems

import (
	"fmt"
	"log"
	"math/rand"
	"slices"

	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/pool"
	"github.com/decker502/invasion/pkg/types"
)

// FormationClock 编队需要的调度能力
// 除了延迟调度，还要读取当前时间缩放（步进距离随时间缩放变化）
type FormationClock interface {
	entities.Scheduler
	TimeScale() float64
}

// PointsAwarder 击毁敌人后的加分对象（玩家）
type PointsAwarder interface {
	AddPoints(points int)
}

// FormationDeps 编队系统依赖
type FormationDeps struct {
	Clock    FormationClock
	Spawner  entities.ProjectileSpawner
	Viewport entities.Viewport
	Awarder  PointsAwarder
	Rand     *rand.Rand

	// OnBarrierHealthChanged 掩体生命值变化回调，可为 nil
	OnBarrierHealthChanged func(index, health int)
}

// FormationSystem 敌人编队与对象池
//
// 负责：
//   - 按网格布局生成一波敌人并分配难度档位
//   - 单飞的左右步进（同一时刻最多一个待执行的步进）
//   - 射击循环的开启和停止
//   - 敌人击毁后的加分与回收
//   - 掩体的持有与重置
type FormationSystem struct {
	cfg      config.FormationConfig
	presets  config.EnemyPresets
	viewport config.ViewportConfig
	deps     FormationDeps

	difficulty types.Difficulty
	anchor     types.Vec2 // 编队锚点，敌人坐标相对于它
	direction  int
	moving     bool
	moveTimer  *clock.Timer

	pool    *pool.Pool[*entities.Enemy]
	enemies []*entities.Enemy // 当前波次，按生成顺序

	bounds   types.Bounds
	points   []types.Vec2 // 布局缓冲区，避免每帧分配
	barriers []*entities.Barrier
}

// NewFormationSystem 创建编队系统
//
// 参数:
//   - cfg: 整局配置（编队、敌人档位、视口、掩体）
//   - deps: 调度器、子弹生成器、视口投影、加分对象
//
// 返回:
//   - *FormationSystem: 编队系统实例
func NewFormationSystem(cfg *config.GameConfig, deps FormationDeps) *FormationSystem {
	s := &FormationSystem{
		cfg:        cfg.Formation,
		presets:    cfg.Enemies,
		viewport:   cfg.Viewport,
		deps:       deps,
		difficulty: cfg.Formation.Difficulty,
		anchor:     cfg.Formation.Anchor,
		direction:  1,
	}

	cells := cfg.Formation.Width * cfg.Formation.Height
	s.points = make([]types.Vec2, 0, cells)
	s.enemies = make([]*entities.Enemy, 0, cells)

	enemyDeps := entities.EnemyDeps{
		Scheduler:        deps.Clock,
		Spawner:          deps.Spawner,
		Rand:             deps.Rand,
		HitboxWidth:      cfg.Formation.HitboxWidth,
		HitboxHeight:     cfg.Formation.HitboxHeight,
		MuzzleOffset:     cfg.Formation.MuzzleOffset,
		InitialFireDelay: cfg.Formation.InitialFireDelay,
	}
	s.pool = pool.New("enemies", pool.Hooks[*entities.Enemy]{
		Create: func() *entities.Enemy {
			return entities.NewEnemy(enemyDeps)
		},
		OnGet: func(e *entities.Enemy) {
			e.Activate()
		},
		OnRelease: func(e *entities.Enemy) {
			e.Deactivate()
		},
	}, cells, cfg.Formation.PoolMaxSize)

	s.barriers = make([]*entities.Barrier, 0, len(cfg.Barriers))
	for i, bc := range cfg.Barriers {
		s.barriers = append(s.barriers, entities.NewBarrier(i, bc, deps.OnBarrierHealthChanged))
	}

	s.Update()
	return s
}

// BoxFormationPoints 计算网格布局偏移（相对编队锚点）
//
// 行优先输出；奇数行向右错开 nthOffset，整体以网格中心为原点再乘以 spread。
//
// 参数:
//   - dst: 结果追加到 dst，传入 dst[:0] 可复用缓冲区
//
// 返回:
//   - []types.Vec2: width*height 个偏移
func BoxFormationPoints(width, height int, spread, nthOffset float64, dst []types.Vec2) []types.Vec2 {
	midX := float64(width) * 0.5
	midY := float64(height) * 0.5
	for y := 0; y < height; y++ {
		offset := 0.0
		if y%2 != 0 {
			offset = nthOffset
		}
		for x := 0; x < width; x++ {
			dst = append(dst, types.Vec2{
				X: (float64(x) + offset - midX) * spread,
				Y: (float64(y) - midY) * spread,
			})
		}
	}
	return dst
}

// DifficultyCounts 计算一波敌人中各档位的数量
//
// 规则:
//   - Easy: 全部简单
//   - Normal: width*(height/2) 个普通，其余简单
//   - Hard: width 个困难，width*(height/2) 个普通，其余简单
//
// 返回:
//   - error: 未知难度返回 types.ErrUnknownDifficulty
func DifficultyCounts(level types.Difficulty, width, height int) (hard, normal, easy int, err error) {
	total := width * height
	switch level {
	case types.DifficultyEasy:
		easy = total
	case types.DifficultyNormal:
		normal = width * (height / 2)
		easy = total - normal
	case types.DifficultyHard:
		hard = width
		normal = width * (height / 2)
		easy = total - normal - hard
	default:
		return 0, 0, 0, fmt.Errorf("difficulty %d: %w", int(level), types.ErrUnknownDifficulty)
	}
	if easy < 0 {
		easy = 0
	}
	return hard, normal, easy, nil
}

// SetDifficulty 设置下一波使用的难度
func (s *FormationSystem) SetDifficulty(level types.Difficulty) error {
	if !level.Valid() {
		return fmt.Errorf("set difficulty %d: %w", int(level), types.ErrUnknownDifficulty)
	}
	s.difficulty = level
	log.Printf("[FormationSystem] Difficulty set to %s", level)
	return nil
}

// Difficulty 当前难度
func (s *FormationSystem) Difficulty() types.Difficulty {
	return s.difficulty
}

// SpawnWave 生成一波敌人
//
// 锚点水平归零、方向向右，每个网格点取出一个敌人并挂到锚点下，最后分配难度。
// 难度非法时不生成任何敌人；对象池中途耗尽时停止生成，已生成的敌人保留。
func (s *FormationSystem) SpawnWave() error {
	hard, normal, easy, err := DifficultyCounts(s.difficulty, s.cfg.Width, s.cfg.Height)
	if err != nil {
		log.Printf("[FormationSystem] ERROR: spawn refused: %v", err)
		return fmt.Errorf("spawn wave: %w", err)
	}

	s.anchor.X = 0
	s.direction = 1

	s.points = BoxFormationPoints(s.cfg.Width, s.cfg.Height, s.cfg.Spread, s.cfg.NthOffset, s.points[:0])
	var spawnErr error
	for _, pt := range s.points {
		e, err := s.pool.Get()
		if err != nil {
			spawnErr = fmt.Errorf("spawn wave: %w", err)
			log.Printf("[FormationSystem] ERROR: wave truncated at %d enemies: %v", len(s.enemies), err)
			break
		}
		e.SetParent(&s.anchor, pt)
		e.SetDestroyAction(s.destroyEnemy)
		s.enemies = append(s.enemies, e)
	}

	s.distributeDifficulty(hard, normal, easy)
	s.Update()

	log.Printf("[FormationSystem] Spawned wave: %d enemies (%s, hard=%d normal=%d easy=%d)",
		len(s.enemies), s.difficulty, hard, normal, easy)
	return spawnErr
}

// distributeDifficulty 按生成顺序分配档位，先用完困难，再普通，最后简单
func (s *FormationSystem) distributeDifficulty(hard, normal, easy int) {
	for _, e := range s.enemies {
		switch {
		case hard > 0:
			e.SetSettings(types.DifficultyHard, s.presets.Hard)
			hard--
		case normal > 0:
			e.SetSettings(types.DifficultyNormal, s.presets.Normal)
			normal--
		case easy > 0:
			e.SetSettings(types.DifficultyEasy, s.presets.Easy)
			easy--
		}
	}
}

// BeginFiring 开启当前波次所有敌人的射击循环
// 已在射击的敌人会先停止再重新开始，不会出现重复循环
func (s *FormationSystem) BeginFiring() {
	for _, e := range s.enemies {
		e.StartFire()
	}
}

// StopFiring 停止所有射击循环
func (s *FormationSystem) StopFiring() {
	for _, e := range s.enemies {
		e.StopFire()
	}
}

// DespawnWave 回收当前波次的所有敌人
func (s *FormationSystem) DespawnWave() {
	for _, e := range s.enemies {
		e.StopFire()
		s.pool.Release(e)
	}
	clear(s.enemies)
	s.enemies = s.enemies[:0]

	s.moveTimer.Stop()
	s.moveTimer = nil
	s.moving = false
}

// destroyEnemy 敌人被击毁的回调：停止射击、加分、移出波次、回收
func (s *FormationSystem) destroyEnemy(e *entities.Enemy) {
	idx := slices.Index(s.enemies, e)
	if idx < 0 {
		log.Printf("[FormationSystem] WARNING: defeat reported for an enemy not in the wave, ignored")
		return
	}
	e.StopFire()
	if s.deps.Awarder != nil {
		s.deps.Awarder.AddPoints(e.Points())
	}
	s.enemies = slices.Delete(s.enemies, idx, idx+1)
	s.pool.Release(e)
}

// Advance 编队步进（单飞）
//
// 已有待执行的步进时直接返回。否则先根据视口边缘调整方向（右侧优先），
// moveDelay 秒后沿方向平移 moveSpeed * timeScale。
func (s *FormationSystem) Advance() {
	if s.moving {
		return
	}
	s.moving = true

	if s.deps.Viewport != nil && !s.bounds.IsEmpty() {
		minVP := s.deps.Viewport.WorldToViewport(s.bounds.Min)
		maxVP := s.deps.Viewport.WorldToViewport(s.bounds.Max)
		if maxVP.X > s.viewport.EdgeHigh {
			s.direction = -1
		} else if minVP.X < s.viewport.EdgeLow {
			s.direction = 1
		}
	}

	s.moveTimer = s.deps.Clock.After(s.cfg.MoveDelay, func() {
		s.anchor.X += float64(s.direction) * s.cfg.MoveSpeed * s.deps.Clock.TimeScale()
		s.moving = false
		s.moveTimer = nil
	})
}

// Update 重新计算包围盒
// 有敌人时取敌人位置，否则取理论网格位置；最后外扩 boundsPadding
func (s *FormationSystem) Update() {
	var b types.Bounds
	if len(s.enemies) > 0 {
		for _, e := range s.enemies {
			b.Encapsulate(e.WorldPosition())
		}
	} else {
		s.points = BoxFormationPoints(s.cfg.Width, s.cfg.Height, s.cfg.Spread, s.cfg.NthOffset, s.points[:0])
		for _, pt := range s.points {
			b.Encapsulate(s.anchor.Add(pt))
		}
	}
	s.bounds = b.Expand(s.cfg.BoundsPadding)
}

// ResetBarriers 恢复所有掩体
func (s *FormationSystem) ResetBarriers() {
	for _, b := range s.barriers {
		b.ResetBarrier()
	}
}

// ActiveCount 场上敌人数（对象池中已取出的数量）
func (s *FormationSystem) ActiveCount() int {
	return s.pool.CountActive()
}

// Enemies 当前波次（只读）
func (s *FormationSystem) Enemies() []*entities.Enemy {
	return s.enemies
}

// Barriers 掩体列表（只读）
func (s *FormationSystem) Barriers() []*entities.Barrier {
	return s.barriers
}

// Bounds 最近一次计算的包围盒（已外扩）
func (s *FormationSystem) Bounds() types.Bounds {
	return s.bounds
}

// Direction 当前移动方向（+1 向右，-1 向左）
func (s *FormationSystem) Direction() int {
	return s.direction
}

// IsMoving 是否有待执行的步进
func (s *FormationSystem) IsMoving() bool {
	return s.moving
}

// Anchor 编队锚点
func (s *FormationSystem) Anchor() types.Vec2 {
	return s.anchor
}
