package config

import (
	"fmt"
	"os"

	"github.com/decker502/invasion/pkg/embedded"
	"github.com/decker502/invasion/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内置静态配置路径
const DefaultGameConfigPath = "data/invasion.yaml"

// EnemySettings 单个难度档位的敌人属性
type EnemySettings struct {
	Mesh               string  `yaml:"mesh"`               // 外观名称，由渲染层解释
	ProjectileMaterial string  `yaml:"projectileMaterial"` // 子弹材质名称
	Health             int     `yaml:"health"`             // 生命值
	Damage             int     `yaml:"damage"`             // 子弹伤害
	FireRate           float64 `yaml:"fireRate"`           // 每秒射击次数
	ProjectileSpeed    float64 `yaml:"projectileSpeed"`    // 子弹速度（世界单位/秒）
	Points             int     `yaml:"points"`             // 击毁得分
}

// EnemyPresets 三个固定难度档位
type EnemyPresets struct {
	Easy   EnemySettings `yaml:"easy"`
	Normal EnemySettings `yaml:"normal"`
	Hard   EnemySettings `yaml:"hard"`
}

// Preset 返回指定难度的敌人属性
// 未知难度返回包装 types.ErrUnknownDifficulty 的错误
func (p *EnemyPresets) Preset(d types.Difficulty) (EnemySettings, error) {
	switch d {
	case types.DifficultyEasy:
		return p.Easy, nil
	case types.DifficultyNormal:
		return p.Normal, nil
	case types.DifficultyHard:
		return p.Hard, nil
	}
	return EnemySettings{}, fmt.Errorf("%w: %d", types.ErrUnknownDifficulty, int(d))
}

// FormationConfig 编队布局与移动参数
type FormationConfig struct {
	Width            int              `yaml:"width"`            // 每行敌人数
	Height           int              `yaml:"height"`           // 行数
	Spread           float64          `yaml:"spread"`           // 间距缩放
	NthOffset        float64          `yaml:"nthOffset"`        // 奇数行水平错位（缩放前）
	BoundsPadding    float64          `yaml:"boundsPadding"`    // 包围盒额外尺寸
	MoveSpeed        float64          `yaml:"moveSpeed"`        // 每步移动距离
	MoveDelay        float64          `yaml:"moveDelay"`        // 每步间隔（秒）
	Anchor           types.Vec2       `yaml:"anchor"`           // 编队锚点初始位置（生成时 X 会重置为 0）
	Difficulty       types.Difficulty `yaml:"difficulty"`       // 默认难度
	InitialFireDelay float64          `yaml:"initialFireDelay"` // 首次射击固定延迟（秒）
	PoolMaxSize      int              `yaml:"poolMaxSize"`      // 敌人对象池上限
	HitboxWidth      float64          `yaml:"hitboxWidth"`      // 敌人碰撞盒宽度
	HitboxHeight     float64          `yaml:"hitboxHeight"`     // 敌人碰撞盒高度
	MuzzleOffset     float64          `yaml:"muzzleOffset"`     // 枪口相对敌人中心的向下偏移
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	MaxLives            int        `yaml:"maxLives"`
	FireRate            float64    `yaml:"fireRate"`            // 每秒射击次数
	DeathDelay          float64    `yaml:"deathDelay"`          // 被击中到扣命、复位的延迟（秒）
	InvincibilityTime   float64    `yaml:"invincibilityTime"`   // 从受击时刻开始计算的无敌时间（秒）
	Speed               float64    `yaml:"speed"`               // 水平移动速度（世界单位/秒）
	ScreenEdgeThreshold float64    `yaml:"screenEdgeThreshold"` // 视口边缘阈值（0~1）
	SpawnPosition       types.Vec2 `yaml:"spawnPosition"`
	ProjectileSpeed     float64    `yaml:"projectileSpeed"`
	ProjectileDamage    int        `yaml:"projectileDamage"`
	ProjectileMaterial  string     `yaml:"projectileMaterial"`
	HitboxWidth         float64    `yaml:"hitboxWidth"`
	HitboxHeight        float64    `yaml:"hitboxHeight"`
	MuzzleOffset        float64    `yaml:"muzzleOffset"`
}

// BarrierConfig 单个掩体
type BarrierConfig struct {
	Position  types.Vec2 `yaml:"position"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	MaxHealth int        `yaml:"maxHealth"`
}

// ProjectileConfig 子弹对象池与边界
type ProjectileConfig struct {
	DefaultCapacity int        `yaml:"defaultCapacity"`
	MaxSize         int        `yaml:"maxSize"`
	Width           float64    `yaml:"width"`
	Height          float64    `yaml:"height"`
	Boundary        types.Rect `yaml:"boundary"` // 超出此区域的子弹直接回收
}

// ViewportConfig 视口（世界坐标可见范围）与编队边缘阈值
type ViewportConfig struct {
	MinX     float64 `yaml:"minX"`
	MaxX     float64 `yaml:"maxX"`
	MinY     float64 `yaml:"minY"`
	MaxY     float64 `yaml:"maxY"`
	EdgeLow  float64 `yaml:"edgeLow"`  // 左边缘阈值，包围盒左侧低于它时向右移动
	EdgeHigh float64 `yaml:"edgeHigh"` // 右边缘阈值，包围盒右侧高于它时向左移动
}

// TimersConfig 延迟行为的时间来源
type TimersConfig struct {
	// PauseFreezesTimers 为 true 时冷却、无敌、复活、编队步进随暂停冻结
	// 为 false 时按真实时间推进（暂停中计时器仍会到期）
	PauseFreezesTimers bool `yaml:"pauseFreezesTimers"`
}

// GameConfig 整局静态配置
type GameConfig struct {
	Formation   FormationConfig  `yaml:"formation"`
	Enemies     EnemyPresets     `yaml:"enemies"`
	Player      PlayerConfig     `yaml:"player"`
	Barriers    []BarrierConfig  `yaml:"barriers"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Viewport    ViewportConfig   `yaml:"viewport"`
	Timers      TimersConfig     `yaml:"timers"`
}

// DefaultGameConfig 返回与 data/invasion.yaml 一致的默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Formation: FormationConfig{
			Width:            5,
			Height:           5,
			Spread:           1.5,
			NthOffset:        0.5,
			BoundsPadding:    1.0,
			MoveSpeed:        0.5,
			MoveDelay:        1.0,
			Anchor:           types.Vec2{X: 0, Y: 4},
			Difficulty:       types.DifficultyEasy,
			InitialFireDelay: 1.0,
			PoolMaxSize:      100,
			HitboxWidth:      1.0,
			HitboxHeight:     1.0,
			MuzzleOffset:     0.6,
		},
		Enemies: EnemyPresets{
			Easy:   EnemySettings{Mesh: "enemy_easy", ProjectileMaterial: "bolt_green", Health: 1, Damage: 1, FireRate: 0.1, ProjectileSpeed: 4, Points: 10},
			Normal: EnemySettings{Mesh: "enemy_normal", ProjectileMaterial: "bolt_yellow", Health: 2, Damage: 1, FireRate: 0.15, ProjectileSpeed: 5, Points: 20},
			Hard:   EnemySettings{Mesh: "enemy_hard", ProjectileMaterial: "bolt_red", Health: 3, Damage: 1, FireRate: 0.2, ProjectileSpeed: 6, Points: 40},
		},
		Player: PlayerConfig{
			MaxLives:            3,
			FireRate:            1.0,
			DeathDelay:          0.5,
			InvincibilityTime:   1.0,
			Speed:               6.0,
			ScreenEdgeThreshold: 0.02,
			SpawnPosition:       types.Vec2{X: 0, Y: -7},
			ProjectileSpeed:     10,
			ProjectileDamage:    1,
			ProjectileMaterial:  "bolt_blue",
			HitboxWidth:         1.0,
			HitboxHeight:        0.6,
			MuzzleOffset:        0.5,
		},
		Barriers: []BarrierConfig{
			{Position: types.Vec2{X: -6, Y: -4}, Width: 2, Height: 1, MaxHealth: 10},
			{Position: types.Vec2{X: -2, Y: -4}, Width: 2, Height: 1, MaxHealth: 10},
			{Position: types.Vec2{X: 2, Y: -4}, Width: 2, Height: 1, MaxHealth: 10},
			{Position: types.Vec2{X: 6, Y: -4}, Width: 2, Height: 1, MaxHealth: 10},
		},
		Projectiles: ProjectileConfig{
			DefaultCapacity: 25,
			MaxSize:         50,
			Width:           0.2,
			Height:          0.5,
			Boundary:        types.Rect{Center: types.Vec2{X: 0, Y: 0}, Width: 24, Height: 20},
		},
		Viewport: ViewportConfig{
			MinX:     -10,
			MaxX:     10,
			MinY:     -8,
			MaxY:     8,
			EdgeLow:  0.05,
			EdgeHigh: 0.95,
		},
		Timers: TimersConfig{
			PauseFreezesTimers: true,
		},
	}
}

// LoadGameConfig 加载整局静态配置
//
// 嵌入文件系统已初始化且包含该路径时从嵌入数据读取，否则从磁盘读取。
// 文件中未出现的字段保留 DefaultGameConfig 的取值。
//
// 参数：
//
//	path - 配置文件路径，如 "data/invasion.yaml"
//
// 返回：
//
//	*GameConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败时返回
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 从 YAML 数据解析配置并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := validateGameConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	f := cfg.Formation
	if f.Width < 1 || f.Height < 1 {
		return fmt.Errorf("formation: width and height must be at least 1, got %dx%d", f.Width, f.Height)
	}
	if f.Spread <= 0 {
		return fmt.Errorf("formation: spread must be positive, got %v", f.Spread)
	}
	if f.MoveDelay < 0 || f.MoveSpeed < 0 {
		return fmt.Errorf("formation: moveDelay and moveSpeed cannot be negative")
	}
	if f.InitialFireDelay < 0 {
		return fmt.Errorf("formation: initialFireDelay cannot be negative, got %v", f.InitialFireDelay)
	}
	if !f.Difficulty.Valid() {
		return fmt.Errorf("formation: %w: %d", types.ErrUnknownDifficulty, int(f.Difficulty))
	}
	// 对象池上限必须足以容纳一整波敌人，耗尽视为配置错误
	if f.PoolMaxSize < f.Width*f.Height {
		return fmt.Errorf("formation: poolMaxSize %d is smaller than one wave (%d)", f.PoolMaxSize, f.Width*f.Height)
	}

	presets := map[string]EnemySettings{
		"easy":   cfg.Enemies.Easy,
		"normal": cfg.Enemies.Normal,
		"hard":   cfg.Enemies.Hard,
	}
	for name, e := range presets {
		if e.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", name, e.Health)
		}
		if e.Damage < 1 {
			return fmt.Errorf("enemy %s: damage must be at least 1, got %d", name, e.Damage)
		}
		if e.FireRate <= 0 {
			return fmt.Errorf("enemy %s: fireRate must be positive, got %v", name, e.FireRate)
		}
		if e.ProjectileSpeed <= 0 {
			return fmt.Errorf("enemy %s: projectileSpeed must be positive, got %v", name, e.ProjectileSpeed)
		}
		if e.Points < 0 {
			return fmt.Errorf("enemy %s: points cannot be negative, got %d", name, e.Points)
		}
	}

	p := cfg.Player
	if p.MaxLives < 1 {
		return fmt.Errorf("player: maxLives must be at least 1, got %d", p.MaxLives)
	}
	if p.FireRate <= 0 {
		return fmt.Errorf("player: fireRate must be positive, got %v", p.FireRate)
	}
	if p.DeathDelay < 0 || p.InvincibilityTime < 0 {
		return fmt.Errorf("player: deathDelay and invincibilityTime cannot be negative")
	}
	if p.ProjectileDamage < 1 {
		return fmt.Errorf("player: projectileDamage must be at least 1, got %d", p.ProjectileDamage)
	}

	for i, b := range cfg.Barriers {
		if b.MaxHealth < 1 {
			return fmt.Errorf("barrier %d: maxHealth must be at least 1, got %d", i, b.MaxHealth)
		}
	}

	pr := cfg.Projectiles
	if pr.MaxSize < 1 {
		return fmt.Errorf("projectiles: maxSize must be at least 1, got %d", pr.MaxSize)
	}
	if pr.DefaultCapacity < 0 || pr.DefaultCapacity > pr.MaxSize {
		return fmt.Errorf("projectiles: defaultCapacity %d must be within [0, maxSize=%d]", pr.DefaultCapacity, pr.MaxSize)
	}

	v := cfg.Viewport
	if v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		return fmt.Errorf("viewport: max must be greater than min")
	}
	if v.EdgeLow < 0 || v.EdgeHigh > 1 || v.EdgeLow >= v.EdgeHigh {
		return fmt.Errorf("viewport: edge thresholds must satisfy 0 <= edgeLow < edgeHigh <= 1, got %v/%v", v.EdgeLow, v.EdgeHigh)
	}

	return nil
}
