package systems

import (
	"errors"
	"testing"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/pool"
	"github.com/decker502/invasion/pkg/types"
)

// TestBoxFormationPoints 测试网格布局
func TestBoxFormationPoints(t *testing.T) {
	points := BoxFormationPoints(5, 5, 1, 0.5, nil)
	if len(points) != 25 {
		t.Fatalf("Expected 25 points, got %d", len(points))
	}

	tests := []struct {
		index int
		want  types.Vec2
	}{
		{0, types.Vec2{X: -2.5, Y: -2.5}},
		{1, types.Vec2{X: -1.5, Y: -2.5}},
		{5, types.Vec2{X: -2, Y: -1.5}}, // 奇数行错开
		{10, types.Vec2{X: -2.5, Y: -0.5}},
		{24, types.Vec2{X: 1.5, Y: 1.5}},
	}
	for _, tt := range tests {
		if points[tt.index] != tt.want {
			t.Errorf("point[%d] = %+v, want %+v", tt.index, points[tt.index], tt.want)
		}
	}

	// spread 缩放整个布局
	scaled := BoxFormationPoints(5, 5, 2, 0.5, make([]types.Vec2, 0, 25))
	if scaled[5] != (types.Vec2{X: -4, Y: -3}) {
		t.Errorf("Expected scaled point (-4,-3), got %+v", scaled[5])
	}
}

// TestDifficultyCounts 测试难度分布数量
func TestDifficultyCounts(t *testing.T) {
	tests := []struct {
		name          string
		level         types.Difficulty
		width, height int
		hard, normal  int
		easy          int
	}{
		{"简单 5x5", types.DifficultyEasy, 5, 5, 0, 0, 25},
		{"普通 5x5", types.DifficultyNormal, 5, 5, 0, 10, 15},
		{"困难 5x5", types.DifficultyHard, 5, 5, 5, 10, 10},
		{"困难 单行", types.DifficultyHard, 4, 1, 4, 0, 0},
		{"普通 8x4", types.DifficultyNormal, 8, 4, 0, 16, 16},
		{"困难 3x7", types.DifficultyHard, 3, 7, 3, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hard, normal, easy, err := DifficultyCounts(tt.level, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if hard != tt.hard || normal != tt.normal || easy != tt.easy {
				t.Errorf("Got hard=%d normal=%d easy=%d, want %d/%d/%d", hard, normal, easy, tt.hard, tt.normal, tt.easy)
			}
			if hard+normal+easy != tt.width*tt.height {
				t.Errorf("Counts do not cover the grid: %d", hard+normal+easy)
			}
		})
	}

	if _, _, _, err := DifficultyCounts(types.Difficulty(9), 5, 5); !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Errorf("Expected ErrUnknownDifficulty, got %v", err)
	}
}

// TestSpawnWaveDistribution 测试生成顺序与档位分配
func TestSpawnWaveDistribution(t *testing.T) {
	f := newFormationFixture(nil)
	if err := f.formation.SetDifficulty(types.DifficultyHard); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}

	enemies := f.formation.Enemies()
	if len(enemies) != 25 || f.formation.ActiveCount() != 25 {
		t.Fatalf("Expected 25 enemies, got %d (active %d)", len(enemies), f.formation.ActiveCount())
	}

	counts := map[types.Difficulty]int{}
	for i, e := range enemies {
		counts[e.Difficulty()]++
		var want types.Difficulty
		switch {
		case i < 5:
			want = types.DifficultyHard
		case i < 15:
			want = types.DifficultyNormal
		default:
			want = types.DifficultyEasy
		}
		if e.Difficulty() != want {
			t.Errorf("enemy[%d] difficulty = %s, want %s", i, e.Difficulty(), want)
		}
	}
	if counts[types.DifficultyHard] != 5 {
		t.Errorf("Expected hard == width, got %d", counts[types.DifficultyHard])
	}

	hard := enemies[0]
	if hard.Health() != 3 || hard.Points() != 40 || hard.Mesh() != "enemy_hard" {
		t.Errorf("Hard preset not applied: health=%d points=%d mesh=%s", hard.Health(), hard.Points(), hard.Mesh())
	}

	if f.formation.Anchor().X != 0 || f.formation.Direction() != 1 {
		t.Errorf("Spawn should reset anchor x and direction, got x=%.2f dir=%d", f.formation.Anchor().X, f.formation.Direction())
	}
}

// TestSpawnWaveUnknownDifficulty 测试未知难度拒绝生成
func TestSpawnWaveUnknownDifficulty(t *testing.T) {
	f := newFormationFixture(nil)
	if err := f.formation.SetDifficulty(types.Difficulty(5)); !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Errorf("SetDifficulty should reject unknown level, got %v", err)
	}

	f.formation.difficulty = types.Difficulty(5)
	err := f.formation.SpawnWave()
	if !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Fatalf("Expected ErrUnknownDifficulty, got %v", err)
	}
	if f.formation.ActiveCount() != 0 {
		t.Errorf("No enemy should be spawned, got %d", f.formation.ActiveCount())
	}
}

// TestSpawnWavePoolExhausted 测试对象池耗尽时截断波次
func TestSpawnWavePoolExhausted(t *testing.T) {
	f := newFormationFixture(func(cfg *config.GameConfig) {
		cfg.Formation.PoolMaxSize = 10
	})
	err := f.formation.SpawnWave()
	if !errors.Is(err, pool.ErrExhausted) {
		t.Fatalf("Expected pool.ErrExhausted, got %v", err)
	}
	if len(f.formation.Enemies()) != 10 {
		t.Errorf("Already spawned enemies should stay, got %d", len(f.formation.Enemies()))
	}
	for i, e := range f.formation.Enemies() {
		if e.Health() <= 0 {
			t.Errorf("enemy[%d] has no preset applied", i)
		}
	}
}

// TestFormationBounds 测试包围盒（无敌人时使用理论网格）
func TestFormationBounds(t *testing.T) {
	f := newFormationFixture(nil)

	check := func(label string) {
		t.Helper()
		b := f.formation.Bounds()
		// 锚点 (0,4)，spread 1.5，nthOffset 0.5，padding 1
		if !almostEqual(b.Min.X, -4.25) || !almostEqual(b.Max.X, 3.5) {
			t.Errorf("%s: x range [%.2f, %.2f], want [-4.25, 3.5]", label, b.Min.X, b.Max.X)
		}
		if !almostEqual(b.Min.Y, -0.25) || !almostEqual(b.Max.Y, 6.75) {
			t.Errorf("%s: y range [%.2f, %.2f], want [-0.25, 6.75]", label, b.Min.Y, b.Max.Y)
		}
	}

	check("empty")
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}
	f.formation.Update()
	check("spawned")
}

// TestAdvanceSingleFlight 测试步进单飞
func TestAdvanceSingleFlight(t *testing.T) {
	f := newFormationFixture(nil)
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}

	f.formation.Advance()
	if !f.formation.IsMoving() {
		t.Fatal("Advance should start a pending step")
	}
	for i := 0; i < 5; i++ {
		f.formation.Advance()
	}

	f.sched.Update(0.5)
	if f.formation.Anchor().X != 0 {
		t.Errorf("Anchor should not move before moveDelay, got %.2f", f.formation.Anchor().X)
	}
	f.sched.Update(0.5)
	if f.formation.Anchor().X != 0.5 {
		t.Errorf("Expected exactly one step of 0.5, got %.2f", f.formation.Anchor().X)
	}
	if f.formation.IsMoving() {
		t.Error("Guard should clear after the step")
	}

	// 敌人跟随锚点
	if got := f.formation.Enemies()[0].WorldPosition().X; !almostEqual(got, -3.25) {
		t.Errorf("Enemy should follow anchor, got X=%.2f", got)
	}
}

// TestAdvanceDirection 测试视口边缘反向，右侧优先
func TestAdvanceDirection(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		anchorX float64
		start   int
		want    int
	}{
		{"靠右反向", 5, 8, 1, -1},
		{"靠左反向", 5, -8, -1, 1},
		{"中间保持", 5, 0, -1, -1},
		{"两侧都越界时向左", 20, 0, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormationFixture(func(cfg *config.GameConfig) {
				cfg.Formation.Width = tt.width
			})
			f.formation.anchor.X = tt.anchorX
			f.formation.direction = tt.start
			f.formation.Update()

			f.formation.Advance()
			if f.formation.Direction() != tt.want {
				t.Errorf("Expected direction %d, got %d", tt.want, f.formation.Direction())
			}
		})
	}
}

// TestAdvanceWallClockTimeScale 测试不随暂停冻结时，暂停中的步进距离为 0
func TestAdvanceWallClockTimeScale(t *testing.T) {
	f := newFormationFixture(func(cfg *config.GameConfig) {
		cfg.Timers.PauseFreezesTimers = false
	})
	f.formation.Advance()
	f.sched.SetTimeScale(0)
	f.sched.Update(1)

	if f.formation.IsMoving() {
		t.Error("Wall-clock step should complete while paused")
	}
	if f.formation.Anchor().X != 0 {
		t.Errorf("Step during pause should be scaled to zero, got %.2f", f.formation.Anchor().X)
	}
}

// TestEnemyDefeatAwardsPoints 测试击毁加分并回收
func TestEnemyDefeatAwardsPoints(t *testing.T) {
	f := newFormationFixture(nil)
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}
	target := f.formation.Enemies()[3]

	bullet, err := f.projectiles.Spawn(entities.LaunchParams{
		Position:       target.WorldPosition(),
		Heading:        entities.HeadingUp,
		Speed:          10,
		Damage:         1,
		IsPlayerBullet: true,
	})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	target.OnProjectileHit(bullet)

	if f.awarder.total != 10 || f.awarder.calls != 1 {
		t.Errorf("Expected 10 points in one call, got %d in %d", f.awarder.total, f.awarder.calls)
	}
	if f.formation.ActiveCount() != 24 || len(f.formation.Enemies()) != 24 {
		t.Errorf("Expected 24 enemies left, got %d/%d", f.formation.ActiveCount(), len(f.formation.Enemies()))
	}
	if target.Active() {
		t.Error("Defeated enemy should be released")
	}
	if f.projectiles.ActiveCount() != 0 {
		t.Errorf("Projectile should be consumed, got %d active", f.projectiles.ActiveCount())
	}

	// 陈旧的击毁回调
	f.formation.destroyEnemy(target)
	if f.awarder.calls != 1 || f.formation.ActiveCount() != 24 {
		t.Error("Stale defeat should be a no-op")
	}
}

// TestBeginFiringNoDuplicates 测试重复开启射击不会叠加循环
func TestBeginFiringNoDuplicates(t *testing.T) {
	f := newFormationFixture(nil)
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}
	f.formation.BeginFiring()
	f.formation.BeginFiring()
	if got := f.sched.Pending(); got != 25 {
		t.Errorf("Expected 25 fire loops, got %d", got)
	}

	f.formation.StopFiring()
	if got := f.sched.Pending(); got != 0 {
		t.Errorf("Expected no loops after StopFiring, got %d", got)
	}
}

// TestDespawnWaveReusesPool 测试回收后再次生成复用实例
func TestDespawnWaveReusesPool(t *testing.T) {
	f := newFormationFixture(nil)
	for round := 0; round < 3; round++ {
		if err := f.formation.SpawnWave(); err != nil {
			t.Fatalf("round %d: SpawnWave failed: %v", round, err)
		}
		f.formation.BeginFiring()
		f.formation.Advance()
		f.formation.DespawnWave()

		if f.formation.ActiveCount() != 0 || len(f.formation.Enemies()) != 0 {
			t.Fatalf("round %d: wave should be empty", round)
		}
		if f.sched.Pending() != 0 {
			t.Errorf("round %d: expected no pending timers, got %d", round, f.sched.Pending())
		}
	}
	if created := f.formation.pool.CountAll(); created != 25 {
		t.Errorf("Expected 25 instances reused across waves, got %d", created)
	}
}

// TestResetBarriers 测试掩体重置与通知
func TestResetBarriers(t *testing.T) {
	var notified []int
	cfg := config.DefaultGameConfig()
	fs := NewFormationSystem(cfg, FormationDeps{
		Clock: newFormationFixture(nil).sched,
		OnBarrierHealthChanged: func(index, health int) {
			notified = append(notified, index)
		},
	})
	if len(fs.Barriers()) != 4 {
		t.Fatalf("Expected 4 barriers, got %d", len(fs.Barriers()))
	}
	notified = notified[:0]
	fs.ResetBarriers()
	if len(notified) != 4 {
		t.Errorf("Expected 4 notifications, got %v", notified)
	}
}
