package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// testViewport 把 [-10, 10] x [-8, 8] 线性映射到 [0, 1]
type testViewport struct{}

func (testViewport) WorldToViewport(p types.Vec2) types.Vec2 {
	return types.Vec2{X: (p.X + 10) / 20, Y: (p.Y + 8) / 16}
}

// recordingAwarder 记录加分
type recordingAwarder struct {
	total int
	calls int
}

func (a *recordingAwarder) AddPoints(points int) {
	a.total += points
	a.calls++
}

type formationFixture struct {
	cfg         *config.GameConfig
	sched       *clock.Scheduler
	projectiles *ProjectileSystem
	formation   *FormationSystem
	awarder     *recordingAwarder
}

func newFormationFixture(mutate func(cfg *config.GameConfig)) *formationFixture {
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(cfg)
	}
	f := &formationFixture{
		cfg:     cfg,
		sched:   clock.NewScheduler(cfg.Timers.PauseFreezesTimers),
		awarder: &recordingAwarder{},
	}
	f.projectiles = NewProjectileSystem(cfg.Projectiles)
	f.formation = NewFormationSystem(cfg, FormationDeps{
		Clock:    f.sched,
		Spawner:  f.projectiles,
		Viewport: testViewport{},
		Awarder:  f.awarder,
		Rand:     rand.New(rand.NewSource(1)),
	})
	return f
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
