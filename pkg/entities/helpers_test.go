package entities

import (
	"errors"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// fakeSpawner 记录发射的子弹，销毁即原地失活
type fakeSpawner struct {
	launched []*Projectile
	fail     bool
}

var errFakeExhausted = errors.New("fake pool exhausted")

func (s *fakeSpawner) Spawn(params LaunchParams) (*Projectile, error) {
	if s.fail {
		return nil, errFakeExhausted
	}
	p := NewProjectile(0.2, 0.5)
	p.Activate(func(p *Projectile) { p.Deactivate() })
	p.Launch(params)
	s.launched = append(s.launched, p)
	return p, nil
}

// fakeObserver 记录玩家通知
type fakeObserver struct {
	lives []int
	score []int
	hits  int
}

func (o *fakeObserver) LivesChanged(lives int) { o.lives = append(o.lives, lives) }
func (o *fakeObserver) ScoreChanged(score int) { o.score = append(o.score, score) }
func (o *fakeObserver) PlayerHit()             { o.hits++ }

// fakeViewport 把 [-10, 10] 的 X 线性映射到 [0, 1]
type fakeViewport struct{}

func (fakeViewport) WorldToViewport(p types.Vec2) types.Vec2 {
	return types.Vec2{X: (p.X + 10) / 20, Y: (p.Y + 8) / 16}
}

// newLiveProjectile 创建一发已发射的子弹
func newLiveProjectile(playerBullet bool, damage int) *Projectile {
	p := NewProjectile(0.2, 0.5)
	p.Activate(func(p *Projectile) { p.Deactivate() })
	p.Launch(LaunchParams{Damage: damage, IsPlayerBullet: playerBullet, Speed: 5, Heading: HeadingUp})
	return p
}

func testPlayerConfig() config.PlayerConfig {
	return config.DefaultGameConfig().Player
}
