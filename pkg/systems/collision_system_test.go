package systems

import (
	"testing"

	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/types"
)

func newCollisionFixture(t *testing.T) (*formationFixture, *entities.Player, *CollisionSystem) {
	t.Helper()
	f := newFormationFixture(nil)
	player := entities.NewPlayer(f.cfg.Player, entities.PlayerDeps{
		Scheduler: f.sched,
		Spawner:   f.projectiles,
		Viewport:  testViewport{},
	})
	f.formation.deps.Awarder = player
	if err := f.formation.SpawnWave(); err != nil {
		t.Fatalf("SpawnWave failed: %v", err)
	}
	return f, player, NewCollisionSystem(f.projectiles, f.formation, player)
}

// TestCollisionPlayerBulletDefeatsEnemy 测试玩家子弹击毁敌人并加分
func TestCollisionPlayerBulletDefeatsEnemy(t *testing.T) {
	f, player, cs := newCollisionFixture(t)
	target := f.formation.Enemies()[0]

	_, err := f.projectiles.Spawn(entities.LaunchParams{
		Position:       target.WorldPosition(),
		Heading:        entities.HeadingUp,
		Speed:          10,
		Damage:         1,
		IsPlayerBullet: true,
	})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if hits := cs.Update(); hits != 1 {
		t.Fatalf("Expected 1 hit, got %d", hits)
	}
	if player.CurrentScore() != 10 {
		t.Errorf("Expected score 10, got %d", player.CurrentScore())
	}
	if f.formation.ActiveCount() != 24 {
		t.Errorf("Expected 24 enemies, got %d", f.formation.ActiveCount())
	}
	if f.projectiles.ActiveCount() != 0 {
		t.Error("Projectile should be consumed")
	}
}

// TestCollisionEnemyBulletPassesEnemies 测试敌人子弹穿过敌人
func TestCollisionEnemyBulletPassesEnemies(t *testing.T) {
	f, _, cs := newCollisionFixture(t)
	target := f.formation.Enemies()[12]

	p, _ := f.projectiles.Spawn(enemyShot(target.WorldPosition()))
	if hits := cs.Update(); hits != 0 {
		t.Errorf("Enemy projectile should not hit enemies, got %d hits", hits)
	}
	if !p.Active() || !target.Active() {
		t.Error("Both projectile and enemy should be untouched")
	}
}

// TestCollisionBarrier 测试两种子弹都会打在掩体上
func TestCollisionBarrier(t *testing.T) {
	f, _, cs := newCollisionFixture(t)
	barrier := f.formation.Barriers()[0]
	at := f.cfg.Barriers[0].Position

	f.projectiles.Spawn(enemyShot(at))
	f.projectiles.Spawn(entities.LaunchParams{Position: at, Heading: entities.HeadingUp, Speed: 10, Damage: 1, IsPlayerBullet: true})

	if hits := cs.Update(); hits != 2 {
		t.Fatalf("Expected 2 barrier hits, got %d", hits)
	}
	if barrier.Health() != 8 {
		t.Errorf("Expected barrier health 8, got %d", barrier.Health())
	}
}

// TestCollisionHiddenBarrier 测试隐藏的掩体不参与碰撞
func TestCollisionHiddenBarrier(t *testing.T) {
	f, _, cs := newCollisionFixture(t)
	barrier := f.formation.Barriers()[1]
	at := f.cfg.Barriers[1].Position

	f.projectiles.Spawn(entities.LaunchParams{Position: at, Heading: entities.HeadingDown, Speed: 1, Damage: 10})
	cs.Update()
	if barrier.Visible() {
		t.Fatal("Barrier should be hidden after taking max health damage")
	}

	p, _ := f.projectiles.Spawn(enemyShot(at))
	if hits := cs.Update(); hits != 0 || !p.Active() {
		t.Errorf("Hidden barrier should let projectiles through, hits=%d", hits)
	}
}

// TestCollisionPlayerHit 测试敌人子弹命中玩家
func TestCollisionPlayerHit(t *testing.T) {
	f, player, cs := newCollisionFixture(t)

	f.projectiles.Spawn(enemyShot(player.Position()))
	f.projectiles.Spawn(enemyShot(player.Position().Add(types.Vec2{X: 0.1})))
	if hits := cs.Update(); hits != 2 {
		t.Fatalf("Expected both projectiles consumed by the player, got %d", hits)
	}
	if !player.IsRespawning() {
		t.Error("Player should be respawning after the hit")
	}

	f.sched.Update(0.5)
	if player.CurrentLives() != 2 {
		t.Errorf("Two simultaneous hits should cost a single life, got %d lives", player.CurrentLives())
	}
}
