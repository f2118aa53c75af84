package entities

import (
	"testing"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// TestBarrierDepletion 测试掩体 10 -> 4 -> 隐藏
func TestBarrierDepletion(t *testing.T) {
	var notified [][2]int
	b := NewBarrier(2, config.BarrierConfig{
		Position:  types.Vec2{X: 2, Y: -4},
		Width:     2,
		Height:    1,
		MaxHealth: 10,
	}, func(index, health int) {
		notified = append(notified, [2]int{index, health})
	})

	hit := newLiveProjectile(false, 6)
	if !b.Accepts(hit) {
		t.Fatal("Barrier should accept enemy projectiles")
	}
	b.OnProjectileHit(hit)
	if b.Health() != 4 || !b.Visible() {
		t.Fatalf("Expected health 4 and visible, got %d visible=%v", b.Health(), b.Visible())
	}
	if hit.Active() {
		t.Error("Projectile should be consumed")
	}

	player := newLiveProjectile(true, 6)
	if !b.Accepts(player) {
		t.Fatal("Barrier should accept player projectiles")
	}
	b.OnProjectileHit(player)
	if b.Visible() {
		t.Error("Barrier should hide at zero health")
	}
	if b.Accepts(newLiveProjectile(true, 1)) {
		t.Error("Hidden barrier should not accept hits")
	}

	want := [][2]int{{2, 10}, {2, 4}, {2, -2}}
	if len(notified) != len(want) {
		t.Fatalf("Expected %d notifications, got %v", len(want), notified)
	}
	for i := range want {
		if notified[i] != want[i] {
			t.Errorf("Notification %d: want %v got %v", i, want[i], notified[i])
		}
	}

	b.ResetBarrier()
	if b.Health() != 10 || !b.Visible() {
		t.Errorf("Reset should restore health and visibility, got %d %v", b.Health(), b.Visible())
	}
}

// TestBarrierIgnoresUntagged 测试未发射子弹不命中
func TestBarrierIgnoresUntagged(t *testing.T) {
	b := NewBarrier(0, config.DefaultGameConfig().Barriers[0], nil)
	p := NewProjectile(0.2, 0.5)
	p.Activate(nil)
	if b.Accepts(p) {
		t.Error("Untagged projectile should not hit the barrier")
	}
	if got := b.Hitbox(); got.Center != (types.Vec2{X: -6, Y: -4}) {
		t.Errorf("Unexpected hitbox center %+v", got.Center)
	}
}
