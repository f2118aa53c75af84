package game

import (
	"errors"
	"testing"

	"github.com/decker502/invasion/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Difficulty != types.DifficultyEasy {
		t.Errorf("Difficulty: got %s, want Easy", settings.Difficulty)
	}
	if settings.HighScore != 0 {
		t.Errorf("HighScore: got %d, want 0", settings.HighScore)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_invasion_settings")

	sm1 := NewSettingsManager(gdataManager)
	if err := sm1.SetDifficulty(types.DifficultyHard); err != nil {
		t.Fatalf("SetDifficulty() error: %v", err)
	}
	if !sm1.RecordScore(420) {
		t.Error("RecordScore(420) should set a new high score")
	}
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(gdataManager)
	settings := sm2.GetSettings()
	if settings.Difficulty != types.DifficultyHard {
		t.Errorf("Loaded Difficulty: got %s, want Hard", settings.Difficulty)
	}
	if settings.HighScore != 420 {
		t.Errorf("Loaded HighScore: got %d, want 420", settings.HighScore)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsCorruptData 测试损坏数据回退到默认设置
func TestSettingsCorruptData(t *testing.T) {
	gdataManager := openTestGdata(t, "test_invasion_corrupt")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("difficulty: Impossible\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	if sm.Difficulty() != types.DifficultyEasy {
		t.Errorf("Corrupt settings should fall back to Easy, got %s", sm.Difficulty())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSettingsNilGdata 测试降级模式
func TestSettingsNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetDifficulty(types.DifficultyNormal)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 降级模式下 Load() 恢复默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.Difficulty() != types.DifficultyEasy {
		t.Errorf("After Load() in degraded mode: got %s, want Easy", sm.Difficulty())
	}
}

// TestSetDifficultyRejectsUnknown 测试未知难度
func TestSetDifficultyRejectsUnknown(t *testing.T) {
	sm := NewSettingsManager(nil)
	err := sm.SetDifficulty(types.Difficulty(7))
	if !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Errorf("Expected ErrUnknownDifficulty, got %v", err)
	}
	if sm.Difficulty() != types.DifficultyEasy {
		t.Errorf("Difficulty should be unchanged, got %s", sm.Difficulty())
	}
}

// TestRecordScore 测试最高分记录
func TestRecordScore(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		score   int
		updated bool
		high    int
	}{
		{0, false, 0},
		{50, true, 50},
		{30, false, 50},
		{50, false, 50},
		{80, true, 80},
	}

	for _, tt := range tests {
		if got := sm.RecordScore(tt.score); got != tt.updated {
			t.Errorf("RecordScore(%d): got %v, want %v", tt.score, got, tt.updated)
		}
		if sm.HighScore() != tt.high {
			t.Errorf("After RecordScore(%d): high score %d, want %d", tt.score, sm.HighScore(), tt.high)
		}
	}
}
