package game

import (
	"fmt"
	"log"

	"github.com/decker502/invasion/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家设置
// 跨局保留，与单局进度无关（不保存对局中途状态）
type GameSettings struct {
	Difficulty types.Difficulty `yaml:"difficulty"` // 上次选择的难度
	HighScore  int              `yaml:"highScore"`  // 历史最高分
	Fullscreen bool             `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Difficulty: types.DifficultyEasy,
		HighScore:  0,
		Fullscreen: false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（此时已回退到默认设置）
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.HighScore < 0 {
		loaded.HighScore = 0
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (difficulty=%s, highScore=%d)", loaded.Difficulty, loaded.HighScore)
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Difficulty 上次选择的难度
func (sm *SettingsManager) Difficulty() types.Difficulty {
	return sm.settings.Difficulty
}

// SetDifficulty 设置难度
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 返回：
//   - error: 未知难度返回 types.ErrUnknownDifficulty，设置不变
func (sm *SettingsManager) SetDifficulty(level types.Difficulty) error {
	if !level.Valid() {
		return fmt.Errorf("settings difficulty %d: %w", int(level), types.ErrUnknownDifficulty)
	}
	sm.settings.Difficulty = level
	return nil
}

// HighScore 历史最高分
func (sm *SettingsManager) HighScore() int {
	return sm.settings.HighScore
}

// RecordScore 记录一局的最终分数
//
// 返回：
//   - bool: 是否刷新了最高分（刷新时需调用 Save() 持久化）
func (sm *SettingsManager) RecordScore(score int) bool {
	if score <= sm.settings.HighScore {
		return false
	}
	sm.settings.HighScore = score
	return true
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
