package game

// InputState 每帧采样一次的输入
// *Edge 字段只在按下的那一帧为 true
type InputState struct {
	Move        float64 // 水平移动 -1 ~ 1
	FirePressed bool
	PauseEdge   bool
	CancelEdge  bool
	StartEdge   bool
}

// ActionMap 输入映射
type ActionMap int

const (
	// ActionMapUI 菜单操作
	ActionMapUI ActionMap = iota
	// ActionMapPlayer 飞船操作
	ActionMapPlayer
)

// String 返回映射名称
func (m ActionMap) String() string {
	if m == ActionMapPlayer {
		return "Player"
	}
	return "UI"
}

// InputContext 输入上下文（由平台层实现）
type InputContext interface {
	SwitchActionMap(m ActionMap)
	SetCursorVisible(visible bool)
}

type nopInputContext struct{}

func (nopInputContext) SwitchActionMap(ActionMap) {}
func (nopInputContext) SetCursorVisible(bool)     {}
