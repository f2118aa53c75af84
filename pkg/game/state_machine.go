package game

import (
	"errors"
	"fmt"
	"log"
)

// StateID 游戏流程状态
type StateID int

const (
	// StateIntro 标题菜单
	StateIntro StateID = iota
	// StatePrepareInvasion 生成编队，等待开始
	StatePrepareInvasion
	// StateGameplay 对局进行中
	StateGameplay
	// StatePause 暂停
	StatePause
	// StateFinish 结算
	StateFinish

	stateCount
)

// String 返回状态名称
func (id StateID) String() string {
	switch id {
	case StateIntro:
		return "Intro"
	case StatePrepareInvasion:
		return "PrepareInvasion"
	case StateGameplay:
		return "Gameplay"
	case StatePause:
		return "Pause"
	case StateFinish:
		return "Finish"
	default:
		return fmt.Sprintf("State(%d)", int(id))
	}
}

var (
	// ErrTransitionInExit 在 Exit 回调中请求切换
	ErrTransitionInExit = errors.New("state transition requested from Exit")
	// ErrReentrantEnter 在 Enter 回调中请求切换
	ErrReentrantEnter = errors.New("state transition requested while another Enter is in progress")
	// ErrUnknownState 状态未注册
	ErrUnknownState = errors.New("unknown state")
)

// StateHandlers 单个状态的生命周期回调，任一项可为 nil
type StateHandlers struct {
	Enter func()
	Tick  func()
	Exit  func()
}

// StateMachine 游戏流程状态机
//
// 状态表在创建后注册；任意时刻只有一个当前状态，
// 切换时总是先调用旧状态的 Exit，再调用新状态的 Enter。
type StateMachine struct {
	handlers   [stateCount]StateHandlers
	registered [stateCount]bool
	current    StateID
	started    bool
	inEnter    bool
	inExit     bool
}

// NewStateMachine 创建空状态机
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Register 注册状态回调
func (sm *StateMachine) Register(id StateID, handlers StateHandlers) {
	if id < 0 || id >= stateCount {
		log.Printf("[StateMachine] ERROR: cannot register %s", id)
		return
	}
	sm.handlers[id] = handlers
	sm.registered[id] = true
}

// Start 进入初始状态（只调用 Enter）
func (sm *StateMachine) Start(initial StateID) error {
	if sm.started {
		return sm.ChangeState(initial)
	}
	if !sm.isRegistered(initial) {
		return fmt.Errorf("start %s: %w", initial, ErrUnknownState)
	}
	sm.started = true
	sm.current = initial
	sm.enter(initial)
	log.Printf("[StateMachine] Started in %s", initial)
	return nil
}

// ChangeState 切换到目标状态
//
// 返回：
//   - error: 在 Exit 中请求切换返回 ErrTransitionInExit，
//     在 Enter 中请求切换返回 ErrReentrantEnter，目标未注册返回 ErrUnknownState。
//     被拒绝的切换只记录日志，当前状态不变。
func (sm *StateMachine) ChangeState(next StateID) error {
	var err error
	switch {
	case sm.inExit:
		err = ErrTransitionInExit
	case sm.inEnter:
		err = ErrReentrantEnter
	case !sm.isRegistered(next):
		err = ErrUnknownState
	}
	if err != nil {
		err = fmt.Errorf("change %s -> %s: %w", sm.current, next, err)
		log.Printf("[StateMachine] ERROR: %v", err)
		return err
	}

	if !sm.started {
		return sm.Start(next)
	}

	prev := sm.current
	if h := sm.handlers[prev].Exit; h != nil {
		sm.inExit = true
		h()
		sm.inExit = false
	}
	sm.current = next
	sm.enter(next)

	log.Printf("[StateMachine] %s -> %s", prev, next)
	return nil
}

func (sm *StateMachine) enter(id StateID) {
	if h := sm.handlers[id].Enter; h != nil {
		sm.inEnter = true
		h()
		sm.inEnter = false
	}
}

// Tick 执行当前状态的每帧逻辑
func (sm *StateMachine) Tick() {
	if !sm.started {
		return
	}
	if h := sm.handlers[sm.current].Tick; h != nil {
		h()
	}
}

// Current 当前状态
func (sm *StateMachine) Current() StateID {
	return sm.current
}

// Started 是否已进入初始状态
func (sm *StateMachine) Started() bool {
	return sm.started
}

func (sm *StateMachine) isRegistered(id StateID) bool {
	return id >= 0 && id < stateCount && sm.registered[id]
}
