package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/invasion/pkg/clock"
	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/systems"
	"github.com/decker502/invasion/pkg/types"
)

// SessionDeps 对局依赖
// 除 Viewport 外都可为 nil，使用无操作或内存实现
type SessionDeps struct {
	Viewport  entities.Viewport
	Presenter Presenter
	Input     InputContext
	Settings  *SettingsManager
	Rand      *rand.Rand
}

// Session 一局游戏的拥有者
//
// 持有调度器、对象池、各系统、玩家、状态机和信号总线，
// 所有修改都发生在 Update 和 Emit 中（单线程）。
type Session struct {
	cfg *config.GameConfig

	clock       *clock.Scheduler
	projectiles *systems.ProjectileSystem
	formation   *systems.FormationSystem
	collisions  *systems.CollisionSystem
	player      *entities.Player

	machine  *StateMachine
	signals  *SignalBus
	settings *SettingsManager

	presenter Presenter
	input     InputContext
	actionMap ActionMap
	frame     InputState
}

// NewSession 创建对局并进入 Intro
//
// 参数：
//   - cfg: 已校验的整局配置
//   - deps: 视口投影、表现层、输入上下文、设置、随机源
//
// 返回：
//   - *Session: 处于 Intro 状态的对局
//   - error: 配置或依赖缺失时返回错误
func NewSession(cfg *config.GameConfig, deps SessionDeps) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("new session: config is nil")
	}
	if deps.Viewport == nil {
		return nil, errors.New("new session: viewport is nil")
	}
	if deps.Presenter == nil {
		deps.Presenter = NopPresenter{}
	}
	if deps.Input == nil {
		deps.Input = nopInputContext{}
	}
	difficulty := cfg.Formation.Difficulty
	if deps.Settings == nil {
		deps.Settings = NewSettingsManager(nil)
	} else {
		difficulty = deps.Settings.Difficulty()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		cfg:       cfg,
		clock:     clock.NewScheduler(cfg.Timers.PauseFreezesTimers),
		machine:   NewStateMachine(),
		signals:   NewSignalBus(),
		settings:  deps.Settings,
		presenter: deps.Presenter,
		input:     deps.Input,
	}

	s.projectiles = systems.NewProjectileSystem(cfg.Projectiles)
	s.player = entities.NewPlayer(cfg.Player, entities.PlayerDeps{
		Scheduler: s.clock,
		Spawner:   s.projectiles,
		Viewport:  deps.Viewport,
		Observer:  s.presenter,
	})
	s.formation = systems.NewFormationSystem(cfg, systems.FormationDeps{
		Clock:                  s.clock,
		Spawner:                s.projectiles,
		Viewport:               deps.Viewport,
		Awarder:                s.player,
		Rand:                   deps.Rand,
		OnBarrierHealthChanged: s.presenter.BarrierHealthChanged,
	})
	s.collisions = systems.NewCollisionSystem(s.projectiles, s.formation, s.player)

	if err := s.formation.SetDifficulty(difficulty); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s.registerStates()
	if err := s.machine.Start(StateIntro); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return s, nil
}

// Update 推进一帧
//
// 顺序：输入分发 -> 状态 Tick -> 运动（缩放后的 dt）-> 碰撞 -> 编队包围盒 -> 计时器
//
// 参数：
//   - dt: 未缩放的帧时间（秒）
//   - in: 本帧输入
func (s *Session) Update(dt float64, in InputState) {
	s.frame = in

	if s.actionMap == ActionMapPlayer {
		s.player.SetMovement(in.Move)
		if in.FirePressed {
			s.player.Fire()
		}
	} else {
		s.player.SetMovement(0)
	}

	s.machine.Tick()

	scaled := s.clock.Scaled(dt)
	s.player.Update(scaled)
	s.projectiles.Update(scaled)

	s.collisions.Update()
	s.formation.Update()
	s.clock.Update(dt)
}

// Emit 转发界面信号
//
// 返回：
//   - int: 处理该信号的订阅者数量（当前状态不关心时为 0）
func (s *Session) Emit(sig UISignal) int {
	return s.signals.Emit(sig)
}

// SetDifficulty 选择难度，下一波生效并写入设置
func (s *Session) SetDifficulty(level types.Difficulty) error {
	if err := s.formation.SetDifficulty(level); err != nil {
		return err
	}
	if err := s.settings.SetDifficulty(level); err != nil {
		return err
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[Session] WARNING: %v", err)
	}
	return nil
}

// changeState 请求切换状态，被拒绝时状态机已记录日志
func (s *Session) changeState(id StateID) {
	_ = s.machine.ChangeState(id)
}

func (s *Session) switchActionMap(m ActionMap) {
	s.actionMap = m
	s.input.SwitchActionMap(m)
}

// clearField 回收场上的敌人和子弹
func (s *Session) clearField() {
	s.formation.DespawnWave()
	s.projectiles.ReleaseAll()
}

// State 当前流程状态
func (s *Session) State() StateID { return s.machine.Current() }

// ActionMap 当前输入映射
func (s *Session) ActionMap() ActionMap { return s.actionMap }

// Player 玩家
func (s *Session) Player() *entities.Player { return s.player }

// Formation 编队系统
func (s *Session) Formation() *systems.FormationSystem { return s.formation }

// Projectiles 子弹系统
func (s *Session) Projectiles() *systems.ProjectileSystem { return s.projectiles }

// Clock 游戏时间调度器
func (s *Session) Clock() *clock.Scheduler { return s.clock }

// Settings 设置管理器
func (s *Session) Settings() *SettingsManager { return s.settings }

// Config 整局配置
func (s *Session) Config() *config.GameConfig { return s.cfg }
