package game

import "log"

// registerStates 注册五个流程状态
func (s *Session) registerStates() {
	intro := &introState{s: s}
	prepare := &prepareState{s: s}
	gameplay := &gameplayState{s: s}
	pause := &pauseState{s: s}
	finish := &finishState{s: s}

	s.machine.Register(StateIntro, StateHandlers{Enter: intro.enter, Exit: intro.exit})
	s.machine.Register(StatePrepareInvasion, StateHandlers{Enter: prepare.enter, Tick: prepare.tick})
	s.machine.Register(StateGameplay, StateHandlers{Enter: gameplay.enter, Tick: gameplay.tick})
	s.machine.Register(StatePause, StateHandlers{Enter: pause.enter, Tick: pause.tick, Exit: pause.exit})
	s.machine.Register(StateFinish, StateHandlers{Enter: finish.enter, Exit: finish.exit})
}

// introState 标题菜单，等待"开始游戏"
type introState struct {
	s    *Session
	play SubscriptionID
}

func (st *introState) enter() {
	st.play = st.s.signals.Subscribe(SignalPlay, func() {
		st.s.changeState(StatePrepareInvasion)
	})
	st.s.presenter.IntroActive(true)
	st.s.switchActionMap(ActionMapUI)
	st.s.input.SetCursorVisible(true)
}

func (st *introState) exit() {
	st.s.signals.Unsubscribe(st.play)
	st.s.presenter.IntroActive(false)
}

// prepareState 重置玩家、生成编队、恢复掩体，等待开始键
type prepareState struct {
	s *Session
}

func (st *prepareState) enter() {
	st.s.presenter.PrepareActive(true)
	st.s.player.ResetPlayer()
	if err := st.s.formation.SpawnWave(); err != nil {
		log.Printf("[PrepareInvasion] ERROR: %v", err)
	}
	st.s.formation.ResetBarriers()
}

func (st *prepareState) tick() {
	if st.s.frame.StartEdge {
		st.s.presenter.PrepareActive(false)
		st.s.changeState(StateGameplay)
	}
}

// gameplayState 对局进行中
type gameplayState struct {
	s *Session
}

func (st *gameplayState) enter() {
	st.s.switchActionMap(ActionMapPlayer)
	st.s.input.SetCursorVisible(false)
	st.s.formation.BeginFiring()
}

func (st *gameplayState) tick() {
	f := st.s.formation

	// 清空一波后立即补充下一波
	if f.ActiveCount() == 0 {
		if err := f.SpawnWave(); err != nil {
			log.Printf("[Gameplay] ERROR: %v", err)
		}
		f.BeginFiring()
	}

	if st.s.frame.PauseEdge {
		st.s.changeState(StatePause)
		return
	}

	f.Advance()

	if st.s.player.CurrentLives() <= 0 {
		st.s.changeState(StateFinish)
	}
}

// pauseState 暂停：冻结时间缩放，等待继续或退出
type pauseState struct {
	s      *Session
	resume SubscriptionID
	quit   SubscriptionID
}

func (st *pauseState) enter() {
	st.resume = st.s.signals.Subscribe(SignalResume, func() {
		st.s.changeState(StateGameplay)
	})
	st.quit = st.s.signals.Subscribe(SignalExit, func() {
		st.s.clearField()
		st.s.changeState(StateIntro)
	})
	st.s.presenter.PauseActive(true)
	st.s.clock.SetTimeScale(0)
	st.s.switchActionMap(ActionMapUI)
	st.s.input.SetCursorVisible(true)
}

func (st *pauseState) tick() {
	if st.s.frame.CancelEdge {
		st.s.changeState(StateGameplay)
	}
}

func (st *pauseState) exit() {
	st.s.signals.Unsubscribe(st.resume)
	st.s.signals.Unsubscribe(st.quit)
	st.s.presenter.PauseActive(false)
	st.s.clock.SetTimeScale(1)
}

// finishState 结算：公布分数、清场、记录最高分
type finishState struct {
	s    *Session
	quit SubscriptionID
}

func (st *finishState) enter() {
	st.quit = st.s.signals.Subscribe(SignalExit, func() {
		st.s.changeState(StateIntro)
	})

	score := st.s.player.CurrentScore()
	st.s.presenter.Finish(score)
	st.s.clearField()
	st.s.switchActionMap(ActionMapUI)
	st.s.input.SetCursorVisible(true)

	if st.s.settings.RecordScore(score) {
		log.Printf("[Finish] New high score: %d", score)
		if err := st.s.settings.Save(); err != nil {
			log.Printf("[Finish] WARNING: %v", err)
		}
	}
}

func (st *finishState) exit() {
	st.s.signals.Unsubscribe(st.quit)
}
