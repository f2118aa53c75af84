package game

import (
	"math/rand"
	"testing"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/types"
)

// testViewport 把 [-10, 10] x [-8, 8] 线性映射到 [0, 1]
type testViewport struct{}

func (testViewport) WorldToViewport(p types.Vec2) types.Vec2 {
	return types.Vec2{X: (p.X + 10) / 20, Y: (p.Y + 8) / 16}
}

// recordingPresenter 记录表现层通知
type recordingPresenter struct {
	NopPresenter
	intro   []bool
	prepare []bool
	pause   []bool
	finish  []int
	lives   []int
	score   []int
}

func (p *recordingPresenter) IntroActive(active bool)   { p.intro = append(p.intro, active) }
func (p *recordingPresenter) PrepareActive(active bool) { p.prepare = append(p.prepare, active) }
func (p *recordingPresenter) PauseActive(active bool)   { p.pause = append(p.pause, active) }
func (p *recordingPresenter) Finish(score int)          { p.finish = append(p.finish, score) }
func (p *recordingPresenter) LivesChanged(lives int)    { p.lives = append(p.lives, lives) }
func (p *recordingPresenter) ScoreChanged(score int)    { p.score = append(p.score, score) }

// recordingInput 记录输入上下文切换
type recordingInput struct {
	actionMap     ActionMap
	cursorVisible bool
	switches      int
}

func (in *recordingInput) SwitchActionMap(m ActionMap) {
	in.actionMap = m
	in.switches++
}

func (in *recordingInput) SetCursorVisible(visible bool) {
	in.cursorVisible = visible
}

type sessionFixture struct {
	session   *Session
	presenter *recordingPresenter
	input     *recordingInput
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		presenter: &recordingPresenter{},
		input:     &recordingInput{},
	}
	s, err := NewSession(config.DefaultGameConfig(), SessionDeps{
		Viewport:  testViewport{},
		Presenter: f.presenter,
		Input:     f.input,
		Settings:  NewSettingsManager(nil),
		Rand:      rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	f.session = s
	return f
}

const frameDT = 1.0 / 64

func (f *sessionFixture) step(in InputState) {
	f.session.Update(frameDT, in)
}

// toGameplay Intro -> PrepareInvasion -> Gameplay
func (f *sessionFixture) toGameplay(t *testing.T) {
	t.Helper()
	f.session.Emit(SignalPlay)
	f.step(InputState{StartEdge: true})
	if f.session.State() != StateGameplay {
		t.Fatalf("Expected Gameplay, got %s", f.session.State())
	}
}

func (f *sessionFixture) expectState(t *testing.T, want StateID) {
	t.Helper()
	if got := f.session.State(); got != want {
		t.Fatalf("Expected state %s, got %s", want, got)
	}
}
