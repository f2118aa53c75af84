// verify_invasion 无界面验证工具
//
// 使用脚本化输入驱动一局完整对局（标题 -> 准备 -> 战斗 -> 结算），
// 输出对局报告并检查基本约束，任一约束失败时以非零状态退出。
//
// 用法：
//
//	go run ./cmd/verify_invasion --frames 7200 --difficulty hard --seed 42 --verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/game"
	"github.com/decker502/invasion/pkg/types"
	"github.com/decker502/invasion/pkg/utils"
)

const frameDT = 1.0 / 60.0

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	frames     = flag.Int("frames", 60*120, "最多模拟的帧数")
	difficulty = flag.String("difficulty", "normal", "难度：easy / normal / hard")
	seed       = flag.Int64("seed", 1, "随机种子")
	configPath = flag.String("config", config.DefaultGameConfigPath, "静态配置文件路径")
	pauseAt    = flag.Int("pause-at", 600, "在第几帧暂停一次（0 表示不暂停）")
)

// reportPresenter 统计对局事件
type reportPresenter struct {
	game.NopPresenter

	hits        int
	finished    bool
	finalScore  int
	lives       int
	score       int
	barrierHits int
}

func (p *reportPresenter) PlayerHit()                    { p.hits++ }
func (p *reportPresenter) LivesChanged(lives int)        { p.lives = lives }
func (p *reportPresenter) ScoreChanged(score int)        { p.score = score }
func (p *reportPresenter) BarrierHealthChanged(int, int) { p.barrierHits++ }
func (p *reportPresenter) Finish(score int) {
	p.finished = true
	p.finalScore = score
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		return err
	}
	level, err := types.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}
	cfg.Formation.Difficulty = level

	presenter := &reportPresenter{}
	session, err := game.NewSession(cfg, game.SessionDeps{
		Viewport:  utils.NewOrthoViewport(cfg.Viewport),
		Presenter: presenter,
		Rand:      rand.New(rand.NewSource(*seed)),
	})
	if err != nil {
		return err
	}

	fmt.Printf("=== Invasion 验证 (difficulty=%s, seed=%d) ===\n", level, *seed)

	// 标题 -> 准备
	session.Update(frameDT, game.InputState{})
	session.Emit(game.SignalPlay)
	if session.State() != game.StatePrepareInvasion {
		return fmt.Errorf("expected PrepareInvasion after play, got %s", session.State())
	}
	session.Update(frameDT, game.InputState{StartEdge: true})
	if session.State() != game.StateGameplay {
		return fmt.Errorf("expected Gameplay after start, got %s", session.State())
	}

	maxProjectiles := cfg.Projectiles.MaxSize
	maxLives := cfg.Player.MaxLives
	waves := 1
	lastActive := session.Formation().ActiveCount()
	paused := false

	frame := 0
	for ; frame < *frames && session.State() != game.StateFinish; frame++ {
		in := autopilot(session)

		if *pauseAt > 0 && frame == *pauseAt && !paused {
			in.PauseEdge = true
			paused = true
		}
		session.Update(frameDT, in)

		if session.State() == game.StatePause {
			// 暂停期间子弹和编队都不应移动
			before := session.Formation().Anchor()
			for i := 0; i < 30; i++ {
				session.Update(frameDT, game.InputState{})
			}
			if session.Formation().Anchor() != before {
				return fmt.Errorf("formation moved while paused")
			}
			session.Emit(game.SignalResume)
		}

		active := session.Formation().ActiveCount()
		if active > lastActive {
			waves++
		}
		lastActive = active

		if n := session.Projectiles().ActiveCount(); n > maxProjectiles {
			return fmt.Errorf("frame %d: %d live projectiles exceeds pool max %d", frame, n, maxProjectiles)
		}
		if lives := session.Player().CurrentLives(); lives < 0 || lives > maxLives {
			return fmt.Errorf("frame %d: lives %d out of range [0,%d]", frame, lives, maxLives)
		}
	}

	fmt.Printf("帧数:         %d\n", frame)
	fmt.Printf("最终状态:     %s\n", session.State())
	fmt.Printf("分数:         %d\n", session.Player().CurrentScore())
	fmt.Printf("剩余生命:     %d\n", session.Player().CurrentLives())
	fmt.Printf("被击中次数:   %d\n", presenter.hits)
	fmt.Printf("掩体受击:     %d\n", presenter.barrierHits)
	fmt.Printf("出现的波次:   %d\n", waves)
	fmt.Printf("子弹创建总数: %d\n", session.Projectiles().CreatedCount())

	if presenter.finished {
		if presenter.finalScore != session.Player().CurrentScore() {
			return fmt.Errorf("finish reported score %d, player has %d", presenter.finalScore, session.Player().CurrentScore())
		}
		if session.Formation().ActiveCount() != 0 || session.Projectiles().ActiveCount() != 0 {
			return fmt.Errorf("field not cleared after finish")
		}
		session.Emit(game.SignalExit)
		if session.State() != game.StateIntro {
			return fmt.Errorf("expected Intro after exit, got %s", session.State())
		}
	}

	fmt.Println("✅ 验证通过")
	return nil
}

// autopilot 朝最近的敌人水平移动并持续开火
func autopilot(session *game.Session) game.InputState {
	player := session.Player().Position()
	target := player.X
	best := math.Inf(1)
	for _, e := range session.Formation().Enemies() {
		if !e.Active() {
			continue
		}
		pos := e.WorldPosition()
		if d := math.Abs(pos.X - player.X); d < best {
			best = d
			target = pos.X
		}
	}

	in := game.InputState{FirePressed: true}
	switch {
	case target < player.X-0.1:
		in.Move = -1
	case target > player.X+0.1:
		in.Move = 1
	}
	return in
}
