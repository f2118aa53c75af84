// Package app 提供游戏应用的核心包装器
//
// 该包把对局（game.Session）接到 ebiten 的游戏循环上，桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/entities"
	"github.com/decker502/invasion/pkg/game"
	"github.com/decker502/invasion/pkg/types"
	"github.com/decker502/invasion/pkg/utils"
)

const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 800
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 640

	fixedDeltaTime = 1.0 / 60.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 静态配置路径，为空时使用 config.DefaultGameConfigPath
	ConfigPath string
	// Difficulty 覆盖存档中的难度（名称或序号），为空则使用存档
	Difficulty string
	// Seed 敌人开火选择的随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session  *game.Session
	settings *game.SettingsManager
	viewport *utils.OrthoViewport
	input    *utils.InputReader
	hud      *hudPresenter
	face     text.Face

	projectiles []*entities.Projectile

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultGameConfigPath
	}
	gameConfig, err := config.LoadGameConfig(path)
	if err != nil {
		return nil, fmt.Errorf("关卡配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载静态配置: %s", path)

	// 存档不可用时降级为内存设置
	storage, err := utils.OpenStorage(utils.StorageAppName)
	if err != nil {
		log.Printf("[App] Warning: storage unavailable: %v (settings will not persist)", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)

	if cfg.Difficulty != "" {
		level, err := types.ParseDifficulty(cfg.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("难度参数无效: %w", err)
		}
		if err := settings.SetDifficulty(level); err != nil {
			return nil, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	viewport := utils.NewOrthoViewport(gameConfig.Viewport)
	hud := newHUDPresenter(len(gameConfig.Barriers))

	session, err := game.NewSession(gameConfig, game.SessionDeps{
		Viewport:  viewport,
		Presenter: hud,
		Input:     cursorContext{},
		Settings:  settings,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, fmt.Errorf("对局创建失败: %w", err)
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Ready (difficulty=%s, highScore=%d)", session.Formation().Difficulty(), settings.HighScore())

	return &App{
		session:  session,
		settings: settings,
		viewport: viewport,
		input:    utils.NewInputReader(utils.DefaultKeyBindings(), utils.IsMobile()),
		hud:      hud,
		face:     text.NewGoXFace(basicfont.Face7x13),
		verbose:  cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
//
// 先推进对局，再发送菜单信号：同一次按键不会既触发信号又被新状态当作开始键。
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	menu := a.input.ReadMenu()
	if menu.ToggleFullscreen {
		a.toggleFullscreen()
	}

	a.session.Update(fixedDeltaTime, a.input.Read(ScreenWidth))
	a.hud.tick()

	state := a.session.State()
	if menu.HasDifficulty && state == game.StateIntro {
		if err := a.session.SetDifficulty(menu.Difficulty); err != nil {
			log.Printf("[App] ERROR: %v", err)
		}
	}
	if sig, ok := menuSignal(state, menu); ok {
		a.session.Emit(sig)
		return nil
	}
	if menu.Quit && state == game.StateIntro {
		return ebiten.Termination
	}
	return nil
}

// toggleFullscreen F11 切换全屏并写入设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] WARNING: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.drawField(screen)
	a.drawHUD(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Session 返回对局
func (a *App) Session() *game.Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
