// validate_config 静态配置校验工具
//
// 严格解析配置文件（拒绝未知字段），执行与游戏启动相同的校验，
// 并打印每个难度下的敌人构成。
//
// 用法：
//
//	go run ./cmd/validate_config [path]
package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/invasion/pkg/config"
	"github.com/decker502/invasion/pkg/systems"
	"github.com/decker502/invasion/pkg/types"
)

func main() {
	path := config.DefaultGameConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 拒绝未知字段
	strict := config.DefaultGameConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(strict); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确，无未知字段\n")

	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 配置校验通过\n")

	f := cfg.Formation
	fmt.Printf("   编队: %d x %d，间距 %.2f，默认难度 %s\n", f.Width, f.Height, f.Spread, f.Difficulty)
	fmt.Printf("   掩体: %d 个，子弹池上限 %d\n", len(cfg.Barriers), cfg.Projectiles.MaxSize)

	for _, level := range []types.Difficulty{types.DifficultyEasy, types.DifficultyNormal, types.DifficultyHard} {
		hard, normal, easy, err := systems.DifficultyCounts(level, f.Width, f.Height)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", level, err)
			os.Exit(1)
		}
		total := hard + normal + easy
		fmt.Printf("   %-6s 困难 %2d / 普通 %2d / 简单 %2d（共 %d）\n", level, hard, normal, easy, total)
		if total != f.Width*f.Height {
			fmt.Printf("❌ %s: 敌人总数 %d 与格子数 %d 不符\n", level, total, f.Width*f.Height)
			os.Exit(1)
		}
	}
}
