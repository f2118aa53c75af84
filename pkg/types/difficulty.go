// Package types 定义共享的基础类型
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownDifficulty 未知难度等级
// 难度分配逻辑遇到未知等级时必须立即失败，不允许静默回退到默认值
var ErrUnknownDifficulty = errors.New("unknown difficulty level")

// Difficulty 敌人编队的粗粒度难度等级
// 序号固定（Easy=0, Normal=1, Hard=2），UI 选择器直接绑定该序号
type Difficulty int

const (
	// DifficultyEasy 全部为简单敌人
	DifficultyEasy Difficulty = iota
	// DifficultyNormal 一半行为普通敌人，其余为简单敌人
	DifficultyNormal
	// DifficultyHard 一行困难敌人，一半行普通敌人，其余为简单敌人
	DifficultyHard
)

// String 返回难度名称
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "difficulty(" + strconv.Itoa(int(d)) + ")"
	}
}

// Valid 检查难度是否为三个固定等级之一
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// ParseDifficulty 解析难度名称或序号
//
// 参数:
//   - s: "easy" / "normal" / "hard"（不区分大小写）或 "0" / "1" / "2"
//
// 返回:
//   - Difficulty: 解析后的难度
//   - error: 无法识别时返回包装了 ErrUnknownDifficulty 的错误
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "0":
		return DifficultyEasy, nil
	case "normal", "1":
		return DifficultyNormal, nil
	case "hard", "2":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// MarshalYAML 以名称形式写出难度
func (d Difficulty) MarshalYAML() (interface{}, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return d.String(), nil
}

// UnmarshalYAML 同时接受名称和序号
func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDifficulty(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
