package utils

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// StorageAppName 存档目录使用的应用名
const StorageAppName = "invasion"

// OpenStorage 打开跨平台存档
//
// 参数：
//   - appName: 应用名，决定存档目录
//
// 返回：
//   - *gdata.Manager: 存档管理器
//   - error: 存储目录不可用或 gdata 打开失败时返回错误
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return m, nil
}
