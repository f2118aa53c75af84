package embedded

import (
	"testing"
	"testing/fstest"
)

func reset() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestReadFile 测试读取嵌入文件
func TestReadFile(t *testing.T) {
	reset()
	defer reset()

	if _, err := ReadFile("data/invasion.yaml"); err == nil {
		t.Error("Expected error before Init()")
	}

	Init(fstest.MapFS{
		"data/invasion.yaml": &fstest.MapFile{Data: []byte("formation: {}")},
	})

	t.Run("读取存在的文件", func(t *testing.T) {
		data, err := ReadFile("./data/invasion.yaml")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "formation: {}" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("未知路径前缀", func(t *testing.T) {
		if _, err := ReadFile("assets/invasion.yaml"); err == nil {
			t.Error("Expected error for path outside data/")
		}
	})

	t.Run("Exists", func(t *testing.T) {
		if !Exists("data/invasion.yaml") {
			t.Error("Exists should report embedded file")
		}
		if Exists("data/missing.yaml") {
			t.Error("Exists should be false for missing file")
		}
	})
}
