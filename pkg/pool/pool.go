// Package pool 提供固定容量的可回收对象池
//
// 对象按需惰性创建，释放时只停用不销毁，只有在池销毁时才真正销毁。
// 所有操作都在主循环线程内同步调用，不做加锁。
package pool

import (
	"errors"
	"log"
)

// ErrExhausted 对象池已达到容量上限且没有空闲实例
var ErrExhausted = errors.New("pool exhausted")

// Hooks 对象生命周期回调
// Create 必须提供，其余可为 nil
type Hooks[T any] struct {
	Create    func() T // 创建新实例
	OnGet     func(T)  // 从池中取出时调用（激活）
	OnRelease func(T)  // 归还到池时调用（停用）
	OnDestroy func(T)  // 池清理/销毁时调用
}

// Pool 泛型对象池
//
// 不变式：
//   - 已创建实例总数 <= maxSize
//   - 取出的实例处于激活状态，且不在空闲列表中
//   - 归还的实例处于停用状态，且只进入空闲列表一次
type Pool[T comparable] struct {
	name    string
	hooks   Hooks[T]
	free    []T
	active  map[T]struct{}
	maxSize int
	created int
}

// New 创建对象池
//
// 参数:
//   - name: 池名称，仅用于日志
//   - hooks: 生命周期回调
//   - defaultCapacity: 预分配的簿记容量（不预先创建实例）
//   - maxSize: 实例总数上限，<= 0 表示不限制
func New[T comparable](name string, hooks Hooks[T], defaultCapacity, maxSize int) *Pool[T] {
	if hooks.Create == nil {
		panic("pool: Hooks.Create is required")
	}
	if defaultCapacity < 0 {
		defaultCapacity = 0
	}
	if maxSize > 0 && defaultCapacity > maxSize {
		defaultCapacity = maxSize
	}
	return &Pool[T]{
		name:    name,
		hooks:   hooks,
		free:    make([]T, 0, defaultCapacity),
		active:  make(map[T]struct{}, defaultCapacity),
		maxSize: maxSize,
	}
}

// Get 取出一个实例并激活
//
// 返回:
//   - T: 复用或新建的实例
//   - error: 达到容量上限时返回 ErrExhausted，调用者应当作"无可用实例"处理
func (p *Pool[T]) Get() (T, error) {
	var item T
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
	} else {
		if p.maxSize > 0 && p.created >= p.maxSize {
			log.Printf("[Pool:%s] WARNING: exhausted (%d/%d active)", p.name, len(p.active), p.maxSize)
			return item, ErrExhausted
		}
		item = p.hooks.Create()
		p.created++
	}

	p.active[item] = struct{}{}
	if p.hooks.OnGet != nil {
		p.hooks.OnGet(item)
	}
	return item, nil
}

// Release 停用实例并归还到空闲列表
//
// 归还一个未被取出的实例（重复归还、陈旧回调）是空操作，只记录日志。
//
// 返回:
//   - bool: 实例确实被归还时返回 true
func (p *Pool[T]) Release(item T) bool {
	if _, ok := p.active[item]; !ok {
		log.Printf("[Pool:%s] WARNING: release of an instance that is not checked out, ignored", p.name)
		return false
	}
	delete(p.active, item)
	if p.hooks.OnRelease != nil {
		p.hooks.OnRelease(item)
	}
	p.free = append(p.free, item)
	return true
}

// IsActive 实例当前是否处于取出状态
func (p *Pool[T]) IsActive(item T) bool {
	_, ok := p.active[item]
	return ok
}

// CountActive 已取出且未归还的实例数
func (p *Pool[T]) CountActive() int {
	return len(p.active)
}

// CountInactive 空闲实例数
func (p *Pool[T]) CountInactive() int {
	return len(p.free)
}

// CountAll 已创建的实例总数
func (p *Pool[T]) CountAll() int {
	return p.created
}

// MaxSize 实例总数上限
func (p *Pool[T]) MaxSize() int {
	return p.maxSize
}

// Clear 销毁所有空闲实例，取出中的实例不受影响
func (p *Pool[T]) Clear() {
	var zero T
	for i, item := range p.free {
		if p.hooks.OnDestroy != nil {
			p.hooks.OnDestroy(item)
		}
		p.free[i] = zero
	}
	p.created -= len(p.free)
	p.free = p.free[:0]
}

// Dispose 销毁全部实例（包括取出中的），用于整局结束时的清理
func (p *Pool[T]) Dispose() {
	for item := range p.active {
		if p.hooks.OnRelease != nil {
			p.hooks.OnRelease(item)
		}
		if p.hooks.OnDestroy != nil {
			p.hooks.OnDestroy(item)
		}
		delete(p.active, item)
		p.created--
	}
	p.Clear()
}
