package game

import "log"

// UISignal 界面发出的请求
type UISignal int

const (
	// SignalPlay 开始游戏
	SignalPlay UISignal = iota
	// SignalResume 继续游戏
	SignalResume
	// SignalExit 返回标题
	SignalExit
)

// String 返回信号名称
func (s UISignal) String() string {
	switch s {
	case SignalPlay:
		return "play-requested"
	case SignalResume:
		return "resume-requested"
	case SignalExit:
		return "exit-requested"
	default:
		return "unknown-signal"
	}
}

// SubscriptionID 订阅句柄，用于取消订阅
type SubscriptionID int

type subscription struct {
	id SubscriptionID
	fn func()
}

// SignalBus 界面信号总线
//
// 状态在 Enter 中订阅、在 Exit 中取消，订阅的生命周期与状态一致。
// Emit 遍历的是订阅者快照，回调中取消订阅（例如状态切换）是安全的。
type SignalBus struct {
	subs   map[UISignal][]subscription
	nextID SubscriptionID
	buf    []subscription
}

// NewSignalBus 创建信号总线
func NewSignalBus() *SignalBus {
	return &SignalBus{
		subs: make(map[UISignal][]subscription),
	}
}

// Subscribe 订阅信号
func (b *SignalBus) Subscribe(sig UISignal, fn func()) SubscriptionID {
	b.nextID++
	b.subs[sig] = append(b.subs[sig], subscription{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe 取消订阅，重复取消是空操作
func (b *SignalBus) Unsubscribe(id SubscriptionID) {
	for sig, list := range b.subs {
		for i, sub := range list {
			if sub.id == id {
				b.subs[sig] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Emit 发出信号
//
// 返回：
//   - int: 收到该信号的订阅者数量
func (b *SignalBus) Emit(sig UISignal) int {
	list := b.subs[sig]
	if len(list) == 0 {
		log.Printf("[SignalBus] %s ignored: no subscriber", sig)
		return 0
	}

	snapshot := append(b.buf[:0], list...)
	b.buf = nil // 回调中可能再次 Emit
	delivered := 0
	for _, sub := range snapshot {
		if !b.subscribed(sig, sub.id) {
			continue
		}
		sub.fn()
		delivered++
	}
	clear(snapshot)
	b.buf = snapshot[:0]
	return delivered
}

// SubscriberCount 某个信号的订阅者数量
func (b *SignalBus) SubscriberCount(sig UISignal) int {
	return len(b.subs[sig])
}

func (b *SignalBus) subscribed(sig UISignal, id SubscriptionID) bool {
	for _, sub := range b.subs[sig] {
		if sub.id == id {
			return true
		}
	}
	return false
}
