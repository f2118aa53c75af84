// Package clock 提供单线程的游戏时间调度器
//
// 所有延迟行为（射击冷却、无敌时间、死亡延迟、编队步进、随机开火抖动）
// 都表示为由发起者持有的 Timer，可在实体回收时取消。
//
// 调度器由主循环每帧调用一次 Update，回调在主循环线程内同步执行，
// 因此回调中可以安全地修改对象池和编队状态。
package clock

import "log"

// Timer 一次性或重复的延迟回调
// 由 Scheduler.After / Scheduler.Every 创建，调用者持有并负责在需要时 Stop
type Timer struct {
	remaining float64 // 距离下次触发的剩余时间（秒）
	interval  float64 // 重复间隔（秒），0 表示一次性
	fn        func()
	stopped   bool
}

// Stop 取消计时器
//
// 返回:
//   - bool: 计时器此前仍处于等待状态时返回 true
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Active 计时器是否仍在等待触发
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Remaining 距离下次触发的剩余时间（秒）
func (t *Timer) Remaining() float64 {
	if t == nil {
		return 0
	}
	return t.remaining
}

// Scheduler 游戏时间调度器
//
// followTimeScale 为 true 时计时器按缩放后的时间推进（时间缩放为 0 即暂停），
// 为 false 时按未缩放的帧时间推进，与运动是否冻结无关。
type Scheduler struct {
	timers          []*Timer
	timeScale       float64
	followTimeScale bool
	now             float64 // 调度器内部累计时间（秒）
	updating        bool
}

// NewScheduler 创建调度器
//
// 参数:
//   - followTimeScale: 计时器是否跟随全局时间缩放（暂停时冻结）
func NewScheduler(followTimeScale bool) *Scheduler {
	return &Scheduler{
		timers:          make([]*Timer, 0, 64),
		timeScale:       1.0,
		followTimeScale: followTimeScale,
	}
}

// After 在 delay 秒后执行一次 fn
func (s *Scheduler) After(delay float64, fn func()) *Timer {
	return s.schedule(delay, 0, fn)
}

// Every 在 first 秒后首次执行 fn，此后每 interval 秒执行一次
// interval 必须为正数，否则退化为一次性计时器
func (s *Scheduler) Every(first, interval float64, fn func()) *Timer {
	if interval <= 0 {
		log.Printf("[Scheduler] WARNING: non-positive interval %.3f, timer will fire once", interval)
		interval = 0
	}
	return s.schedule(first, interval, fn)
}

func (s *Scheduler) schedule(delay, interval float64, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{remaining: delay, interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// SetTimeScale 设置全局时间缩放（0 表示暂停）
func (s *Scheduler) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	s.timeScale = scale
}

// TimeScale 返回全局时间缩放
func (s *Scheduler) TimeScale() float64 {
	return s.timeScale
}

// FollowsTimeScale 计时器是否随时间缩放冻结
func (s *Scheduler) FollowsTimeScale() bool {
	return s.followTimeScale
}

// Scaled 返回缩放后的帧时间，供运动逻辑使用
func (s *Scheduler) Scaled(dt float64) float64 {
	return dt * s.timeScale
}

// Now 调度器累计时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending 正在等待的计时器数量
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Clear 取消全部计时器
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.stopped = true
	}
	if !s.updating {
		s.compact()
	}
}

// Update 推进调度器
//
// 参数:
//   - dt: 未缩放的帧时间（秒）
//
// 回调中新建的计时器从下一帧开始计时。
func (s *Scheduler) Update(dt float64) {
	if s.followTimeScale {
		dt *= s.timeScale
	}
	if dt <= 0 {
		return
	}
	s.now += dt

	s.updating = true
	// 只遍历本帧开始时已存在的计时器
	count := len(s.timers)
	for i := 0; i < count; i++ {
		t := s.timers[i]
		if t.stopped {
			continue
		}
		t.remaining -= dt
		for !t.stopped && t.remaining <= 0 {
			if t.interval > 0 {
				t.remaining += t.interval
			} else {
				t.stopped = true
			}
			t.fn()
		}
	}
	s.updating = false
	s.compact()
}

// compact 原地移除已停止的计时器，不分配新切片
func (s *Scheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}
