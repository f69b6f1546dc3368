package game

// TaskID 延迟任务标识，0 表示无效
type TaskID uint64

type scheduledTask struct {
	id        TaskID
	remaining float64
	fn        func()
}

// Scheduler 延迟任务调度器
//
// 以 tick 驱动代替协程等待：任务在累计时间到期后于 Advance 中执行。
// CancelAll 使所有未执行的任务失效（包括正在执行的 Advance 中尚未轮到的任务）。
type Scheduler struct {
	tasks      []*scheduledTask
	nextID     TaskID
	generation uint64
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After 在 delay 秒后执行 fn
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	if fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, &scheduledTask{id: s.nextID, remaining: delay, fn: fn})
	return s.nextID
}

// Cancel 取消单个任务，返回任务是否仍在等待
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll 取消全部任务（新的一局）
func (s *Scheduler) CancelAll() {
	s.generation++
	s.tasks = nil
}

// Advance 推进时间并按登记顺序执行到期任务
// 回调中登记的新任务最早在下一次 Advance 执行
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	gen := s.generation
	pending := s.tasks
	s.tasks = nil

	var due []*scheduledTask
	for _, t := range pending {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t)
		} else {
			s.tasks = append(s.tasks, t)
		}
	}

	for _, t := range due {
		if s.generation != gen {
			return
		}
		t.fn()
	}
}

// Pending 等待中的任务数
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
