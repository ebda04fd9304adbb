package processor

import "time"

// Deadline 软性时间预算。只在处理单元之间的检查点被查询，
// 超限时当前循环提前收尾，已积累的结果照常输出，从不报错。
type Deadline struct {
	start  time.Time
	budget time.Duration
}

// NewDeadline 以当前时刻为起点创建时间预算，budget<=0 表示不限时
func NewDeadline(budget time.Duration) *Deadline {
	return &Deadline{start: time.Now(), budget: budget}
}

// Exceeded 判断预算是否已用完
func (d *Deadline) Exceeded() bool {
	return d.budget > 0 && time.Since(d.start) > d.budget
}

// Elapsed 返回自起点以来的耗时
func (d *Deadline) Elapsed() time.Duration {
	return time.Since(d.start)
}
