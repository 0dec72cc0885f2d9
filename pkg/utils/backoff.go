// Package utils 提供通用工具函数
package utils

import (
	"context"
	"math/rand"
	"time"
)

// Backoff 指数退避计算器
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	// Jitter 为 true 时在 [0.5, 1.5) 区间内随机抖动，避免重试风暴
	Jitter bool
}

// Next 返回第 attempt 次重试（从 0 开始）前应等待的时长
func (b Backoff) Next(attempt int) time.Duration {
	initial := b.Initial
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	max := b.Max
	if max <= 0 {
		max = 30 * time.Second
	}

	d := float64(initial)
	for i := 0; i < attempt; i++ {
		d *= multiplier
		if d >= float64(max) {
			d = float64(max)
			break
		}
	}

	if b.Jitter {
		d *= 0.5 + rand.Float64()
	}
	if d > float64(max) {
		d = float64(max)
	}

	return time.Duration(d)
}

// SleepContext 可被 context 取消的等待
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
