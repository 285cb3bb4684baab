// Package retry 提供带指数退避与随机抖动的重试组合子。
package retry

import (
	"math/rand"
	"time"
)

// Policy 重试策略。Sleep 与 Rand 可注入，便于测试时替换为假时钟。
type Policy struct {
	MaxAttempts int           // 总尝试次数上限（含首次）
	BaseDelay   time.Duration // 首次失败后的基础等待
	MaxDelay    time.Duration // 退避上限（不含抖动）

	Sleep func(time.Duration)
	Rand  func() float64 // [0,1)，抖动秒数
}

// DefaultPolicy 爬取入口的缺省策略：3 次尝试，2s 起步，上限 10s。
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Do 执行 op 直到成功或尝试次数耗尽，返回最后一次的结果与错误。
// 两次尝试之间等待 BaseDelay*2^(n-1)（封顶 MaxDelay）再加 [0,1) 秒抖动，
// 抖动用于错峰，避免重试风暴触发远端限流。
func Do[T any](op func() (T, error), p Policy) (T, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	random := p.Rand
	if random == nil {
		random = rand.Float64
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var result T
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err = op()
		if err == nil {
			return result, nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		sleep(backoff(p, attempt) + time.Duration(random()*float64(time.Second)))
	}
	return result, err
}

// backoff 第 attempt 次失败后的基础等待时长。
func backoff(p Policy, attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
