// Package circuitbreaker 熔断器
//
// 用于保护对外部依赖的调用(目前是RabbitMQ事件发布)：
// 连续失败达到阈值后打开，打开期间直接返回ErrOpen，不再等待下游超时；
// 冷却时间过后进入半开，放行少量探测请求，成功则关闭，失败则重新打开。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行
	StateOpen                  // 快速失败
	StateHalfOpen              // 探测恢复
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断器打开时返回
var ErrOpen = errors.New("circuit breaker is open")

// Settings 熔断器参数
type Settings struct {
	// FailureThreshold 连续失败多少次后打开，默认5
	FailureThreshold uint32
	// OpenTimeout 打开状态持续时间，默认30s
	OpenTimeout time.Duration
	// HalfOpenRequests 半开状态最多放行的探测请求数，默认1
	HalfOpenRequests uint32
	// OnStateChange 状态变化回调(记录日志)，在持有锁时调用，不能回调熔断器自身
	OnStateChange func(name string, from, to State)
}

// Breaker 熔断器，并发安全
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu                  sync.Mutex
	state               State
	generation          uint64 // 每次状态切换+1，丢弃切换前发出请求的结果
	consecutiveFailures uint32
	halfOpenInFlight    uint32
	openUntil           time.Time
}

// New 创建熔断器
func New(name string, s Settings) *Breaker {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.HalfOpenRequests == 0 {
		s.HalfOpenRequests = 1
	}
	return &Breaker{name: name, settings: s, now: time.Now}
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.name
}

// Execute 在熔断器保护下执行fn
// 打开状态(或半开状态探测名额已满)时不执行fn，直接返回ErrOpen
// fn panic时按失败计数并释放半开名额，然后继续向上panic
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			b.after(generation, false)
			panic(r)
		}
	}()

	err = fn()
	b.after(generation, err == nil)
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return b.generation, ErrOpen
	case StateHalfOpen:
		if b.halfOpenInFlight >= b.settings.HalfOpenRequests {
			return b.generation, ErrOpen
		}
		b.halfOpenInFlight++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	if generation != b.generation {
		return
	}

	if success {
		b.consecutiveFailures = 0
		if state == StateHalfOpen {
			b.setState(StateClosed)
		}
		return
	}

	b.consecutiveFailures++
	switch state {
	case StateClosed:
		if b.consecutiveFailures >= b.settings.FailureThreshold {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// current 打开超时后切换到半开，调用方需持有锁
func (b *Breaker) current() State {
	if b.state == StateOpen && !b.now().Before(b.openUntil) {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.generation++
	b.consecutiveFailures = 0
	b.halfOpenInFlight = 0
	if to == StateOpen {
		b.openUntil = b.now().Add(b.settings.OpenTimeout)
	}
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
