package retry

import (
	"context"
	"math"
	"time"
)

// Policy параметры экспоненциального backoff
type Policy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultPolicy политика по умолчанию для transient ошибок хранилища
var DefaultPolicy = Policy{
	MaxRetries:    3,
	InitialDelay:  100 * time.Millisecond,
	MaxDelay:      2 * time.Second,
	BackoffFactor: 2,
}

// NextDelay возвращает задержку для попытки attempt (нумерация с 1)
func (p Policy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := p.InitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	factor := p.BackoffFactor
	if factor <= 0 {
		factor = 2
	}

	delay := float64(initial) * math.Pow(factor, float64(attempt-1))
	d := time.Duration(delay)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// Do выполняет fn с повторами по политике
// retryable решает, стоит ли повторять после данной ошибки
// Последняя ошибка возвращается, если все попытки исчерпаны
func Do(ctx context.Context, p Policy, fn func() error, retryable func(error) bool) error {
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.NextDelay(attempt)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
