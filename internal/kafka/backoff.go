package kafka

import (
	"context"
	"math/rand"
	"time"
)

// backoff — экспоненциальная пауза с equal-jitter; используется консьюмером и продюсером.
// Не потокобезопасен: принадлежит одному циклу Run.
type backoff struct {
	initial    time.Duration
	max        time.Duration
	jitterRand *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration) *backoff {
	if initial <= 0 {
		initial = 1 * time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}
	return &backoff{
		initial: initial,
		max:     maxDelay,
		// источник случайности, чтобы рассинхронизировать повторы
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// next возвращает следующее время ожидания повтора с учётом max.
func (b *backoff) next(current time.Duration) time.Duration {
	current *= 2
	if current > b.max {
		return b.max
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (b *backoff) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(b.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

// sleepWithBackoff ждёт d или останавливается по контексту.
func sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// minDuration возвращает минимальное время из двух.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
