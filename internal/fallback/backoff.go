package fallback

import "time"

type BackoffPolicy string

const (
	BackoffFixed       BackoffPolicy = "fixed"
	BackoffExponential BackoffPolicy = "exponential"
)

const maxBackoff = 30 * time.Second

// Delay returns the wait before the next attempt. attempt is the number of
// attempts already made, so the first retry passes 1.
func Delay(policy BackoffPolicy, base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if policy != BackoffExponential {
		return base
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
