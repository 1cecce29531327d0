package entity

import "time"

// IdempotencyKey stores the response of a processed mutation so a retried
// request with the same key replays it instead of running twice.
type IdempotencyKey struct {
	Key          string
	SessionID    string
	Endpoint     string
	ResponseCode int
	ResponseBody []byte
	ContentType  string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
