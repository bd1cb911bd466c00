package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idCounter uint64

// NewID returns a process-unique id with the given prefix, e.g. "F-1700000000-42".
// Order ids are not built here; the customer derives those from its history.
func NewID(prefix string) string {
	n := atomic.AddUint64(&idCounter, 1)
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().Unix(), n)
}
