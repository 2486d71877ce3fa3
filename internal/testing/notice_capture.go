package testing

import (
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// NoticeCapture collects NOTICE messages sent by the server.
// Thread-safe for concurrent use.
type NoticeCapture struct {
	mu      sync.Mutex
	notices []pgconn.Notice
}

// NewNoticeCapture creates a new NoticeCapture instance.
func NewNoticeCapture() *NoticeCapture {
	return &NoticeCapture{}
}

// Handler returns a function suitable for pgx's OnNotice callback.
func (nc *NoticeCapture) Handler() func(*pgconn.PgConn, *pgconn.Notice) {
	return func(_ *pgconn.PgConn, n *pgconn.Notice) {
		if n == nil {
			return
		}
		nc.mu.Lock()
		defer nc.mu.Unlock()
		nc.notices = append(nc.notices, *n)
	}
}

// Messages returns the captured notice messages in arrival order.
func (nc *NoticeCapture) Messages() []string {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	result := make([]string, len(nc.notices))
	for i, n := range nc.notices {
		result[i] = n.Message
	}
	return result
}

// Contains reports whether any captured message contains substr.
func (nc *NoticeCapture) Contains(substr string) bool {
	for _, m := range nc.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// Reset clears all captured notices.
func (nc *NoticeCapture) Reset() {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	nc.notices = nil
}

// Count returns the number of captured notices.
func (nc *NoticeCapture) Count() int {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return len(nc.notices)
}
