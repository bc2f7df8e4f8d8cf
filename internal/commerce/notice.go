package commerce

import "sync"

// NoticeKind distinguishes success toasts from error toasts.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is one transient message for the presentation layer.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// noticeQueue buffers notices between an engine transition and the next
// render. Pushing never blocks; the queue is drained on read.
type noticeQueue struct {
	mu      sync.Mutex
	notices []Notice
}

func (q *noticeQueue) push(kind NoticeKind, message string) {
	q.mu.Lock()
	q.notices = append(q.notices, Notice{Kind: kind, Message: message})
	q.mu.Unlock()
}

// drain returns and clears the pending notices.
func (q *noticeQueue) drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}
