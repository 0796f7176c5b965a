package console

import "sync"

// HistoryNavigator keeps an in-memory history stack with browser-like
// push/replace semantics. Replace swaps the current entry so Back cannot
// return into a route that forced a redirect.
type HistoryNavigator struct {
	mu    sync.Mutex
	stack []string
}

func NewHistoryNavigator(initial string) *HistoryNavigator {
	return &HistoryNavigator{stack: []string{initial}}
}

func (n *HistoryNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = append(n.stack, path)
}

func (n *HistoryNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack[len(n.stack)-1] = path
}

// Back pops to the previous entry and reports whether there was one.
func (n *HistoryNavigator) Back() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) < 2 {
		return n.stack[0], false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.stack[len(n.stack)-1], true
}

func (n *HistoryNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}
