package contextengine

import "sync"

// Linker maps a process identifier to the most recent context created for
// that PID. The process probe writes, every other probe reads. PID reuse by
// the OS overwrites the old mapping (last writer wins); contexts close on
// timeout, which bounds the blast radius of a recycled PID.
type Linker struct {
	mu    sync.RWMutex
	byPID map[int32]string
}

func NewLinker() *Linker {
	return &Linker{byPID: make(map[int32]string)}
}

// Link records pid → contextID, replacing any previous mapping.
func (l *Linker) Link(pid int32, contextID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byPID[pid] = contextID
}

// Lookup returns the context currently linked to pid.
func (l *Linker) Lookup(pid int32) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.byPID[pid]
	return id, ok
}
