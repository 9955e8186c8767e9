// Package buffer is the durable FIFO between the context engine and the
// sender: a main queue of clean contexts plus a retry queue for failed
// batches, both line-delimited JSON files that survive agent restarts.
package buffer

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

const (
	mainFile  = "clean_context_queue.jsonl"
	retryFile = "retry_queue.jsonl"
)

// Queue persists clean contexts across restarts. One lock serializes all
// readers and writers; batch pops are atomic.
type Queue struct {
	mu        sync.Mutex
	mainPath  string
	retryPath string
	log       *zap.Logger
}

// NewQueue opens (creating if needed) the queue directory.
func NewQueue(dir string, log *zap.Logger) (*Queue, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Queue{
		mainPath:  filepath.Join(dir, mainFile),
		retryPath: filepath.Join(dir, retryFile),
		log:       log,
	}, nil
}

// Enqueue appends a clean context to the main queue.
func (q *Queue) Enqueue(cc wire.CleanContext) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.appendAll(q.mainPath, []wire.CleanContext{cc})
}

// DequeueBatch atomically pops up to n contexts from the main queue.
func (q *Queue) DequeueBatch(n int) ([]wire.CleanContext, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popBatch(q.mainPath, n)
}

// DequeueRetryBatch atomically pops up to n contexts from the retry queue.
func (q *Queue) DequeueRetryBatch(n int) ([]wire.CleanContext, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popBatch(q.retryPath, n)
}

// MoveToRetry appends a failed batch to the retry queue.
func (q *Queue) MoveToRetry(batch []wire.CleanContext) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.appendAll(q.retryPath, batch)
}

// Len returns the number of queued contexts in (main, retry).
func (q *Queue) Len() (int, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return countLines(q.mainPath), countLines(q.retryPath)
}

// Reset truncates both queue files. Development mode only.
func (q *Queue) Reset() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, path := range []string{q.mainPath, q.retryPath} {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) appendAll(path string, batch []wire.CleanContext) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, cc := range batch {
		line, err := json.Marshal(cc)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return w.Flush()
}

// popBatch reads the file, decodes up to n leading records, and rewrites
// the remainder. Undecodable lines are logged and discarded.
func (q *Queue) popBatch(path string, n int) ([]wire.CleanContext, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var (
		batch     []wire.CleanContext
		remainder []byte
	)
	lines := splitLines(raw)
	for i, line := range lines {
		if len(batch) >= n {
			remainder = append(remainder, lines[i]...)
			remainder = append(remainder, '\n')
			continue
		}
		var cc wire.CleanContext
		if err := json.Unmarshal(line, &cc); err != nil {
			q.log.Warn("buffer: dropping undecodable queue line", zap.Error(err))
			continue
		}
		batch = append(batch, cc)
	}

	if err := os.WriteFile(path, remainder, 0o644); err != nil {
		return nil, err
	}
	return batch, nil
}

func splitLines(raw []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range raw {
		if b == '\n' {
			if i > start {
				lines = append(lines, raw[start:i])
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	return lines
}

func countLines(path string) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return len(splitLines(raw))
}
