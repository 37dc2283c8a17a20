package analyzer

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"resumescore/internal/types"
)

// resultCache is a bounded LRU keyed by a content hash of the inputs.
// Identical input text yields the cached report, which keeps repeated
// analyses bit-identical and avoids re-embedding.
type resultCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[string]*list.Element
}

type cacheEntry struct {
	key    string
	report *types.AnalysisReport
}

func newResultCache(maxSize int) *resultCache {
	return &resultCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// cacheKey hashes the resume and JD texts together. The separator keeps
// (a+b, c) and (a, b+c) from colliding.
func cacheKey(resumeText, jdText string) string {
	h := sha256.New()
	h.Write([]byte(resumeText))
	h.Write([]byte{0})
	h.Write([]byte(jdText))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *resultCache) get(key string) (*types.AnalysisReport, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).report, true
}

func (c *resultCache) put(key string, report *types.AnalysisReport) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).report = report
		return
	}
	elem := c.order.PushFront(&cacheEntry{key: key, report: report})
	c.entries[key] = elem
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
