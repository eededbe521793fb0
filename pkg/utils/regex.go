package utils

import (
	"container/list"
	"regexp"
	"sync"
)

/**************************************************************************************************
** LRUCache is a thread-safe LRU cache for compiled regular expressions. Patterns built at
** runtime (user-supplied include filters, per-file companion patterns) would otherwise be
** recompiled on every call; the cache bounds memory while keeping compilation off the hot
** path.
**************************************************************************************************/
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
}

type lruEntry struct {
	pattern string
	regex   *regexp.Regexp
}

/**************************************************************************************************
** NewLRUCache creates a new LRU cache for compiled regular expressions.
**
** @param capacity - Maximum number of cached patterns before evicting LRU
** @return *LRUCache - Initialized LRU cache instance
**************************************************************************************************/
func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

/**************************************************************************************************
** Get retrieves a compiled regex from the cache and marks it as most recently used.
**
** @param pattern - Regex pattern string key
** @return *regexp.Regexp - Compiled regex if present
** @return bool - True if found in cache
**************************************************************************************************/
func (c *LRUCache) Get(pattern string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.cache[pattern]; ok {
		c.lru.MoveToFront(node)
		return node.Value.(*lruEntry).regex, true
	}
	return nil, false
}

/**************************************************************************************************
** Put inserts or updates a compiled regex in the cache, evicting the LRU entry if at
** capacity.
**
** @param pattern - Regex pattern string key
** @param regex - Compiled regex to store
**************************************************************************************************/
func (c *LRUCache) Put(pattern string, regex *regexp.Regexp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.cache[pattern]; ok {
		node.Value.(*lruEntry).regex = regex
		c.lru.MoveToFront(node)
		return
	}

	if len(c.cache) >= c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			delete(c.cache, oldest.Value.(*lruEntry).pattern)
			c.lru.Remove(oldest)
		}
	}
	c.cache[pattern] = c.lru.PushFront(&lruEntry{pattern: pattern, regex: regex})
}

// Default cache instance. 1000 entries is far beyond what one grouping run builds, but it
// bounds memory for long-lived callers compiling per-file patterns.
var defaultCache = NewLRUCache(1000)

/**************************************************************************************************
** RegexCompile compiles a regular expression pattern and caches the result using the
** default LRU cache.
**
** @param pattern - The regex pattern to compile
** @return *regexp.Regexp - Compiled regex
** @return error - Compilation error, if any
**************************************************************************************************/
func RegexCompile(pattern string) (*regexp.Regexp, error) {
	if re, ok := defaultCache.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	defaultCache.Put(pattern, re)
	return re, nil
}
