// Package idlecache keeps values keyed by string and drops the ones that
// have not been touched within a TTL, or the least recently used when the
// cache is full. Values that report themselves busy are never dropped.
package idlecache
