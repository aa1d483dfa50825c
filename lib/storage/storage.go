package storage

import "fmt"

// IterItem is one record of `GetIterator`; `N` counts from 1.
type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

// ListOptions bounds an iteration. A zero limit is unlimited and the cursor
// is the raw key to start from, inclusive.
type ListOptions interface {
	Reverse() bool
	Cursor() []byte
	Limit() uint64
}

// DefaultListOptions is the plain `ListOptions`.
type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{reverse: reverse, cursor: cursor, limit: limit}
}

func (o *DefaultListOptions) Reverse() bool  { return o.reverse }
func (o *DefaultListOptions) Cursor() []byte { return o.cursor }
func (o *DefaultListOptions) Limit() uint64  { return o.limit }

func (o *DefaultListOptions) String() string {
	return fmt.Sprintf("reverse=%t cursor=%q limit=%d", o.reverse, o.cursor, o.limit)
}
