package store

import (
	"sort"
	"strings"
)

// Batch buffers writes on top of a Committer. Reads see the batch's own
// writes. Nothing reaches the parent until Commit, so dropping a batch
// rolls the whole invocation back.
type Batch struct {
	parent  Committer
	writes  map[string][]byte
	deleted map[string]struct{}
}

var _ KVStore = (*Batch)(nil)

func NewBatch(parent Committer) *Batch {
	return &Batch{
		parent:  parent,
		writes:  make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}
}

func (b *Batch) Get(key string) ([]byte, error) {
	if v, ok := b.writes[key]; ok {
		return append([]byte(nil), v...), nil
	}
	if _, ok := b.deleted[key]; ok {
		return nil, nil
	}
	return b.parent.Get(key)
}

func (b *Batch) Has(key string) (bool, error) {
	if _, ok := b.writes[key]; ok {
		return true, nil
	}
	if _, ok := b.deleted[key]; ok {
		return false, nil
	}
	return b.parent.Has(key)
}

func (b *Batch) Set(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	delete(b.deleted, key)
	b.writes[key] = append([]byte(nil), value...)
	return nil
}

func (b *Batch) Delete(key string) error {
	delete(b.writes, key)
	b.deleted[key] = struct{}{}
	return nil
}

func (b *Batch) Keys(prefix string) ([]string, error) {
	parentKeys, err := b.parent.Keys(prefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(parentKeys)+len(b.writes))
	keys := make([]string, 0, len(parentKeys)+len(b.writes))
	for _, k := range parentKeys {
		if _, ok := b.deleted[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range b.writes {
		if _, ok := seen[k]; ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Dirty reports whether the batch holds any pending change.
func (b *Batch) Dirty() bool {
	return len(b.writes) > 0 || len(b.deleted) > 0
}

// Commit flushes the buffered changes to the parent in one atomic step.
func (b *Batch) Commit() error {
	if !b.Dirty() {
		return nil
	}
	deletes := make([]string, 0, len(b.deleted))
	for k := range b.deleted {
		deletes = append(deletes, k)
	}
	sort.Strings(deletes)
	if err := b.parent.Commit(b.writes, deletes); err != nil {
		return err
	}
	b.writes = make(map[string][]byte)
	b.deleted = make(map[string]struct{})
	return nil
}

// Discard drops every buffered change.
func (b *Batch) Discard() {
	b.writes = make(map[string][]byte)
	b.deleted = make(map[string]struct{})
}
