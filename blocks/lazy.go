package blocks

import (
	"context"
)

// Lazy is a two-state cell around a named block: unfetched until the first
// Get, fetched-with-value afterwards. A successful fetch is cached for the
// cell's remaining lifetime; a failed fetch caches nothing, so the next Get
// retries.
//
// Lazy is not safe for concurrent first access. Either resolve it once before
// sharing, or guard Get externally.
type Lazy struct {
	store Store
	name  string
	block *Block
}

//NewLazy bind a cell to a store and a block name without fetching anything
func NewLazy(store Store, name string) *Lazy {
	return &Lazy{store: store, name: name}
}

//Name the block name the cell resolves
func (l *Lazy) Name() string {
	return l.name
}

//Loaded report whether the block has been fetched
func (l *Lazy) Loaded() bool {
	return l.block != nil
}

//Get fetch the block on first access and return the cached value afterwards
func (l *Lazy) Get(ctx context.Context) (*Block, error) {
	if l.block == nil {
		block, err := l.store.GetBlock(ctx, l.name)
		if err != nil {
			return nil, err
		}
		l.block = block
	}
	return l.block, nil
}
