package blocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// MemStore is an in-memory Store for tests and local runs.
type MemStore struct {
	mu     sync.RWMutex
	blocks map[string]*Block
}

func NewMemStore() *MemStore {
	return &MemStore{blocks: map[string]*Block{}}
}

//Put register a block under its name, overwriting any previous one
func (s *MemStore) Put(block *Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[block.Name] = block
}

//PutValue register a block built from a name, a type tag and a JSON-able value
func (s *MemStore) PutValue(name, blockType string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode block %v", name)
	}
	now := time.Now()
	s.Put(&Block{Name: name, Type: blockType, Data: data, Created: now, Updated: now})
	return nil
}

func (s *MemStore) GetBlock(ctx context.Context, name string) (*Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	block, ok := s.blocks[name]
	if !ok {
		return nil, errors.Wrapf(ErrBlockNotFound, "name:%v", name)
	}
	return block, nil
}
