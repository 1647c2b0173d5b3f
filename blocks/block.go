// Package blocks loads named configuration and secret documents ("blocks")
// from the orchestration host's store, deferring the fetch until a block is
// actually needed.
package blocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Block is a named, typed configuration document owned by the orchestration
// host. Data holds the document body as raw JSON; use Decode to map it onto
// a concrete type.
type Block struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
}

//Decode unmarshal the block body into v
func (b *Block) Decode(v interface{}) error {
	if len(b.Data) == 0 {
		return errors.Errorf("block %v has no data", b.Name)
	}
	if err := json.Unmarshal(b.Data, v); err != nil {
		return errors.Wrapf(err, "decode block %v", b.Name)
	}
	return nil
}

//ErrBlockNotFound returned by stores when no block exists under the name
var ErrBlockNotFound = errors.New("block not found")

// Store is the host's block backend, addressed by name.
type Store interface {
	GetBlock(ctx context.Context, name string) (*Block, error)
}
