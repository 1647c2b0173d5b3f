package blocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// SQLStore reads blocks from a relational table through database/sql. The
// expected schema:
//
//	CREATE TABLE flow_block (
//	    block_name   VARCHAR(128) NOT NULL PRIMARY KEY,
//	    block_type   VARCHAR(64)  NOT NULL,
//	    block_data   TEXT,
//	    create_time  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    last_updated TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	);
type SQLStore struct {
	db *sql.DB
}

//NewSQLStore build a store over an opened database handle
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("sql store requires a *sql.DB")
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) GetBlock(ctx context.Context, name string) (*Block, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT block_name, block_type, block_data, create_time, last_updated FROM flow_block WHERE block_name = ?", name)
	block := &Block{}
	var data sql.NullString
	err := row.Scan(&block.Name, &block.Type, &data, &block.Created, &block.Updated)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrBlockNotFound, "name:%v", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query block %v", name)
	}
	if data.Valid {
		block.Data = json.RawMessage(data.String)
	}
	return block, nil
}

//SaveBlock insert or replace a block document
func (s *SQLStore) SaveBlock(ctx context.Context, block *Block) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		"REPLACE INTO flow_block (block_name, block_type, block_data, create_time, last_updated) VALUES (?, ?, ?, ?, ?)",
		block.Name, block.Type, string(block.Data), now, now)
	if err != nil {
		return errors.Wrapf(err, "save block %v", block.Name)
	}
	return nil
}
