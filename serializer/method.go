// Package serializer maps format discriminators to read/write methods for
// tabular record files. Every method delegates the actual encoding to the
// format's own library (encoding/csv, encoding/json, parquet-go, excelize);
// this package only owns the lookup and the struct-field glue.
package serializer

import (
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// built-in method discriminators
const (
	CSV     = "csv"
	TSV     = "tsv"
	JSON    = "json"
	JSONL   = "jsonl"
	Parquet = "parquet"
	Excel   = "excel"
)

// Method reads and writes a stream of records in one format. Read returns
// records as struct values of the prototype's type; Write accepts the same.
type Method interface {
	Discriminator() string
	Read(r io.Reader, prototype interface{}) ([]interface{}, error)
	Write(w io.Writer, items []interface{}) error
}

var (
	methodMu sync.RWMutex
	methods  = map[string]Method{}
)

// Register adds a custom method under its discriminator. Built-in
// discriminators and already-registered ones are rejected.
func Register(m Method) error {
	discriminator := m.Discriminator()
	switch discriminator {
	case CSV, TSV, JSON, JSONL, Parquet, Excel:
		return errors.Errorf("method discriminator %v is built in", discriminator)
	}
	methodMu.Lock()
	defer methodMu.Unlock()
	if _, ok := methods[discriminator]; ok {
		return errors.Errorf("duplicate method discriminator:%v", discriminator)
	}
	methods[discriminator] = m
	return nil
}

// GetMethod resolves a discriminator to a method with that format's default
// options. Unknown discriminators are an error.
func GetMethod(discriminator string) (Method, error) {
	switch discriminator {
	case CSV:
		return NewCSVMethod(), nil
	case TSV:
		return NewTSVMethod(), nil
	case JSON:
		return NewJSONMethod(), nil
	case JSONL:
		return NewJSONLMethod(), nil
	case Parquet:
		return NewParquetMethod(), nil
	case Excel:
		return NewExcelMethod(), nil
	}
	methodMu.RLock()
	defer methodMu.RUnlock()
	if m, ok := methods[discriminator]; ok {
		return m, nil
	}
	return nil, errors.Errorf("unknown serializer method:%v", discriminator)
}

// Serializer turns record slices into byte blobs and back through a method
// chosen by discriminator.
type Serializer struct {
	Method string
}

func (s Serializer) Marshal(items []interface{}) ([]byte, error) {
	m, err := GetMethod(s.Method)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := m.Write(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s Serializer) Unmarshal(data []byte, prototype interface{}) ([]interface{}, error) {
	m, err := GetMethod(s.Method)
	if err != nil {
		return nil, err
	}
	return m.Read(bytes.NewReader(data), prototype)
}
