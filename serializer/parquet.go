package serializer

import (
	"bytes"
	"io"
	"reflect"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// ParquetMethod reads and writes Parquet files through
// github.com/parquet-go/parquet-go. The schema is derived from the record
// struct; parquet struct tags are honored by the library.
type ParquetMethod struct{}

func NewParquetMethod() *ParquetMethod {
	return &ParquetMethod{}
}

func (m *ParquetMethod) Discriminator() string {
	return Parquet
}

func (m *ParquetMethod) Read(r io.Reader, prototype interface{}) ([]interface{}, error) {
	tp := reflect.TypeOf(prototype)
	if tp == nil {
		return nil, errors.New("record prototype must not be nil")
	}
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp.Kind() != reflect.Struct {
		return nil, errors.Errorf("record prototype must be a struct, got:%v", tp.Kind())
	}

	// Parquet needs random access to locate the footer, so the stream is
	// buffered in full.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read parquet stream")
	}
	if len(data) == 0 {
		return nil, nil
	}
	reader := parquet.NewReader(bytes.NewReader(data), parquet.SchemaOf(reflect.New(tp).Interface()))
	defer reader.Close()

	items := make([]interface{}, 0)
	for {
		val := reflect.New(tp)
		err := reader.Read(val.Interface())
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read parquet row %v", len(items))
		}
		items = append(items, val.Elem().Interface())
	}
}

func (m *ParquetMethod) Write(w io.Writer, items []interface{}) error {
	if len(items) == 0 {
		return errors.New("parquet write requires at least one record to derive a schema")
	}
	writer := parquet.NewWriter(w, parquet.SchemaOf(items[0]))
	for i, item := range items {
		if err := writer.Write(item); err != nil {
			return errors.Wrapf(err, "write parquet row %v", i)
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "close parquet writer")
	}
	return nil
}
