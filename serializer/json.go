package serializer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// JSONMethod reads and writes records through encoding/json, either as one
// JSON array document (json) or as one object per line (jsonl).
type JSONMethod struct {
	discriminator string
	//Lines write one object per line instead of a single array document
	Lines bool
}

//NewJSONMethod json defaults: a single array document
func NewJSONMethod() *JSONMethod {
	return &JSONMethod{discriminator: JSON}
}

//NewJSONLMethod jsonl defaults: line-delimited objects
func NewJSONLMethod() *JSONMethod {
	return &JSONMethod{discriminator: JSONL, Lines: true}
}

func (m *JSONMethod) Discriminator() string {
	return m.discriminator
}

func (m *JSONMethod) Read(r io.Reader, prototype interface{}) ([]interface{}, error) {
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
	if m.Lines {
		return m.readLines(r, tp)
	}

	slicePtr := reflect.New(reflect.SliceOf(tp))
	if err := json.NewDecoder(r).Decode(slicePtr.Interface()); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode json array")
	}
	slice := slicePtr.Elem()
	items := make([]interface{}, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		items = append(items, slice.Index(i).Interface())
	}
	return items, nil
}

func (m *JSONMethod) readLines(r io.Reader, tp reflect.Type) ([]interface{}, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	items := make([]interface{}, 0)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		val := reflect.New(tp)
		if err := json.Unmarshal(line, val.Interface()); err != nil {
			return nil, errors.Wrapf(err, "decode json line %v", len(items))
		}
		items = append(items, val.Elem().Interface())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read json lines")
	}
	return items, nil
}

func (m *JSONMethod) Write(w io.Writer, items []interface{}) error {
	if m.Lines {
		encoder := json.NewEncoder(w)
		for i, item := range items {
			if err := encoder.Encode(item); err != nil {
				return errors.Wrapf(err, "encode json line %v", i)
			}
		}
		return nil
	}
	if items == nil {
		items = []interface{}{}
	}
	if err := json.NewEncoder(w).Encode(items); err != nil {
		return errors.Wrap(err, "encode json array")
	}
	return nil
}
