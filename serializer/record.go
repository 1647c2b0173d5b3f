package serializer

import (
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

//DefaultTimeLayout layout for time.Time fields without a format tag
const DefaultTimeLayout = "2006-01-02 15:04:05"

// recordField describes one exported struct field taking part in record
// (un)marshalling. Tags: `header` renames the column, `order` pins the column
// position, `default` substitutes empty cells, `format` sets the time layout.
type recordField struct {
	index  int
	header string
	defval string
	layout string
}

type recordMeta struct {
	typ      reflect.Type
	fields   []recordField
	byHeader map[string]int
}

func metadataOf(prototype interface{}) (*recordMeta, error) {
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

	type taggedField struct {
		field recordField
		order int
		pos   int
	}
	tagged := make([]taggedField, 0, tp.NumField())
	ordered := false
	for i := 0; i < tp.NumField(); i++ {
		sf := tp.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		field := recordField{
			index:  i,
			header: sf.Name,
			defval: sf.Tag.Get("default"),
			layout: sf.Tag.Get("format"),
		}
		if h := sf.Tag.Get("header"); h != "" {
			field.header = h
		}
		if field.layout == "" {
			field.layout = DefaultTimeLayout
		}
		order := -1
		if o := sf.Tag.Get("order"); o != "" {
			idx, err := strconv.Atoi(o)
			if err != nil || idx < 0 {
				return nil, errors.Errorf("invalid order tag on field %v:%v", sf.Name, o)
			}
			order = idx
			ordered = true
		}
		tagged = append(tagged, taggedField{field: field, order: order, pos: i})
	}
	if len(tagged) == 0 {
		return nil, errors.Errorf("record type %v has no exported fields", tp)
	}
	if ordered {
		// Ordered fields come first, by their order tag; untagged fields keep
		// declaration order after them.
		sort.SliceStable(tagged, func(i, j int) bool {
			oi, oj := tagged[i].order, tagged[j].order
			if oi >= 0 && oj >= 0 {
				return oi < oj
			}
			if oi != oj {
				return oi >= 0
			}
			return tagged[i].pos < tagged[j].pos
		})
		for i := 1; i < len(tagged); i++ {
			if tagged[i].order >= 0 && tagged[i].order == tagged[i-1].order {
				return nil, errors.Errorf("duplicate order:%v in record type %v", tagged[i].order, tp)
			}
		}
	}

	meta := &recordMeta{typ: tp, byHeader: map[string]int{}}
	for _, tf := range tagged {
		if _, ok := meta.byHeader[tf.field.header]; ok {
			return nil, errors.Errorf("duplicate header:%v in record type %v", tf.field.header, tp)
		}
		meta.byHeader[tf.field.header] = len(meta.fields)
		meta.fields = append(meta.fields, tf.field)
	}
	return meta, nil
}

func (m *recordMeta) headers() []string {
	headers := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		headers = append(headers, f.header)
	}
	return headers
}

// marshal renders one record as strings, one per field, in column order.
func (m *recordMeta) marshal(item interface{}) ([]string, error) {
	val := reflect.ValueOf(item)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Type() != m.typ {
		return nil, errors.Errorf("record type mismatch, want:%v got:%v", m.typ, val.Type())
	}
	record := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		s, err := formatVal(val.Field(f.index), f.layout)
		if err != nil {
			return nil, errors.Wrapf(err, "field %v", f.header)
		}
		record = append(record, s)
	}
	return record, nil
}

// unmarshal builds a record value from strings. With headerIdx the cells are
// located by header name; without it they are taken positionally. Missing or
// empty cells fall back to the field's default tag.
func (m *recordMeta) unmarshal(record []string, headerIdx map[string]int) (interface{}, error) {
	val := reflect.New(m.typ).Elem()
	for pos, f := range m.fields {
		src := pos
		if headerIdx != nil {
			idx, ok := headerIdx[f.header]
			if !ok {
				src = -1
			} else {
				src = idx
			}
		}
		cell := ""
		if src >= 0 && src < len(record) {
			cell = record[src]
		}
		if cell == "" {
			if f.defval == "" {
				continue
			}
			cell = f.defval
		}
		if err := parseVal(cell, val.Field(f.index), f.layout); err != nil {
			return nil, errors.Wrapf(err, "field %v", f.header)
		}
	}
	return val.Interface(), nil
}

func formatVal(v reflect.Value, layout string) (string, error) {
	if t, ok := v.Interface().(time.Time); ok {
		if t.IsZero() {
			return "", nil
		}
		return t.Format(layout), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	}
	return "", errors.Errorf("unsupported record field type:%v", v.Type())
}

func parseVal(s string, v reflect.Value, layout string) error {
	if _, ok := v.Interface().(time.Time); ok {
		t, err := time.Parse(layout, s)
		if err != nil {
			return errors.Errorf("invalid time %q for layout %v", s, layout)
		}
		v.Set(reflect.ValueOf(t))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Errorf("invalid bool %q", s)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Errorf("invalid int %q", s)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.Errorf("invalid uint %q", s)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Errorf("invalid float %q", s)
		}
		v.SetFloat(f)
	default:
		return errors.Errorf("unsupported record field type:%v", v.Type())
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}
