package serializer

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// CSVMethod reads and writes delimiter-separated record files through
// encoding/csv. Field values come from the record struct's exported fields,
// with `header`, `order`, `default` and `format` tags honored. Construct with
// NewCSVMethod or NewTSVMethod to get each format's defaults, then override
// fields as needed.
type CSVMethod struct {
	discriminator string
	//Comma the field separator
	Comma rune
	//Header whether a header row is written and expected
	Header bool
}

//NewCSVMethod csv defaults: comma-separated with a header row
func NewCSVMethod() *CSVMethod {
	return &CSVMethod{discriminator: CSV, Comma: ',', Header: true}
}

//NewTSVMethod tsv defaults: tab-separated with a header row
func NewTSVMethod() *CSVMethod {
	return &CSVMethod{discriminator: TSV, Comma: '\t', Header: true}
}

func (m *CSVMethod) Discriminator() string {
	return m.discriminator
}

func (m *CSVMethod) Read(r io.Reader, prototype interface{}) ([]interface{}, error) {
	meta, err := metadataOf(prototype)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bufio.NewReader(r))
	reader.Comma = m.Comma

	var headerIdx map[string]int
	if m.Header {
		headers, err := reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read header row")
		}
		headerIdx = headerIndex(headers)
	}

	items := make([]interface{}, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read record %v", len(items))
		}
		item, err := meta.unmarshal(record, headerIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "record %v", len(items))
		}
		items = append(items, item)
	}
}

func (m *CSVMethod) Write(w io.Writer, items []interface{}) error {
	if len(items) == 0 {
		return nil
	}
	meta, err := metadataOf(items[0])
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.Comma = m.Comma
	if m.Header {
		if err := writer.Write(meta.headers()); err != nil {
			return errors.Wrap(err, "write header row")
		}
	}
	for i, item := range items {
		record, err := meta.marshal(item)
		if err != nil {
			return errors.Wrapf(err, "record %v", i)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "write record %v", i)
		}
	}
	writer.Flush()
	return writer.Error()
}
