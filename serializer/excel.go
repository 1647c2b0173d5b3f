package serializer

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ExcelMethod reads and writes xlsx workbooks through
// github.com/xuri/excelize/v2. Records live on one sheet, one row per record,
// with cell values rendered through the same struct-field glue as CSV.
type ExcelMethod struct {
	//Sheet the worksheet holding the records
	Sheet string
	//Header whether a header row is written and expected
	Header bool
}

//NewExcelMethod excel defaults: records on Sheet1 with a header row
func NewExcelMethod() *ExcelMethod {
	return &ExcelMethod{Sheet: "Sheet1", Header: true}
}

func (m *ExcelMethod) Discriminator() string {
	return Excel
}

func (m *ExcelMethod) Read(r io.Reader, prototype interface{}) ([]interface{}, error) {
	meta, err := metadataOf(prototype)
	if err != nil {
		return nil, err
	}
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx stream")
	}
	defer book.Close()

	rows, err := book.GetRows(m.Sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %v", m.Sheet)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var headerIdx map[string]int
	if m.Header {
		headerIdx = headerIndex(rows[0])
		rows = rows[1:]
	}
	items := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		item, err := meta.unmarshal(row, headerIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "record %v", len(items))
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *ExcelMethod) Write(w io.Writer, items []interface{}) error {
	book := excelize.NewFile()
	defer book.Close()

	if idx, err := book.GetSheetIndex(m.Sheet); err != nil {
		return errors.Wrapf(err, "sheet %v", m.Sheet)
	} else if idx < 0 {
		if _, err := book.NewSheet(m.Sheet); err != nil {
			return errors.Wrapf(err, "create sheet %v", m.Sheet)
		}
	}

	rowNum := 1
	writeRow := func(cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, 0, len(cells))
		for _, c := range cells {
			row = append(row, c)
		}
		if err := book.SetSheetRow(m.Sheet, cell, &row); err != nil {
			return err
		}
		rowNum++
		return nil
	}

	if len(items) > 0 {
		meta, err := metadataOf(items[0])
		if err != nil {
			return err
		}
		if m.Header {
			if err := writeRow(meta.headers()); err != nil {
				return errors.Wrap(err, "write header row")
			}
		}
		for i, item := range items {
			cells, err := meta.marshal(item)
			if err != nil {
				return errors.Wrapf(err, "record %v", i)
			}
			if err := writeRow(cells); err != nil {
				return errors.Wrapf(err, "write record %v", i)
			}
		}
	}

	if err := book.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx stream")
	}
	return nil
}
