package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

type Kind string

const (
	KindAttendance Kind = "attendance"
	KindLeave      Kind = "leave"
	KindPayroll    Kind = "payroll"
	KindHeadcount  Kind = "headcount"
)

var Kinds = []Kind{KindAttendance, KindLeave, KindPayroll, KindHeadcount}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

type Report struct {
	Kind        Kind            `json:"kind"`
	Period      string          `json:"period"`
	Month       int             `json:"month,omitempty"`
	Year        int             `json:"year"`
	Columns     []string        `json:"columns"`
	Rows        [][]interface{} `json:"rows"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// Table is the tabular part of an upstream report.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// MapTable accepts {columns, rows}, {headers, data} or an array of flat
// objects. For the array form, columns follow the key order of the objects.
func MapTable(data []byte) (Table, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return mapRecords(trimmed)
	}

	o, err := payload.Decode("report", data)
	if err != nil {
		return Table{}, err
	}
	o.Ignore("kind", "type", "period", "month", "year", "generated_at", "generatedAt", "summary", "title")

	var t Table
	if raw, ok := o.Raw("columns", "headers"); ok {
		if err := json.Unmarshal(raw, &t.Columns); err != nil {
			o.Check(false, "columns", "must be a list of strings")
		}
	}
	if raw, ok := o.Raw("rows", "data"); ok {
		rows, err := mapRows(raw, len(t.Columns))
		if err != nil {
			o.Check(false, "rows", err.Error())
		}
		t.Rows = rows
	}
	o.Check(len(t.Columns) > 0, "columns", "is required")
	if t.Rows == nil {
		t.Rows = [][]interface{}{}
	}
	return t, o.Err()
}

func mapRows(raw json.RawMessage, width int) ([][]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows [][]interface{}
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("must be a list of rows")
	}
	for i, row := range rows {
		if width > 0 && len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), width)
		}
		for _, cell := range row {
			switch cell.(type) {
			case map[string]interface{}, []interface{}:
				return nil, fmt.Errorf("row %d holds a nested value", i)
			}
		}
	}
	return rows, nil
}

func mapRecords(data []byte) (Table, error) {
	items, err := payload.DecodeList("report", data)
	if err != nil {
		return Table{}, err
	}

	t := Table{Columns: []string{}, Rows: make([][]interface{}, 0, len(items))}
	index := map[string]int{}
	records := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		keys, values, err := orderedObject(item)
		if err != nil {
			return Table{}, &payload.ShapeError{Entity: "report", Field: fmt.Sprintf("[%d]", i), Reason: err.Error()}
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(t.Columns)
				t.Columns = append(t.Columns, k)
			}
		}
		records = append(records, values)
	}
	for _, rec := range records {
		row := make([]interface{}, len(t.Columns))
		for k, v := range rec {
			row[index[k]] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// orderedObject decodes a flat JSON object keeping its key order.
func orderedObject(data []byte) ([]string, map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}
	var keys []string
	values := map[string]interface{}{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, nil, fmt.Errorf("field %q holds a nested value", key)
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}
