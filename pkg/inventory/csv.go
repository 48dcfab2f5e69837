package inventory

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
)

const utf8BOM = "\ufeff"

// ReadCSV parses an inventory with a header row. Columns are located by name,
// extra columns are ignored and absent ones read as empty strings. Header
// validation is left to the caller so that an unusable source can be reported
// with its own name.
//
// Blank lines and rows whose cells are all blank are skipped. An input with no
// header at all is a *errors.SourceFormatError; malformed quoting is a
// *errors.ParseError.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, &errors.SourceFormatError{Message: "no header row"}
	}
	if err != nil {
		return nil, csvParseError(err)
	}

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, Row{
			Company:    cell(record, constants.ColumnCompany),
			Software:   cell(record, constants.ColumnSoftware),
			Version:    cell(record, constants.ColumnVersion),
			SDKVersion: cell(record, constants.ColumnSDKVersion),
			Type:       cell(record, constants.ColumnType),
			Line:       line,
		})
	}

	return table, nil
}

// WriteCSV writes rows in the inventory layout
// (Company, Software, Version, SDK Version, Type).
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(constants.InventoryColumns()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Company, row.Software, row.Version, row.SDKVersion, row.Type}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func csvParseError(err error) error {
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		return &errors.ParseError{
			Format:  "csv",
			Line:    perr.Line,
			Message: perr.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapParse("csv", "", err)
}
