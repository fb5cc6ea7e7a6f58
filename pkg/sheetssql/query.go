package sheetssql

import (
	"fmt"
	"reflect"
	"strconv"
)

// SelectAll reads every data row of T's table.
// The first two rows of a table hold headers and types and are skipped.
func SelectAll[T any](db *DB) ([]T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	tableName := TableName(t)

	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < 3 {
		return []T{}, nil
	}

	columnIndexes := make(map[string]int)
	for i, header := range values[0] {
		if name, ok := header.(string); ok {
			columnIndexes[name] = i
		}
	}

	fields := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		if name := t.Field(i).Tag.Get("ssql_header"); name != "" {
			fields[name] = i
		}
	}

	dataRows := values[2:]
	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()
		for columnName, colIdx := range columnIndexes {
			fieldIdx, ok := fields[columnName]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.Field(fieldIdx), row[colIdx]); err != nil {
				return nil, fmt.Errorf("table %s row %d, column %s: %w", tableName, rowIdx+3, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// SelectWhere reads the rows of T's table that satisfy keep
func SelectWhere[T any](db *DB, keep func(T) bool) ([]T, error) {
	all, err := SelectAll[T](db)
	if err != nil {
		return nil, err
	}

	filtered := make([]T, 0, len(all))
	for _, row := range all {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// InsertAll appends models as rows of T's table, one column per tagged field
func InsertAll[T any](db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	t := reflect.TypeOf((*T)(nil)).Elem()

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		v := reflect.ValueOf(model)
		row := make([]interface{}, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("ssql_header") == "" {
				continue
			}
			row = append(row, formatCell(v.Field(i)))
		}
		rows = append(rows, row)
	}

	return db.InsertRows(TableName(t), rows)
}

// ReplaceAll truncates T's table and writes models in its place
func ReplaceAll[T any](db *DB, models []T) error {
	tableName := TableName(reflect.TypeOf((*T)(nil)).Elem())
	if err := db.TruncateTable(tableName); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", tableName, err)
	}
	return InsertAll(db, models)
}

// formatCell renders a field the way the Sheets API returns it on read
func formatCell(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return fmt.Sprint(v.Interface())
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if s, ok := cell.(string); !ok || s != "" {
			return false
		}
	}
	return true
}

// setFieldValue parses a cell into the field. Empty cells leave the zero value.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		return fmt.Errorf("cell value is not a string")
	}

	if cellStr == "" {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse uint: %w", err)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(cellStr, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
