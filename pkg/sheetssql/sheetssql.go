package sheetssql

import (
	"fmt"
)

// SheetsClient is the subset of the Sheets API the database needs
type SheetsClient interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
	ClearRange(spreadsheetID, sheetRange string) error
	CreateSheet(spreadsheetID, sheetTitle string) (int64, error)
	SheetTitles(spreadsheetID string) ([]string, error)
}

// Column is one typed column of a table
type Column struct {
	Name string
	Type string // text, date, int, bool
}

// TableSchema is one sheet tab: a header row, a type row, then data rows
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema lists every table the database expects
type Schema struct {
	Tables []TableSchema
}

// Table returns the schema of the named table
func (s *Schema) Table(name string) (TableSchema, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSchema{}, false
}

// DB treats one spreadsheet as a database, one tab per table
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
}

// NewDB opens the spreadsheet and creates or verifies every table in schema
func NewDB(client SheetsClient, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// InsertRows appends rows to the named table
func (db *DB) InsertRows(tableName string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	return db.client.AppendRows(db.spreadsheetID, tableName, rows)
}

// TruncateTable clears every data row of the named table, keeping the header and type rows
func (db *DB) TruncateTable(tableName string) error {
	return db.client.ClearRange(db.spreadsheetID, tableName+"!A3:ZZ")
}
