package sheetssql

import (
	"fmt"
	"strings"
)

// fakeSheets keeps each tab in memory
type fakeSheets struct {
	tabs    map[string][][]interface{}
	order   []string
	created []string
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{tabs: make(map[string][][]interface{})}
}

func (f *fakeSheets) addTab(name string, rows ...[]interface{}) {
	f.tabs[name] = rows
	f.order = append(f.order, name)
}

func (f *fakeSheets) GetValues(_ string, sheetRange string) ([][]interface{}, error) {
	name, cells, hasCells := strings.Cut(sheetRange, "!")
	rows, ok := f.tabs[name]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %s", name)
	}
	if hasCells && cells == "A1:ZZ2" && len(rows) > 2 {
		return rows[:2], nil
	}
	return rows, nil
}

func (f *fakeSheets) AppendRows(_ string, sheetRange string, values [][]interface{}) error {
	if _, ok := f.tabs[sheetRange]; !ok {
		return fmt.Errorf("unknown sheet %s", sheetRange)
	}
	f.tabs[sheetRange] = append(f.tabs[sheetRange], values...)
	return nil
}

// ClearRange only supports the data rows of a whole tab
func (f *fakeSheets) ClearRange(_ string, sheetRange string) error {
	name, cells, _ := strings.Cut(sheetRange, "!")
	rows, ok := f.tabs[name]
	if !ok {
		return fmt.Errorf("unknown sheet %s", name)
	}
	if cells != "A3:ZZ" {
		return fmt.Errorf("unsupported range %s", sheetRange)
	}
	if len(rows) > 2 {
		f.tabs[name] = rows[:2]
	}
	return nil
}

func (f *fakeSheets) CreateSheet(_ string, sheetTitle string) (int64, error) {
	f.addTab(sheetTitle)
	f.created = append(f.created, sheetTitle)
	return int64(len(f.order)), nil
}

func (f *fakeSheets) SheetTitles(_ string) ([]string, error) {
	return append([]string(nil), f.order...), nil
}
