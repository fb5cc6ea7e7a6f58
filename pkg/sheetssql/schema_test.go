package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestDemandLine struct {
	ID              string `ssql_header:"id" ssql_type:"uuid"`
	QualificationID string `ssql_header:"qualification_id" ssql_type:"text"`
	Count           int    `ssql_header:"count" ssql_type:"int"`
}

type TestRosterEntry struct {
	EmployeeID string `ssql_header:"employee_id" ssql_type:"text"`
	Date       string `ssql_header:"date" ssql_type:"date"`
	Status     string `ssql_header:"status" ssql_type:"text"`
	Excluded   bool   `ssql_header:"excluded" ssql_type:"bool"`
}

func TestSchemaFromModels_SingleModel(t *testing.T) {
	schema, err := SchemaFromModels(TestDemandLine{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	table := schema.Tables[0]

	assert.Equal(t, "test_demand_line", table.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: "uuid"},
		{Name: "qualification_id", Type: "text"},
		{Name: "count", Type: "int"},
	}, table.Columns)
}

func TestSchemaFromModels_MultipleModels(t *testing.T) {
	schema, err := SchemaFromModels(TestDemandLine{}, &TestRosterEntry{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "test_demand_line", schema.Tables[0].Name)
	assert.Equal(t, "test_roster_entry", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 4)

	table, ok := schema.Table("test_roster_entry")
	assert.True(t, ok)
	assert.Equal(t, "excluded", table.Columns[3].Name)

	_, ok = schema.Table("missing")
	assert.False(t, ok)
}

func TestSchemaFromModels_InvalidModels(t *testing.T) {
	type MissingHeader struct {
		ID string `ssql_type:"uuid"`
	}
	type MissingType struct {
		ID string `ssql_header:"id"`
	}
	type Empty struct{}

	tests := []struct {
		name    string
		model   interface{}
		wantErr string
	}{
		{"missing header tag", MissingHeader{}, "missing 'ssql_header' tag"},
		{"missing type tag", MissingType{}, "missing 'ssql_type' tag"},
		{"not a struct", "not a struct", "must be a struct"},
		{"no fields", Empty{}, "has no fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchemaFromModels(tt.model)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DemandLine", "demand_line"},
		{"QualificationAssignment", "qualification_assignment"},
		{"UUID", "u_u_i_d"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}

func TestNewDB_CreatesMissingTables(t *testing.T) {
	client := newFakeSheets()
	schema, err := SchemaFromModels(TestDemandLine{}, TestRosterEntry{})
	require.NoError(t, err)

	_, err = NewDB(client, "sheet-id", schema)
	require.NoError(t, err)

	assert.Equal(t, []string{"test_demand_line", "test_roster_entry"}, client.created)
	assert.Equal(t, [][]interface{}{
		{"id", "qualification_id", "count"},
		{"uuid", "text", "int"},
	}, client.tabs["test_demand_line"])
}

func TestNewDB_VerifiesExistingTables(t *testing.T) {
	client := newFakeSheets()
	client.addTab("test_demand_line",
		[]interface{}{"id", "qualification_id", "count"},
		[]interface{}{"uuid", "text", "int"},
		[]interface{}{"line-1", "q-k", "2"},
	)
	schema, err := SchemaFromModels(TestDemandLine{})
	require.NoError(t, err)

	_, err = NewDB(client, "sheet-id", schema)
	require.NoError(t, err)
	assert.Empty(t, client.created)
}

func TestNewDB_SchemaMismatch(t *testing.T) {
	client := newFakeSheets()
	client.addTab("test_demand_line",
		[]interface{}{"id", "qualification", "count"},
		[]interface{}{"uuid", "text", "int"},
	)
	schema, err := SchemaFromModels(TestDemandLine{})
	require.NoError(t, err)

	_, err = NewDB(client, "sheet-id", schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected header 'qualification_id'")
}
