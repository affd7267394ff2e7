package querybuilder

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds one multi-row insert from a batch of models sharing a type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// ModelColumns lists the db tagged columns of model in field order.
func ModelColumns(model any) ([]string, error) {
	typ, err := structType(model)
	if err != nil {
		return nil, err
	}
	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if col, ok := columnName(typ.Field(i)); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return cols, nil
}

// CreateTableModel derives a CREATE TABLE IF NOT EXISTS statement from the db
// tags of model. Column types follow the Go field type unless a ddl tag
// overrides them, e.g. `db:"dob" ddl:"DATE"`.
func CreateTableModel(table string, model any) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("create table name is required")
	}
	typ, err := structType(model)
	if err != nil {
		return "", err
	}

	defs := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		col, ok := columnName(field)
		if !ok {
			continue
		}
		sqlType := strings.TrimSpace(field.Tag.Get("ddl"))
		if sqlType == "" {
			sqlType, err = columnType(field.Type)
			if err != nil {
				return "", fmt.Errorf("column %s: %w", col, err)
			}
		}
		defs = append(defs, col+" "+sqlType)
	}
	if len(defs) == 0 {
		return "", fmt.Errorf("model has no db columns")
	}

	return "CREATE TABLE IF NOT EXISTS " + table + " (\n    " + strings.Join(defs, ",\n    ") + "\n)", nil
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	nullStringType = reflect.TypeOf(sql.NullString{})
	nullFloatType  = reflect.TypeOf(sql.NullFloat64{})
	nullIntType    = reflect.TypeOf(sql.NullInt64{})
)

func columnType(t reflect.Type) (string, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return "TIMESTAMP", nil
	case nullStringType:
		return "TEXT", nil
	case nullFloatType:
		return "DOUBLE PRECISION", nil
	case nullIntType:
		return "BIGINT", nil
	}

	switch t.Kind() {
	case reflect.String:
		return "TEXT", nil
	case reflect.Bool:
		return "BOOLEAN", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return "INTEGER", nil
	case reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "BIGINT", nil
	case reflect.Float32, reflect.Float64:
		return "DOUBLE PRECISION", nil
	default:
		return "", fmt.Errorf("unsupported column type %s", t)
	}
}

func structType(model any) (reflect.Type, error) {
	typ := reflect.TypeOf(model)
	if typ == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct")
	}
	return typ, nil
}

func columnName(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}
	tag := strings.TrimSpace(field.Tag.Get("db"))
	if tag == "" || tag == "-" {
		return "", false
	}
	col := strings.TrimSpace(strings.Split(tag, ",")[0])
	if col == "" || col == "-" {
		return "", false
	}
	return col, true
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, ok := columnName(typ.Field(i))
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
