// Package utils provides conversion helpers for building row-metadata tables
// from ordinary Go structs.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// StructToMap converts a struct (or pointer to struct) into a map[string]any,
// honouring `json` tags. Nil pointer fields become nil entries, which the
// table package treats as missing values.
func StructToMap[T any](record T) (map[string]any, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("StructToMap: failed to marshal input record to JSON: %w", err)
	}
	var result map[string]any
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil, fmt.Errorf("StructToMap: failed to unmarshal JSON to map[string]any: %w", err)
	}
	return result, nil
}

// MapsFromStructs converts a slice of structs into row-oriented maps suitable
// for table.FromRows, one map per row.
func MapsFromStructs[T any](records []T) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(records))
	for i, record := range records {
		row, err := StructToMap(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
