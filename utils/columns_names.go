package utils

import (
	"fmt"
	"reflect"
)

// ColumnList returns the list of "db"-tagged column names of a dbmodel
// struct, in declaration order. Panics on a struct with an untagged field,
// which is a programming error caught by any test touching the model.
func ColumnList[DBModel any]() []string {
	var dbModel DBModel
	modelType := reflect.TypeOf(dbModel)

	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("db")
		if !ok {
			panic(fmt.Sprintf("missing db tag on field %s of %s", field.Name, modelType.Name()))
		}
		if tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}
