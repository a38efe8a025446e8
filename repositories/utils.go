package repositories

import "fmt"

func columnsNames(tableAlias string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = fmt.Sprintf("%s.%s", tableAlias, column)
	}
	return prefixed
}
