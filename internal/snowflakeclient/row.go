package snowflakeclient

import (
	"database/sql"
	"fmt"

	"github.com/pingcap/errors"
)

// Row is a single result row keyed by column name.
type Row map[string]any

func (r Row) GetString(key string) (string, error) {
	value, ok := r[key]
	if !ok {
		return "", errors.Errorf("column %q not found", key)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WithMessage(err, "error reading columns")
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.WithMessage(err, "error scanning row")
		}

		row := make(Row, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithMessage(err, "error iterating rows")
	}
	return result, nil
}
