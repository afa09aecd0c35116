package pipeline

import (
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/pkg/utils"
	"fmt"
	"strings"
)

// ParseRecord converts one row keyed by column name. Categorical values are
// kept verbatim; only the positions must be numeric.
func ParseRecord(fields GenericRecord) (model.Record, error) {
	row, err := position(fields, model.ColumnRow)
	if err != nil {
		return model.Record{}, err
	}
	col, err := position(fields, model.ColumnCol)
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Year:             utils.String(fields[model.ColumnYear]),
		EnrollmentStatus: model.EnrollmentStatus(utils.String(fields[model.ColumnEnrollmentStatus])),
		BIPOCCategory:    model.BIPOCCategory(utils.String(fields[model.ColumnBIPOC])),
		RowPosition:      row,
		ColPosition:      col,
	}, nil
}

func position(fields GenericRecord, column string) (float64, error) {
	v := fields[column]
	if s, ok := v.(string); ok {
		v = utils.ParseValue(s)
	}
	f, err := utils.Numeric(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", column, err)
	}
	return f, nil
}

func requireColumns(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, c := range model.Columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
