package core

import (
	"fmt"
	"strconv"
)

// RowReader is the part of a result-set cursor needed to extract one row.
type RowReader interface {
	IsNull(column string) bool
	// Value returns the raw column value as delivered by the driver: int64,
	// []byte or string.
	Value(column string) (any, error)
}

// ReadRow copies the current row of r into blueprint, column by column, and
// returns blueprint. SQL NULL leaves the column empty.
func ReadRow(r RowReader, blueprint *Schema) (*Schema, error) {
	for _, c := range blueprint.columns {
		if r.IsNull(c.name) {
			c.ClearData()
			continue
		}
		raw, err := r.Value(c.name)
		if err != nil {
			return nil, fmt.Errorf("read %s.%s: %w", blueprint.name, c.name, err)
		}
		v, err := convertRaw(c.kind, raw)
		if err != nil {
			return nil, withTable(newError(ErrTypeMismatch, "", c.name, "%v", err), blueprint.name)
		}
		if err := c.SetData(v); err != nil {
			return nil, withTable(err, blueprint.name)
		}
	}
	return blueprint, nil
}

func convertRaw(kind Kind, raw any) (Value, error) {
	var text string
	switch x := raw.(type) {
	case int64:
		if kind == KindInt {
			return IntValue(x), nil
		}
		text = strconv.FormatInt(x, 10)
	case int:
		if kind == KindInt {
			return IntValue(int64(x)), nil
		}
		text = strconv.Itoa(x)
	case []byte:
		text = string(x)
	case string:
		text = x
	default:
		return Value{}, fmt.Errorf("unsupported driver value %T", raw)
	}
	if kind == KindText {
		return TextValue(text), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse integer %q: %w", text, err)
	}
	return IntValue(n), nil
}
