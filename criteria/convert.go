package criteria

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/syssam/orm"
)

// errNoConversion reports that no conversion exists between the raw value
// and the target type.
var errNoConversion = errors.New("no conversion")

// timeLayouts are tried in order when converting text to time.Time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// convert converts the raw value stored under alias to T. NULL converts to
// the zero value of T: nil for pointer targets, and an invalid value for
// sql.Null targets. Other pointer targets receive a new converted element.
func convert[T any](alias string, v any) (T, error) {
	var out T
	if v == nil {
		return out, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	err := assign(&out, v)
	if errors.Is(err, errNoConversion) {
		if rt := reflect.TypeFor[T](); rt.Kind() == reflect.Pointer {
			p := reflect.New(rt.Elem())
			if err = assign(p.Interface(), v); err == nil {
				out = p.Interface().(T)
			}
		}
	}
	if err != nil {
		if errors.Is(err, errNoConversion) {
			err = nil
		}
		var zero T
		return zero, orm.NewTypeMismatchError(alias, reflect.TypeFor[T]().String(), v, err)
	}
	return out, nil
}

func assign(dst, v any) error {
	var err error
	switch d := dst.(type) {
	case *string:
		*d, err = toString(v)
	case *bool:
		*d, err = toBool(v)
	case *int:
		var n int64
		n, err = toInt(v, strconv.IntSize)
		*d = int(n)
	case *int8:
		var n int64
		n, err = toInt(v, 8)
		*d = int8(n)
	case *int16:
		var n int64
		n, err = toInt(v, 16)
		*d = int16(n)
	case *int32:
		var n int64
		n, err = toInt(v, 32)
		*d = int32(n)
	case *int64:
		*d, err = toInt(v, 64)
	case *uint:
		var n uint64
		n, err = toUint(v, strconv.IntSize)
		*d = uint(n)
	case *uint8:
		var n uint64
		n, err = toUint(v, 8)
		*d = uint8(n)
	case *uint16:
		var n uint64
		n, err = toUint(v, 16)
		*d = uint16(n)
	case *uint32:
		var n uint64
		n, err = toUint(v, 32)
		*d = uint32(n)
	case *uint64:
		*d, err = toUint(v, 64)
	case *float32:
		var f float64
		f, err = toFloat(v, 32)
		*d = float32(f)
	case *float64:
		*d, err = toFloat(v, 64)
	case *time.Time:
		*d, err = toTime(v)
	case *[]byte:
		*d, err = toBytes(v)
	case *uuid.UUID:
		*d, err = toUUID(v)
	case **apd.Decimal:
		*d, err = toDecimal(v)
	case *json.RawMessage:
		*d, err = toBytes(v)
	case *any:
		*d = v
	case sql.Scanner:
		err = d.Scan(v)
	default:
		err = errNoConversion
	}
	return err
}

func toString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case uuid.UUID:
		return v.String(), nil
	case *apd.Decimal:
		return v.String(), nil
	}
	return "", errNoConversion
}

func toBool(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case int64:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("value %d out of range", v)
	case string:
		return strconv.ParseBool(v)
	case []byte:
		return strconv.ParseBool(string(v))
	}
	return false, errNoConversion
}

func toInt(v any, bits int) (int64, error) {
	var n int64
	switch v := v.(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", v)
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		n = int64(v)
	case string:
		return strconv.ParseInt(v, 10, bits)
	case []byte:
		return strconv.ParseInt(string(v), 10, bits)
	case bool:
		if v {
			n = 1
		}
	default:
		return 0, errNoConversion
	}
	if bits < 64 && (n < -1<<(bits-1) || n > 1<<(bits-1)-1) {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return n, nil
}

func toUint(v any, bits int) (uint64, error) {
	var n uint64
	switch v := v.(type) {
	case uint64:
		n = v
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("value %d out of range", v)
		}
		n = uint64(v)
	case float64:
		if v != math.Trunc(v) || v < 0 || v >= math.MaxUint64 {
			return 0, fmt.Errorf("value %v is not an unsigned integer", v)
		}
		n = uint64(v)
	case string:
		return strconv.ParseUint(v, 10, bits)
	case []byte:
		return strconv.ParseUint(string(v), 10, bits)
	default:
		return 0, errNoConversion
	}
	if bits < 64 && n > 1<<bits-1 {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return n, nil
}

func toFloat(v any, bits int) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, bits)
	case []byte:
		return strconv.ParseFloat(string(v), bits)
	case *apd.Decimal:
		return v.Float64()
	}
	return 0, errNoConversion
}

func toTime(v any) (time.Time, error) {
	var s string
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}, errNoConversion
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}

func toBytes(v any) ([]byte, error) {
	switch v := v.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errNoConversion
}

func toUUID(v any) (uuid.UUID, error) {
	switch v := v.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		return uuid.ParseBytes(v)
	}
	return uuid.Nil, errNoConversion
}

func toDecimal(v any) (*apd.Decimal, error) {
	switch v := v.(type) {
	case *apd.Decimal:
		return v, nil
	case string:
		d, _, err := apd.NewFromString(v)
		return d, err
	case []byte:
		d, _, err := apd.NewFromString(string(v))
		return d, err
	case int64:
		return apd.New(v, 0), nil
	case float64:
		return new(apd.Decimal).SetFloat64(v)
	}
	return nil, errNoConversion
}
