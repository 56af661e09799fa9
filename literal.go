package sqlmap

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

const null = "NULL"

// encoder 把字段的值编码成 SQL 字面量
// 按 文本/时间, 布尔, 可空布尔, 枚举, 其它 的顺序匹配, 先匹配上的生效
type encoder struct {
	dialect Dialect
}

func (e encoder) encode(fd *model.Field, val any) (string, error) {
	switch fd.Kind {
	case model.KindText, model.KindTime:
		rv, ok := deref(val)
		if !ok {
			return null, nil
		}
		if t, ok := rv.Interface().(time.Time); ok {
			return e.quote(t.Format(e.dialect.timeLayout())), nil
		}
		return e.quote(rv.String()), nil
	case model.KindBool:
		rv, ok := deref(val)
		if !ok {
			return null, nil
		}
		return boolLiteral(rv.Bool()), nil
	case model.KindNullBool:
		if nb, ok := val.(sql.NullBool); ok {
			if !nb.Valid {
				return null, nil
			}
			return boolLiteral(nb.Bool), nil
		}
		rv, ok := deref(val)
		if !ok {
			return null, nil
		}
		if nb, ok := rv.Interface().(sql.NullBool); ok {
			return e.encode(fd, nb)
		}
		return boolLiteral(rv.Bool()), nil
	case model.KindEnum, model.KindNumeric:
		rv, ok := deref(val)
		if !ok {
			return null, nil
		}
		return e.number(fd, rv)
	default:
		return e.value(fd, val)
	}
}

// number 数字统一用 strconv 输出, 和 locale 无关
func (e encoder) number(fd *model.Field, rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", errs.NewErrUnsupportedValue(fd.GoName, f)
		}
		return strconv.FormatFloat(f, 'f', -1, rv.Type().Bits()), nil
	default:
		return "", errs.NewErrUnsupportedValue(fd.GoName, rv.Interface())
	}
}

func (e encoder) value(fd *model.Field, val any) (string, error) {
	rv := reflect.ValueOf(val)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return null, nil
	}
	if v, ok := val.(driver.Valuer); ok {
		dv, err := v.Value()
		if err != nil {
			return "", err
		}
		return e.driverValue(fd, dv)
	}
	rv, _ = deref(val)
	// Value 定义在指针上的情况
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	if v, ok := ptr.Interface().(driver.Valuer); ok {
		dv, err := v.Value()
		if err != nil {
			return "", err
		}
		return e.driverValue(fd, dv)
	}
	return fmt.Sprint(rv.Interface()), nil
}

// driverValue 编码 driver.Valuer 返回的值
func (e encoder) driverValue(fd *model.Field, dv driver.Value) (string, error) {
	switch v := dv.(type) {
	case nil:
		return null, nil
	case string:
		return e.quote(v), nil
	case []byte:
		return e.quote(string(v)), nil
	case time.Time:
		return e.quote(v.Format(e.dialect.timeLayout())), nil
	case bool:
		return boolLiteral(v), nil
	case int64, float64:
		return e.number(fd, reflect.ValueOf(v))
	default:
		return fmt.Sprint(v), nil
	}
}

// quote 单引号翻倍转义, 再用单引号包起来
func (e encoder) quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func boolLiteral(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// deref 解引用, nil 返回 false
func deref(val any) (reflect.Value, bool) {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}
