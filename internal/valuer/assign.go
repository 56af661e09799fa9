package valuer

import (
	"database/sql"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

var timeType = reflect.TypeOf(time.Time{})

// 驱动返回的时间文本可能的格式
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// assign 把 val 写进 dst, dst 必须是可寻址的
// 类型相同直接赋值; 其余的值和 NULL 交给 sql.Scanner 处理, 没有实现 Scanner 的时候 NULL 写成零值
func assign(fd *model.Field, dst reflect.Value, val any) error {
	var src reflect.Value
	if val != nil {
		src = reflect.ValueOf(val)
		if src.Type().AssignableTo(dst.Type()) {
			dst.Set(src)
			return nil
		}
		// 驱动的值不会是指针, 先解引用
		if src.Kind() == reflect.Pointer {
			if src.IsNil() {
				return assign(fd, dst, nil)
			}
			if dst.Kind() != reflect.Pointer {
				return assign(fd, dst, src.Elem().Interface())
			}
		}
	}
	if sc, ok := dst.Addr().Interface().(sql.Scanner); ok {
		return sc.Scan(val)
	}
	if val == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if dst.Kind() == reflect.Pointer {
		elem := reflect.New(dst.Type().Elem())
		if err := assign(fd, elem.Elem(), val); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}
	if convert(dst, src) {
		return nil
	}
	return errs.NewErrIncompatibleType(fd.GoName, val, dst.Type().String())
}

// convert 处理驱动常见的类型差异, 例如 int64 写到 int8, 1/0 写到 bool, 文本写到数字
func convert(dst reflect.Value, src reflect.Value) bool {
	switch dst.Kind() {
	case reflect.Bool:
		switch {
		case isInt(src):
			dst.SetBool(src.Int() != 0)
		case isUint(src):
			dst.SetBool(src.Uint() != 0)
		case src.Kind() == reflect.Bool:
			dst.SetBool(src.Bool())
		case isText(src):
			b, err := strconv.ParseBool(strings.TrimSpace(text(src)))
			if err != nil {
				return false
			}
			dst.SetBool(b)
		default:
			return false
		}
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch {
		case isInt(src):
			i = src.Int()
		case isUint(src):
			if src.Uint() > math.MaxInt64 {
				return false
			}
			i = int64(src.Uint())
		case isFloat(src):
			f := src.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
				return false
			}
			i = int64(f)
		case src.Kind() == reflect.Bool:
			if src.Bool() {
				i = 1
			}
		case isText(src):
			var err error
			if i, err = strconv.ParseInt(strings.TrimSpace(text(src)), 10, 64); err != nil {
				return false
			}
		default:
			return false
		}
		if dst.OverflowInt(i) {
			return false
		}
		dst.SetInt(i)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		switch {
		case isInt(src):
			if src.Int() < 0 {
				return false
			}
			u = uint64(src.Int())
		case isUint(src):
			u = src.Uint()
		case isFloat(src):
			f := src.Float()
			if f != math.Trunc(f) || f < 0 || f > math.MaxUint64 {
				return false
			}
			u = uint64(f)
		case src.Kind() == reflect.Bool:
			if src.Bool() {
				u = 1
			}
		case isText(src):
			var err error
			if u, err = strconv.ParseUint(strings.TrimSpace(text(src)), 10, 64); err != nil {
				return false
			}
		default:
			return false
		}
		if dst.OverflowUint(u) {
			return false
		}
		dst.SetUint(u)
		return true
	case reflect.Float32, reflect.Float64:
		var f float64
		switch {
		case isInt(src):
			f = float64(src.Int())
		case isUint(src):
			f = float64(src.Uint())
		case isFloat(src):
			f = src.Float()
		case isText(src):
			var err error
			if f, err = strconv.ParseFloat(strings.TrimSpace(text(src)), 64); err != nil {
				return false
			}
		default:
			return false
		}
		if dst.OverflowFloat(f) {
			return false
		}
		dst.SetFloat(f)
		return true
	case reflect.String:
		if !isText(src) {
			return false
		}
		dst.SetString(text(src))
		return true
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.Uint8 || !isText(src) {
			break
		}
		dst.SetBytes([]byte(text(src)))
		return true
	case reflect.Struct:
		if dst.Type() != timeType || !isText(src) {
			break
		}
		for _, layout := range timeLayouts {
			t, err := time.Parse(layout, text(src))
			if err == nil {
				dst.Set(reflect.ValueOf(t))
				return true
			}
		}
		return false
	}

	// 同一种底层类型, 例如 string 到自定义的 string 类型
	if src.Kind() == dst.Kind() && src.Type().ConvertibleTo(dst.Type()) {
		dst.Set(src.Convert(dst.Type()))
		return true
	}
	return false
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func isText(v reflect.Value) bool {
	return v.Kind() == reflect.String ||
		(v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8)
}

func text(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return string(v.Bytes())
}
