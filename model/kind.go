package model

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"
)

// Kind 是字段在 SQL 层面的语义类型, 决定了字段怎么被编码成字面量
type Kind uint8

const (
	// KindUnsupported 切片, map, chan, func, interface 这些都不参与 INSERT
	KindUnsupported Kind = iota
	KindText
	KindTime
	KindBool
	KindNullBool
	KindEnum
	KindNumeric
	// KindValue 其它值类型, 例如结构体, 数组(uuid.UUID), driver.Valuer 的实现
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTime:
		return "time"
	case KindBool:
		return "bool"
	case KindNullBool:
		return "nullable bool"
	case KindEnum:
		return "enum"
	case KindNumeric:
		return "numeric"
	case KindValue:
		return "value"
	default:
		return "unsupported"
	}
}

// Eligible 能否出现在 INSERT 语句里
func (k Kind) Eligible() bool {
	return k != KindUnsupported
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	nullBoolType = reflect.TypeOf(sql.NullBool{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// KindOf 推断类型的语义类型
// 指针类型取它指向的类型的语义, *bool 是可空的布尔值
func KindOf(typ reflect.Type) Kind {
	if typ.Kind() == reflect.Pointer {
		elem := typ.Elem()
		switch elem.Kind() {
		case reflect.Bool:
			return KindNullBool
		case reflect.Pointer:
			// 多级指针不支持
			return KindUnsupported
		case reflect.Struct, reflect.Array:
			// 指向普通结构体的指针是引用, 不是值, 不参与 INSERT
			if elem != timeType && elem != nullBoolType && !typ.Implements(valuerType) {
				return KindUnsupported
			}
		}
		return KindOf(elem)
	}

	switch typ {
	case timeType:
		return KindTime
	case nullBoolType:
		return KindNullBool
	}

	switch typ.Kind() {
	case reflect.String:
		return KindText
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// Go 没有枚举, 我们把实现了 fmt.Stringer 的自定义整数类型当成枚举
		// stringer 生成的代码就是这个形态
		if typ.PkgPath() != "" && typ.Implements(stringerType) {
			return KindEnum
		}
		return KindNumeric
	case reflect.Float32, reflect.Float64:
		return KindNumeric
	case reflect.Struct, reflect.Array:
		return KindValue
	default:
		return KindUnsupported
	}
}
