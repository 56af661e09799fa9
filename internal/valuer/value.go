package valuer

import (
	"github.com/startdusk/sqlmap/model"
)

// Value 是对结构体实例的内部抽象
type Value interface {
	// Field 返回字段对应的值
	Field(name string) (any, error)
	// SetField 设置字段的值, nil 代表 NULL
	SetField(name string, val any) error
}

type Creator func(model *model.Model, entity any) Value

type dbNull struct{}

func (dbNull) String() string {
	return "DBNull"
}

// Null 返回行数据里 NULL 的哨兵值
func Null() any {
	return dbNull{}
}

// IsNull 按类型判断, 和外面持有的哨兵变量当前的值无关
func IsNull(val any) bool {
	if val == nil {
		return true
	}
	_, ok := val.(dbNull)
	return ok
}

// Resolve 记录实现了 model.Bindable 就用闭包, 否则用 fallback
func Resolve(fallback Creator) Creator {
	return func(m *model.Model, entity any) Value {
		if _, ok := entity.(model.Bindable); ok && m.Bindable {
			return NewBindingValue(m, entity)
		}
		return fallback(m, entity)
	}
}
