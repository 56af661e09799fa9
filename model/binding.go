package model

import (
	"reflect"

	"github.com/startdusk/sqlmap/internal/errs"
)

// Binding 是绑定在某一个记录实例上的读写闭包
// Get 为 nil 表示字段不可读, Set 为 nil 表示字段不可写
type Binding struct {
	Get func() any
	Set func(val any) error
}

// Bindable 由愿意自己提供字段访问表的记录实现
// 实现了它的记录, 读写字段的时候走闭包, 不走反射或者 unsafe
// 可以手写, 也可以用 cmd/sqlmap-gen 生成
type Bindable interface {
	Bindings() map[string]Binding
}

// Bind 用字段的地址构造可读写的 Binding, sqlmap-gen 生成的代码就是用它
// Set 收到的值必须已经是字段的类型
func Bind[T any](name string, ptr *T) Binding {
	return Binding{
		Get: func() any {
			return *ptr
		},
		Set: func(val any) error {
			if val == nil {
				var zero T
				*ptr = zero
				return nil
			}
			v, ok := val.(T)
			if !ok {
				return errs.NewErrIncompatibleType(name, val, reflect.TypeOf(ptr).Elem().String())
			}
			*ptr = v
			return nil
		},
	}
}
