package valuer

import (
	"reflect"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

type bindingValue struct {
	model    *model.Model
	bindings map[string]model.Binding
}

var _ Creator = NewBindingValue

// NewBindingValue 通过记录自己提供的闭包读写字段
func NewBindingValue(m *model.Model, val any) Value {
	res := &bindingValue{model: m}
	if bd, ok := val.(model.Bindable); ok {
		res.bindings = bd.Bindings()
	}
	return res
}

func (b *bindingValue) Field(name string) (any, error) {
	fd, ok := b.model.FieldMap[name]
	if !ok || !fd.Readable {
		return nil, errs.NewErrUnknownField(name)
	}
	return b.bindings[name].Get(), nil
}

func (b *bindingValue) SetField(name string, val any) error {
	fd, ok := b.model.FieldMap[name]
	if !ok {
		return errs.NewErrUnknownField(name)
	}
	if !fd.Writable {
		return errs.NewErrReadOnlyField(name)
	}
	// 先按字段声明的类型转换好, setter 拿到的就是字段本来的类型
	tmp := reflect.New(fd.Type).Elem()
	if err := assign(fd, tmp, val); err != nil {
		return err
	}
	return b.bindings[name].Set(tmp.Interface())
}
