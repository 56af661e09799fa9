package valuer

import (
	"reflect"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

type reflectValue struct {
	model *model.Model

	// val 是泛型 T 的指针指向的结构体
	val reflect.Value
}

// 确保类型变更 我们能得到通知
var _ Creator = NewReflectValue

func NewReflectValue(model *model.Model, val any) Value {
	return reflectValue{
		model: model,
		val:   reflect.ValueOf(val).Elem(),
	}
}

func (r reflectValue) Field(name string) (any, error) {
	fd, ok := r.model.FieldMap[name]
	if !ok {
		return nil, errs.NewErrUnknownField(name)
	}
	return r.val.FieldByIndex(fd.Index).Interface(), nil
}

func (r reflectValue) SetField(name string, val any) error {
	fd, ok := r.model.FieldMap[name]
	if !ok {
		return errs.NewErrUnknownField(name)
	}
	if !fd.Writable {
		return errs.NewErrReadOnlyField(name)
	}
	return assign(fd, r.val.FieldByIndex(fd.Index), val)
}
