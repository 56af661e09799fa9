package valuer

import (
	"reflect"
	"unsafe"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

type unsafeValue struct {
	model *model.Model

	// 结构体的起始地址
	address unsafe.Pointer
}

// 确保类型变更 我们能得到通知
var _ Creator = NewUnsafeValue

func NewUnsafeValue(model *model.Model, val any) Value {
	return unsafeValue{
		model: model,
		// UnsafePointer 是 Go 层面的指针, GC 移动对象之后依旧有效
		address: reflect.ValueOf(val).UnsafePointer(),
	}
}

func (u unsafeValue) fieldAt(fd *model.Field) reflect.Value {
	// 字段地址 = 起始地址 + 偏移量
	fdAddress := unsafe.Pointer(uintptr(u.address) + fd.Offset)
	// 在特定的地址上, 创建一个特定类型的实例
	return reflect.NewAt(fd.Type, fdAddress).Elem()
}

func (u unsafeValue) Field(name string) (any, error) {
	fd, ok := u.model.FieldMap[name]
	if !ok {
		return nil, errs.NewErrUnknownField(name)
	}
	return u.fieldAt(fd).Interface(), nil
}

func (u unsafeValue) SetField(name string, val any) error {
	fd, ok := u.model.FieldMap[name]
	if !ok {
		return errs.NewErrUnknownField(name)
	}
	if !fd.Writable {
		return errs.NewErrReadOnlyField(name)
	}
	return assign(fd, u.fieldAt(fd), val)
}
