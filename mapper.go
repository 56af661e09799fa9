package sqlmap

import (
	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/internal/valuer"
	"github.com/startdusk/sqlmap/model"
)

// UnknownColumnPolicy 决定目标结构体上找不到(或者不可写)的列怎么处理
type UnknownColumnPolicy uint8

const (
	// IgnoreUnknown 直接跳过, 允许结构体的字段和结果集的列不完全一致
	IgnoreUnknown UnknownColumnPolicy = iota
	// FailOnUnknown 返回 errs.NewErrUnknownColumn
	FailOnUnknown
)

type mapperOptions struct {
	r         model.Registry
	creator   valuer.Creator
	onUnknown UnknownColumnPolicy
}

type MapperOption func(o *mapperOptions)

func MapperWithUnknownColumn(policy UnknownColumnPolicy) MapperOption {
	return func(o *mapperOptions) {
		o.onUnknown = policy
	}
}

func MapperWithRegistry(r model.Registry) MapperOption {
	return func(o *mapperOptions) {
		o.r = r
	}
}

func MapperUseReflect() MapperOption {
	return func(o *mapperOptions) {
		o.creator = valuer.Resolve(valuer.NewReflectValue)
	}
}

func newMapperOptions(opts []MapperOption) mapperOptions {
	o := mapperOptions{
		creator: valuer.Resolve(valuer.NewUnsafeValue),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.r == nil {
		o.r = model.NewRegistry()
	}
	return o
}

// Mapper 把行数据或者别的对象写到 target 上
// 直接修改 target, 不是拷贝, 所以同一个 Mapper 不能并发使用
type Mapper[T any] struct {
	target    *T
	model     *model.Model
	val       valuer.Value
	onUnknown UnknownColumnPolicy
}

func NewMapper[T any](target *T, opts ...MapperOption) (*Mapper[T], error) {
	if target == nil {
		return nil, errs.ErrNilRecord
	}
	o := newMapperOptions(opts)
	m, err := o.r.Get(target)
	if err != nil {
		return nil, err
	}
	return newMapper(target, m, o), nil
}

func newMapper[T any](target *T, m *model.Model, o mapperOptions) *Mapper[T] {
	return &Mapper[T]{
		target:    target,
		model:     m,
		val:       o.creator(m, target),
		onUnknown: o.onUnknown,
	}
}

// MapRow 按 columns 逐列把 row 的值写到同名(大小写敏感)的可写字段上
// 行里的 NULL(nil 或者 DBNull) 写成零值
func (m *Mapper[T]) MapRow(row Row, columns []string) (*T, error) {
	for _, col := range columns {
		fd, ok := m.writable(m.model.ColumnMap[col])
		if !ok {
			if m.onUnknown == FailOnUnknown {
				return nil, errs.NewErrUnknownColumn(col)
			}
			continue
		}
		val, err := row.Value(col)
		if err != nil {
			return nil, err
		}
		if valuer.IsNull(val) {
			val = nil
		}
		if err = m.val.SetField(fd.GoName, val); err != nil {
			return nil, err
		}
	}
	return m.target, nil
}

// MapObject 把 src 可读的成员按名字拷贝到 target 上
// src 不是行数据, 值原样拷贝, 不处理 DBNull
func (m *Mapper[T]) MapObject(src any) (*T, error) {
	members, err := valuer.Members(src)
	if err != nil {
		return nil, err
	}
	for _, mb := range members {
		fd, ok := m.writable(m.model.FieldMap[mb.Name])
		if !ok {
			if m.onUnknown == FailOnUnknown {
				return nil, errs.NewErrUnknownField(mb.Name)
			}
			continue
		}
		if err = m.val.SetField(fd.GoName, mb.Value); err != nil {
			return nil, err
		}
	}
	return m.target, nil
}

func (m *Mapper[T]) writable(fd *model.Field) (*model.Field, bool) {
	if fd == nil || !fd.Writable {
		return nil, false
	}
	return fd, true
}
