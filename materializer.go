package sqlmap

import (
	"github.com/startdusk/sqlmap/model"
)

// Materialize 把游标遍历完, 每一行构造一个新的 T
// 列只在遍历之前读一次, 所有行共用; 没有数据返回空切片
func Materialize[T any](cur Cursor, opts ...MapperOption) ([]*T, error) {
	o := newMapperOptions(opts)
	m, err := o.r.Get(new(T))
	if err != nil {
		return nil, err
	}
	return materialize[T](cur, m, o)
}

func materialize[T any](cur Cursor, m *model.Model, o mapperOptions) ([]*T, error) {
	columns, err := cur.Columns()
	if err != nil {
		return nil, err
	}
	res := make([]*T, 0, 8)
	for cur.Next() {
		entity := new(T)
		if _, err = newMapper(entity, m, o).MapRow(cur, columns); err != nil {
			return nil, err
		}
		res = append(res, entity)
	}
	if err = cur.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// DataQuery 持有一个游标, GetAll 会把它消费掉
type DataQuery[T any] struct {
	cur  Cursor
	opts []MapperOption
}

func NewDataQuery[T any](cur Cursor, opts ...MapperOption) *DataQuery[T] {
	return &DataQuery[T]{
		cur:  cur,
		opts: opts,
	}
}

func (q *DataQuery[T]) GetAll() ([]*T, error) {
	return Materialize[T](q.cur, q.opts...)
}
