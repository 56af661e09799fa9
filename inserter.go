package sqlmap

import (
	"context"

	"github.com/startdusk/sqlmap/internal/errs"
)

var _ Executor = &Inserter[any]{}

// Inserter 用 Serializer 生成 INSERT 语句, 再交给 Session 执行
type Inserter[T any] struct {
	core

	// INSERT 语句要插入的值的结构体的列表
	values []*T

	tableName    string
	copyIdentity bool

	sess Session
}

func NewInserter[T any](sess Session) *Inserter[T] {
	return &Inserter[T]{
		core: sess.getCore(),
		sess: sess,
	}
}

// Values 指定插入的数据
func (i *Inserter[T]) Values(vals ...*T) *Inserter[T] {
	i.values = vals
	return i
}

// Table 覆盖元数据里的表名
func (i *Inserter[T]) Table(name string) *Inserter[T] {
	i.tableName = name
	return i
}

// CopyIdentity identity 字段也插入
func (i *Inserter[T]) CopyIdentity() *Inserter[T] {
	i.copyIdentity = true
	return i
}

func (i *Inserter[T]) Build() (*Query, error) {
	if len(i.values) == 0 {
		return nil, errs.ErrInsertZeroRows
	}
	s, err := newSerializer[T](serializerOptions{
		r:            i.r,
		dialect:      i.dialect,
		creator:      i.creator,
		tableName:    i.tableName,
		copyIdentity: i.copyIdentity,
	})
	if err != nil {
		return nil, err
	}
	text, err := s.SerializeInsert(i.values...)
	if err != nil {
		return nil, err
	}
	return &Query{
		SQL: text,
	}, nil
}

func (i *Inserter[T]) Exec(ctx context.Context) Result {
	var result Result
	m, err := i.r.Get(new(T))
	if err != nil {
		result.err = err
		return result
	}

	res := exec(ctx, i.sess, i.core, &QueryContext{
		Type:    "INSERT",
		Builder: i,
		Model:   m,
	})
	if val, ok := res.Result.(Result); ok && val.res != nil {
		result.res = val.res
	}
	result.err = res.Err
	return result
}
