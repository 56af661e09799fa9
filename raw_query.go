package sqlmap

import (
	"context"
)

var _ Querier[any] = &RawQuerier[any]{}

// RawQuerier 执行用户自己写的 SQL, 结果映射成 T
type RawQuerier[T any] struct {
	core
	sess Session
	sql  string
	args []any
}

func RawQuery[T any](sess Session, query string, args ...any) *RawQuerier[T] {
	return &RawQuerier[T]{
		sql:  query,
		args: args,
		sess: sess,
		core: sess.getCore(),
	}
}

func (r *RawQuerier[T]) Build() (*Query, error) {
	return &Query{
		SQL:  r.sql,
		Args: r.args,
	}, nil
}

func (r *RawQuerier[T]) queryContext() (*QueryContext, error) {
	m, err := r.r.Get(new(T))
	if err != nil {
		return nil, err
	}
	return &QueryContext{
		Type:    "RAW",
		Builder: r,
		Model:   m,
	}, nil
}

// Get 只取第一行, 没有数据返回 ErrNoRows
func (r *RawQuerier[T]) Get(ctx context.Context) (*T, error) {
	qc, err := r.queryContext()
	if err != nil {
		return nil, err
	}
	res := get[T](ctx, r.sess, r.core, qc)
	var t *T
	if val, ok := res.Result.(*T); ok {
		t = val
	}
	return t, res.Err
}

// GetMulti 把结果集全部读出来, 没有数据返回空切片
func (r *RawQuerier[T]) GetMulti(ctx context.Context) ([]*T, error) {
	qc, err := r.queryContext()
	if err != nil {
		return nil, err
	}
	res := getMulti[T](ctx, r.sess, r.core, qc)
	var ts []*T
	if val, ok := res.Result.([]*T); ok {
		ts = val
	}
	return ts, res.Err
}

func (r *RawQuerier[T]) Exec(ctx context.Context) Result {
	var result Result
	qc, err := r.queryContext()
	if err != nil {
		result.err = err
		return result
	}
	res := exec(ctx, r.sess, r.core, qc)
	if val, ok := res.Result.(Result); ok && val.res != nil {
		result.res = val.res
	}
	result.err = res.Err
	return result
}
