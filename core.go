package sqlmap

import (
	"context"
	"database/sql"

	"github.com/startdusk/sqlmap/internal/valuer"
	"github.com/startdusk/sqlmap/model"
)

type core struct {
	r       model.Registry
	dialect Dialect
	creator valuer.Creator

	mdls []Middleware
}

// Session 是执行 SQL 文本的通道
type Session interface {
	getCore() core
	queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	execContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (c core) mapperOptions() mapperOptions {
	return mapperOptions{
		r:         c.r,
		creator:   c.creator,
		onUnknown: IgnoreUnknown,
	}
}

// chain 从后往前包装, 第一个 middleware 最先执行
func (c core) chain(root Handler) Handler {
	for i := len(c.mdls) - 1; i >= 0; i-- {
		root = c.mdls[i](root)
	}
	return root
}

func get[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	return c.chain(func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getHandler[T](ctx, sess, c, qc)
	})(ctx, qc)
}

func getHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	qr := &QueryResult{}
	q, err := qc.Builder.Build()
	if err != nil {
		qr.Err = err
		return qr
	}
	rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		qr.Err = err
		return qr
	}
	cur := NewRowsCursor(rows)
	defer cur.Close()

	columns, err := cur.Columns()
	if err != nil {
		qr.Err = err
		return qr
	}
	if !cur.Next() {
		qr.Err = cur.Err()
		if qr.Err == nil {
			// 返回要和sql包语义一致
			qr.Err = ErrNoRows
		}
		return qr
	}
	entity := new(T)
	_, qr.Err = newMapper(entity, qc.Model, c.mapperOptions()).MapRow(cur, columns)
	qr.Result = entity
	return qr
}

func getMulti[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	return c.chain(func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getMultiHandler[T](ctx, sess, c, qc)
	})(ctx, qc)
}

func getMultiHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	qr := &QueryResult{}
	q, err := qc.Builder.Build()
	if err != nil {
		qr.Err = err
		return qr
	}
	rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		qr.Err = err
		return qr
	}
	cur := NewRowsCursor(rows)
	defer cur.Close()
	res, err := materialize[T](cur, qc.Model, c.mapperOptions())
	qr.Result = res
	qr.Err = err
	return qr
}

func exec(ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	return c.chain(func(ctx context.Context, qc *QueryContext) *QueryResult {
		return execHandler(ctx, sess, qc)
	})(ctx, qc)
}

func execHandler(ctx context.Context, sess Session, qc *QueryContext) *QueryResult {
	qr := &QueryResult{}
	q, err := qc.Builder.Build()
	if err != nil {
		qr.Err = err
		qr.Result = Result{err: err}
		return qr
	}
	res, err := sess.execContext(ctx, q.SQL, q.Args...)
	qr.Err = err
	qr.Result = Result{res: res, err: err}
	return qr
}
