package querylog

import (
	"context"
	"log"

	"github.com/startdusk/sqlmap"
)

type MiddlewareBuilder struct {
	// INSERT 语句的值是以字面量嵌在 SQL 里的, 敏感数据也会被打印出来
	logFunc func(query string, args []any)
}

// NewMiddlewareBuilder fn 为 nil 的时候用标准库 log 输出
func NewMiddlewareBuilder(fn func(query string, args []any)) *MiddlewareBuilder {
	if fn == nil {
		fn = func(query string, args []any) {
			log.Printf("sql: %s args: %v", query, args)
		}
	}
	return &MiddlewareBuilder{
		logFunc: fn,
	}
}

func (m MiddlewareBuilder) Build() sqlmap.Middleware {
	return func(next sqlmap.Handler) sqlmap.Handler {
		return func(ctx context.Context, qc *sqlmap.QueryContext) *sqlmap.QueryResult {
			q, err := qc.Builder.Build()
			if err != nil {
				return &sqlmap.QueryResult{
					Err: err,
				}
			}
			m.logFunc(q.SQL, q.Args)
			return next(ctx, qc)
		}
	}
}
