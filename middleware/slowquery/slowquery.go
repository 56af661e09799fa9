package slowquery

import (
	"context"
	"log"
	"time"

	"github.com/startdusk/sqlmap"
)

type MiddlewareBuilder struct {
	logFunc func(query string, args []any, duration time.Duration)

	// 慢查询阈值, 设置需要考虑实际情况, 如100ms
	threshold time.Duration
}

func NewMiddlewareBuilder(threshold time.Duration, fn func(query string, args []any, duration time.Duration)) *MiddlewareBuilder {
	if fn == nil {
		fn = func(query string, args []any, duration time.Duration) {
			log.Printf("slow sql(%s): %s args: %v", duration, query, args)
		}
	}
	return &MiddlewareBuilder{
		logFunc:   fn,
		threshold: threshold,
	}
}

func (m MiddlewareBuilder) Build() sqlmap.Middleware {
	return func(next sqlmap.Handler) sqlmap.Handler {
		return func(ctx context.Context, qc *sqlmap.QueryContext) *sqlmap.QueryResult {
			startTime := time.Now()
			defer func() {
				duration := time.Since(startTime)
				// 不是慢查询
				if duration <= m.threshold {
					return
				}

				// 是慢查询, 记录一下, 不处理错误(如果错误了, 证明SQL都没构造出来)
				q, err := qc.Builder.Build()
				if err == nil {
					m.logFunc(q.SQL, q.Args, duration)
				}
			}()

			return next(ctx, qc)
		}
	}
}
