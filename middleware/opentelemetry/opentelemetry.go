package opentelemetry

import (
	"context"
	"fmt"

	"github.com/startdusk/sqlmap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/startdusk/sqlmap/middleware/opentelemetry"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m MiddlewareBuilder) Build() sqlmap.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next sqlmap.Handler) sqlmap.Handler {
		return func(ctx context.Context, qc *sqlmap.QueryContext) *sqlmap.QueryResult {
			var tableName string
			if qc.Model != nil {
				tableName = qc.Model.TableName
			}
			// span name: INSERT-TABLE_NAME
			spanCtx, span := m.Tracer.Start(ctx, fmt.Sprintf("%s-%s", qc.Type, tableName))
			defer span.End()

			q, _ := qc.Builder.Build()
			if q != nil {
				// INSERT 的值都在 SQL 文本里, 只记录长度, 防止数据过大和敏感数据被记录到tracing
				span.SetAttributes(attribute.Int("sql.length", len(q.SQL)))
			}
			span.SetAttributes(attribute.String("table", tableName))
			span.SetAttributes(attribute.String("component", "sqlmap"))

			res := next(spanCtx, qc)
			if res.Err != nil {
				span.RecordError(res.Err)
			}
			return res
		}
	}
}
