package sqlmap

import (
	"context"

	"github.com/startdusk/sqlmap/model"
)

type QueryContext struct {
	// Type 声明语句类型 即 INSERT 和 RAW
	Type string

	// Builder 使用的时候, 大多数情况下你需要转换到具体的类型才能篡改语句
	Builder QueryBuilder

	Model *model.Model
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult

type QueryResult struct {
	// Result 在不同的语句里面, 类型是不同的
	// RawQuerier.Get 里面, 这会是单个结果 *T
	// RawQuerier.GetMulti, 这会是一个切片 []*T
	// 其他情况下, 它是 Result 类型
	Result any
	Err    error
}
