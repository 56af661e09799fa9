package sqlmap

import (
	"context"
)

// Querier 用于查询, 结果映射成 T
type Querier[T any] interface {
	Get(ctx context.Context) (*T, error)
	GetMulti(ctx context.Context) ([]*T, error)
}

// Executor 用于 `INSERT` 这类不返回结果集的语句
type Executor interface {
	Exec(ctx context.Context) Result
}

type QueryBuilder interface {
	Build() (*Query, error)
}

// Query INSERT 语句的值已经以字面量嵌进 SQL 里了, 所以它的 Args 总是空的
type Query struct {
	SQL  string
	Args []any
}
