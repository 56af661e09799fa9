package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPointerOnly    = errors.New("sqlmap: 只支持指向结构体的一级指针")
	ErrNoRows         = errors.New("sqlmap: 没有数据")
	ErrInsertZeroRows = errors.New("sqlmap: 插入0行数据")
	ErrNilRecord      = errors.New("sqlmap: 记录不能是 nil")
	ErrNoCurrentRow   = errors.New("sqlmap: 游标没有指向任何行")
)

func NewErrUnknownField(name string) error {
	return fmt.Errorf("sqlmap: 未知字段 %s", name)
}

func NewErrUnknownColumn(name string) error {
	return fmt.Errorf("sqlmap: 未知数据库列名 %s", name)
}

func NewErrReadOnlyField(name string) error {
	return fmt.Errorf("sqlmap: 字段 %s 不可写", name)
}

func NewErrInvalidTagContent(pair string) error {
	return fmt.Errorf("sqlmap: 非法标签值 %s", pair)
}

func NewErrIncompatibleType(field string, val any, target string) error {
	return fmt.Errorf("sqlmap: 字段 %s 无法接收 %T 类型的值 %v, 目标类型 %s", field, val, val, target)
}

func NewErrUnsupportedValue(field string, val any) error {
	return fmt.Errorf("sqlmap: 字段 %s 的值 %v 无法转成 SQL 字面量", field, val)
}

func NewErrUnsupportedSource(src any) error {
	return fmt.Errorf("sqlmap: 不支持的映射来源 %T", src)
}
