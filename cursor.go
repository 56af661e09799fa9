package sqlmap

import (
	"database/sql"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/internal/valuer"
)

// DBNull 是 Table 里 NULL 的哨兵值, 映射的时候和 nil 一样被当成 NULL
// 只用来构造和比较, 不要重新赋值; Table 和映射都不依赖这个变量
var DBNull = valuer.Null()

//go:generate mockgen -source=cursor.go -destination=mocks/cursor.mock.go -package=mocks

// Row 是结果集当前行的句柄
type Row interface {
	Value(column string) (any, error)
}

// Cursor 只能向前遍历一次的结果集
type Cursor interface {
	Row
	// Columns 结果集的列, 遍历之前就可以调用
	Columns() ([]string, error)
	Next() bool
	// Err 遍历结束之后检查是否出错
	Err() error
}

var (
	_ Cursor = &RowsCursor{}
	_ Cursor = &Table{}
)

// RowsCursor 把 *sql.Rows 包装成 Cursor
// 每次 Next 把整行读到 []any 里, NULL 读出来就是 nil
type RowsCursor struct {
	rows    *sql.Rows
	columns []string
	index   map[string]int
	current []any
	err     error
}

func NewRowsCursor(rows *sql.Rows) *RowsCursor {
	return &RowsCursor{rows: rows}
}

func (c *RowsCursor) Columns() ([]string, error) {
	if c.columns != nil {
		return c.columns, nil
	}
	cols, err := c.rows.Columns()
	if err != nil {
		return nil, err
	}
	c.columns = cols
	c.index = columnIndex(cols)
	return c.columns, nil
}

func (c *RowsCursor) Next() bool {
	c.current = nil
	if c.err != nil || !c.rows.Next() {
		return false
	}
	if _, err := c.Columns(); err != nil {
		c.err = err
		return false
	}
	vals := make([]any, len(c.columns))
	dest := make([]any, len(c.columns))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		c.err = err
		return false
	}
	c.current = vals
	return true
}

func (c *RowsCursor) Value(column string) (any, error) {
	if c.current == nil {
		return nil, errs.ErrNoCurrentRow
	}
	i, ok := c.index[column]
	if !ok {
		return nil, errs.NewErrUnknownColumn(column)
	}
	return c.current[i], nil
}

func (c *RowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *RowsCursor) Close() error {
	return c.rows.Close()
}

// Table 内存里的结果集, 行里缺少的列按 DBNull 处理
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
	pos     int
}

func NewTable(columns []string, rows ...[]any) *Table {
	return &Table{
		columns: columns,
		index:   columnIndex(columns),
		rows:    rows,
		pos:     -1,
	}
}

func (t *Table) Columns() ([]string, error) {
	return t.columns, nil
}

func (t *Table) Next() bool {
	if t.pos < len(t.rows) {
		t.pos++
	}
	return t.pos < len(t.rows)
}

func (t *Table) Value(column string) (any, error) {
	if t.pos < 0 || t.pos >= len(t.rows) {
		return nil, errs.ErrNoCurrentRow
	}
	i, ok := t.index[column]
	if !ok {
		return nil, errs.NewErrUnknownColumn(column)
	}
	row := t.rows[t.pos]
	if i >= len(row) {
		return valuer.Null(), nil
	}
	return row[i], nil
}

func (t *Table) Err() error {
	return nil
}

// 同名的列只认第一个
func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col]; !ok {
			index[col] = i
		}
	}
	return index
}
