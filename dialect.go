package sqlmap

var (
	DialectStandard   Dialect = standardSQL{}
	DialectMySQL      Dialect = mysqlDialect{}
	DialectPostgreSQL Dialect = postgreDialect{}
	DialectSQLite     Dialect = sqliteDialect{}
)

// Dialect 决定标识符的引号和时间字面量的格式
// 时间格式固定下来, 不受运行环境的 locale 影响
type Dialect interface {
	// quoter 返回 0 表示不给表名和列名加引号
	// MySQL 反引号 `
	// PostgreSQL 是双引号
	quoter() byte

	timeLayout() string
}

type standardSQL struct{}

func (d standardSQL) quoter() byte {
	return 0
}

func (d standardSQL) timeLayout() string {
	return "2006-01-02 15:04:05.999999999"
}

type mysqlDialect struct {
	standardSQL
}

func (d mysqlDialect) quoter() byte {
	return '`'
}

// DATETIME(6) 最多到微秒
func (d mysqlDialect) timeLayout() string {
	return "2006-01-02 15:04:05.999999"
}

type sqliteDialect struct {
	standardSQL
}

func (d sqliteDialect) quoter() byte {
	return '`'
}

// go-sqlite3 读取 DATETIME 列时第一个尝试的格式
func (d sqliteDialect) timeLayout() string {
	return "2006-01-02 15:04:05.999999999-07:00"
}

type postgreDialect struct {
	standardSQL
}

func (d postgreDialect) quoter() byte {
	return '"'
}

func (d postgreDialect) timeLayout() string {
	return "2006-01-02 15:04:05.999999-07:00"
}
