//go:build integration

package integration

import (
	"context"

	"github.com/startdusk/sqlmap"
	"github.com/startdusk/sqlmap/internal/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type Suite struct {
	suite.Suite

	driver string
	dsn    string

	db *sqlmap.DB
}

func (s *Suite) SetupSuite() {
	db, err := sqlmap.Open(s.driver, s.dsn, sqlmap.DBWithDialect(sqlmap.DialectMySQL))
	require.NoError(s.T(), err)
	s.db = db
	res := sqlmap.RawQuery[test.Person](s.db, test.PersonDDL(s.driver)).Exec(context.Background())
	require.NoError(s.T(), res.Err())
}

func (s *Suite) TearDownSuite() {
	_ = s.db.Close()
}

// 多条 INSERT 语句一次执行, 需要打开 multiStatements
const mysqlDSN = "root:root@tcp(localhost:13306)/integration_test?multiStatements=true"

type count struct {
	Cnt int64
}

func (s *Suite) count() int64 {
	res, err := sqlmap.RawQuery[count](s.db, "SELECT COUNT(*) AS `Cnt` FROM `Person`").Get(context.Background())
	require.NoError(s.T(), err)
	return res.Cnt
}
