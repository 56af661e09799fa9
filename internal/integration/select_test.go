//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/startdusk/sqlmap"
	"github.com/startdusk/sqlmap/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMySQLSelect(t *testing.T) {
	suite.Run(t, &SelectSuite{
		Suite{
			driver: "mysql",
			dsn:    mysqlDSN,
		},
	})
}

type SelectSuite struct {
	Suite
}

func (s *SelectSuite) SetupSuite() {
	s.Suite.SetupSuite()
	sqlmap.RawQuery[test.Person](s.db, "TRUNCATE TABLE `Person`").Exec(context.Background())
	res := sqlmap.NewInserter[test.Person](s.db).
		Values(test.NewPerson(103, "Tom"), test.NewPerson(104, "Jerry")).
		CopyIdentity().
		Exec(context.Background())
	require.NoError(s.T(), res.Err())
}

func (s *SelectSuite) TestGet() {
	db := s.db
	cases := []struct {
		name    string
		q       *sqlmap.RawQuerier[test.Person]
		wantRes *test.Person
		wantErr error
	}{
		{
			name:    "get data",
			q:       sqlmap.RawQuery[test.Person](db, "SELECT * FROM `Person` WHERE `Id` = ?", 103),
			wantRes: test.NewPerson(103, "Tom"),
		},
		{
			name:    "no rows",
			q:       sqlmap.RawQuery[test.Person](db, "SELECT * FROM `Person` WHERE `Id` = ?", 1002),
			wantErr: sqlmap.ErrNoRows,
		},
	}

	for _, c := range cases {
		s.T().Run(c.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			res, err := c.q.Get(ctx)
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.True(t, c.wantRes.BirthDate.Equal(res.BirthDate))
			res.BirthDate = c.wantRes.BirthDate
			assert.Equal(t, c.wantRes, res)
		})
	}
}

func (s *SelectSuite) TestGetMulti() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := sqlmap.RawQuery[test.Person](s.db, "SELECT `Id`, `FirstName` FROM `Person` ORDER BY `Id`").GetMulti(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []*test.Person{
		{Id: 103, FirstName: "Tom"},
		{Id: 104, FirstName: "Jerry"},
	}, res)

	res, err = sqlmap.RawQuery[test.Person](s.db, "SELECT * FROM `Person` WHERE `Id` < 0").GetMulti(ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), res)
}
