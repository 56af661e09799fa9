package testdata

import (
	"database/sql"
	"time"
)

type Base struct {
	ID      int64 `orm:"identity=true"`
	Created time.Time
}

type User struct {
	Base
	Name     string
	Age      *int
	NickName *sql.NullString
	Picture  []byte
	Password string `orm:"column=-"`
	password string
	// 外层的字段覆盖嵌入的
	Created string
}

type UserDetail struct {
	*User
	Address    string
	Tags, Nick string
}

type Status int

type Page[T any] struct {
	Items []T
}

func (u User) Display() string {
	type local struct {
		Name string
	}
	return local{Name: u.Name}.Name
}
