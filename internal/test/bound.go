package test

import (
	"github.com/google/uuid"
)

//go:generate go run github.com/startdusk/sqlmap/cmd/sqlmap-gen bound.go

// BoundPerson 的 Bindings 方法由 sqlmap-gen 生成, 见 bound.gen.go
type BoundPerson struct {
	Id         int64 `orm:"identity=true"`
	FirstName  string
	Age        int
	Active     bool
	Gender     Gender
	ExternalID uuid.UUID
	// 不是列
	Note string `orm:"column=-"`
}
