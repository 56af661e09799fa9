package sqlmap

import (
	"github.com/startdusk/sqlmap/internal/errs"
)

// 通过桥接的方式将内部错误导出外部
var (
	ErrNoRows         = errs.ErrNoRows
	ErrPointerOnly    = errs.ErrPointerOnly
	ErrInsertZeroRows = errs.ErrInsertZeroRows
	ErrNilRecord      = errs.ErrNilRecord
	ErrNoCurrentRow   = errs.ErrNoCurrentRow
)
