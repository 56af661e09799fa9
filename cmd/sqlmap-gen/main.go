// sqlmap-gen 为源文件里的结构体生成 Bindings 方法, 输出到同目录下的 <name>.gen.go
//
//	//go:generate go run github.com/startdusk/sqlmap/cmd/sqlmap-gen user.go
package main

import (
	"fmt"
	"os"

	"github.com/startdusk/sqlmap/gen"
)

func main() {
	// 用户必须输入一个 src, 限制为文件
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: sqlmap-gen <file.go>")
		os.Exit(2)
	}
	if err := genFile(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func genFile(src string) error {
	dst := gen.Dst(src)
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err = gen.Gen(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return err
	}
	return f.Close()
}
