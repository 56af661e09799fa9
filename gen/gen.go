// Package gen 为结构体生成 Bindings 方法, 生成的类型实现 model.Bindable,
// 读写字段不再需要反射
package gen

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"path/filepath"
	"strings"

	_ "embed"
	"text/template"
)

//go:embed tpl.gohtml
var genBindings string

var tpl = template.Must(template.New("gen-bindings").Parse(genBindings))

func Gen(w io.Writer, srcFile string) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, srcFile, nil, parser.ParseComments)
	if err != nil {
		return err
	}
	v := &SingleFileVisitor{}
	ast.Walk(v, f)
	file := v.Get()

	b := &bytes.Buffer{}
	if err = tpl.Execute(b, file); err != nil {
		return err
	}
	src, err := format.Source(b.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

// Dst 是 src 同目录下的 <name>.gen.go
func Dst(src string) string {
	fileName := filepath.Base(src)
	if idx := strings.LastIndexByte(fileName, '.'); idx > 0 {
		fileName = fileName[:idx]
	}
	return filepath.Join(filepath.Dir(src), fileName+".gen.go")
}
