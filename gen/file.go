package gen

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

type SingleFileVisitor struct {
	file *FileVisitor
}

func (spv *SingleFileVisitor) Get() *File {
	if spv.file == nil {
		return &File{}
	}
	types := make([]Type, 0, len(spv.file.types))
	for _, typ := range spv.file.types {
		types = append(types, Type{
			Name:     typ.name,
			Receiver: receiver(typ.name),
			Fields:   spv.file.resolve(typ),
		})
	}
	return &File{
		Package: spv.file.Package,
		Types:   types,
	}
}

var _ ast.Visitor = &SingleFileVisitor{}

func (spv *SingleFileVisitor) Visit(node ast.Node) ast.Visitor {
	fn, ok := node.(*ast.File)
	if !ok {
		// 不是我们要的文件节点
		return spv
	}

	fv := &FileVisitor{
		// 用对象保存go文件包名
		Package: fn.Name.String(),
	}
	spv.file = fv
	return fv
}

type FileVisitor struct {
	Package string
	types   []*TypeVisitor
}

var _ ast.Visitor = &FileVisitor{}

func (fv *FileVisitor) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case *ast.FuncDecl:
		// 函数体里面定义的类型不处理
		return nil
	case *ast.TypeSpec:
		st, ok := n.Type.(*ast.StructType)
		// 泛型结构体没办法生成方法
		if !ok || (n.TypeParams != nil && len(n.TypeParams.List) > 0) {
			return nil
		}
		v := &TypeVisitor{name: n.Name.String()}
		fv.types = append(fv.types, v)
		return v.walk(st)
	}
	return fv
}

// resolve 按嵌入深度展开同一个文件里的嵌入结构体, 浅的字段胜出
// 同一层出现两次的字段名是有歧义的, 跳过
func (fv *FileVisitor) resolve(tv *TypeVisitor) []Field {
	structs := make(map[string]*TypeVisitor, len(fv.types))
	for _, t := range fv.types {
		structs[t.name] = t
	}

	seen := make(map[string]bool, len(tv.fields))
	res := make([]Field, 0, len(tv.fields))
	level := []*TypeVisitor{tv}
	for depth := 0; len(level) > 0 && depth < maxDepth; depth++ {
		count := make(map[string]int)
		for _, t := range level {
			for _, f := range t.fields {
				count[f.Name]++
			}
			for _, e := range t.embedded {
				count[e]++
			}
		}
		var next []*TypeVisitor
		for _, t := range level {
			for _, f := range t.fields {
				if f.skip || seen[f.Name] || count[f.Name] > 1 {
					continue
				}
				res = append(res, f)
			}
			for _, e := range t.embedded {
				if et, ok := structs[e]; ok && !seen[e] {
					next = append(next, et)
				}
			}
		}
		for name := range count {
			seen[name] = true
		}
		level = next
	}
	return res
}

const maxDepth = 8

type TypeVisitor struct {
	name   string
	fields []Field
	// 嵌入的非指针结构体的类型名
	embedded []string
}

var _ ast.Visitor = &TypeVisitor{}

// walk 只看结构体最外层的字段, 字段类型里的匿名结构体不展开
func (tv *TypeVisitor) walk(st *ast.StructType) ast.Visitor {
	if st.Fields == nil {
		return nil
	}
	for _, n := range st.Fields.List {
		tv.Visit(n)
	}
	return nil
}

func (tv *TypeVisitor) Visit(node ast.Node) ast.Visitor {
	n, ok := node.(*ast.Field)
	if !ok {
		return tv
	}
	if len(n.Names) == 0 {
		// 嵌入字段, 只有本文件里的非指针结构体能展开
		if id, ok := n.Type.(*ast.Ident); ok {
			tv.embedded = append(tv.embedded, id.String())
		}
		return nil
	}
	skip := ignored(n.Tag)
	for _, name := range n.Names {
		if !name.IsExported() {
			continue
		}
		tv.fields = append(tv.fields, Field{
			Name: name.String(),
			skip: skip,
		})
	}
	return nil
}

// ignored 解析 `orm:"column=-"`, 和 model 的规则保持一致
func ignored(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return false
	}
	ormTag, ok := reflect.StructTag(raw).Lookup("orm")
	if !ok {
		return false
	}
	for _, pair := range strings.Split(ormTag, ",") {
		segs := strings.SplitN(pair, "=", 2)
		if len(segs) == 2 && segs[0] == "column" && segs[1] == "-" {
			return true
		}
	}
	return false
}

func receiver(typeName string) string {
	for _, r := range typeName {
		return string(unicode.ToLower(r))
	}
	return "t"
}

type File struct {
	Package string
	Types   []Type
}

type Type struct {
	Name     string
	Receiver string
	Fields   []Field
}

type Field struct {
	Name string
	// 标记了 column=- 的字段, 不生成, 但是会遮蔽嵌入结构体里的同名字段
	skip bool
}
