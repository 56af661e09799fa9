package valuer

import (
	"reflect"
	"sort"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/model"
)

// Member 映射来源对象上一个可读的成员
type Member struct {
	Name  string
	Value any
}

// Members 遍历来源对象的可读成员
// 支持结构体, 结构体指针(多级也可以), map[string]any 和 model.Bindable
func Members(src any) ([]Member, error) {
	if src == nil {
		return nil, errs.NewErrUnsupportedSource(src)
	}
	if bd, ok := src.(model.Bindable); ok {
		bindings := bd.Bindings()
		names := make([]string, 0, len(bindings))
		for name, b := range bindings {
			if b.Get != nil {
				names = append(names, name)
			}
		}
		// map 的遍历是无序的
		sort.Strings(names)
		res := make([]Member, 0, len(names))
		for _, name := range names {
			res = append(res, Member{Name: name, Value: bindings[name].Get()})
		}
		return res, nil
	}
	if m, ok := src.(map[string]any); ok {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		res := make([]Member, 0, len(names))
		for _, name := range names {
			res = append(res, Member{Name: name, Value: m[name]})
		}
		return res, nil
	}

	typ := reflect.TypeOf(src)
	val := reflect.ValueOf(src)
	// 反射层面上的解引用, &user 和 &&user 都拿到 user
	for typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, errs.NewErrUnsupportedSource(src)
		}
		typ = typ.Elem()
		val = val.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, errs.NewErrUnsupportedSource(src)
	}

	fields := reflect.VisibleFields(typ)
	res := make([]Member, 0, len(fields))
	for _, fd := range fields {
		if !fd.IsExported() || !flattened(typ, fd.Index[:len(fd.Index)-1]) {
			continue
		}
		// 和元数据一致: 嵌入的普通结构体展开, time.Time 这种值结构体本身就是一个成员
		if fd.Anonymous && fd.Type.Kind() == reflect.Struct && !model.IsValueStruct(fd.Type) {
			continue
		}
		res = append(res, Member{Name: fd.Name, Value: val.FieldByIndex(fd.Index).Interface()})
	}
	return res, nil
}

// flattened 判断 path 上的每一个嵌入字段是否都会被元数据展开
// 通过嵌入指针或者值结构体提升上来的字段不算
func flattened(typ reflect.Type, path []int) bool {
	for _, i := range path {
		fd := typ.Field(i)
		if fd.Type.Kind() != reflect.Struct || model.IsValueStruct(fd.Type) {
			return false
		}
		typ = fd.Type
	}
	return true
}
