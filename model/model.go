package model

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/startdusk/sqlmap/internal/errs"
)

const (
	tagName      = "orm"
	tagColumn    = "column"
	tagIdentity  = "identity"
	tagReadOnly  = "readonly"
	ignoreColumn = "-"
)

// Model 是记录类型的元数据, 同一个类型只解析一次
type Model struct {
	TableName string
	// Fields 按结构体声明的顺序排列
	Fields []*Field
	// 字段名到字段的映射
	FieldMap map[string]*Field
	// 列名到字段的映射
	ColumnMap map[string]*Field
	// 记录实现了 Bindable
	Bindable bool
}

type Field struct {
	// 列名
	ColName string
	// Go 字段名
	GoName string
	Type   reflect.Type
	Kind   Kind
	// 相对于结构体起始地址的偏移量
	Offset uintptr
	// 嵌入结构体的时候, 字段的索引路径
	Index []int

	Identity bool
	Readable bool
	Writable bool
}

// InsertFields 返回可以出现在 INSERT 语句里的字段, 顺序就是声明顺序
// copyIdentity 为 false 的时候, 标记为 identity 的字段会被排除
func (m *Model) InsertFields(copyIdentity bool) []*Field {
	res := make([]*Field, 0, len(m.Fields))
	for _, fd := range m.Fields {
		if !fd.Kind.Eligible() || !fd.Readable {
			continue
		}
		if fd.Identity && !copyIdentity {
			continue
		}
		res = append(res, fd)
	}
	return res
}

// TableName 用户实现这个接口来返回自定义的表名
type TableName interface {
	TableName() string
}

type ModelOption func(m *Model) error

func ModelWithTableName(tableName string) ModelOption {
	return func(m *Model) error {
		m.TableName = tableName
		return nil
	}
}

func ModelWithColumnName(field string, colName string) ModelOption {
	return func(m *Model) error {
		fd, ok := m.FieldMap[field]
		if !ok {
			return errs.NewErrUnknownField(field)
		}
		delete(m.ColumnMap, fd.ColName)
		fd.ColName = colName
		m.ColumnMap[colName] = fd
		return nil
	}
}

// ModelWithIdentity 把字段标记为 identity, 效果和 `orm:"identity=true"` 一样
func ModelWithIdentity(field string) ModelOption {
	return func(m *Model) error {
		fd, ok := m.FieldMap[field]
		if !ok {
			return errs.NewErrUnknownField(field)
		}
		fd.Identity = true
		return nil
	}
}

type Registry interface {
	Get(val any) (*Model, error)
	Register(val any, opts ...ModelOption) (*Model, error)
}

type Option func(r *registry)

// WithTableNamer 默认表名就是类型名
func WithTableNamer(fn func(typeName string) string) Option {
	return func(r *registry) {
		r.tableNamer = fn
	}
}

// WithColumnNamer 默认列名就是字段名
func WithColumnNamer(fn func(fieldName string) string) Option {
	return func(r *registry) {
		r.columnNamer = fn
	}
}

// registry 代表元数据的注册中心
type registry struct {
	// 用 reflect.Type 作为 key, 同名但不同包的结构体也能区分开
	models map[reflect.Type]*Model
	lock   sync.RWMutex

	tableNamer  func(string) string
	columnNamer func(string) string
}

func NewRegistry(opts ...Option) Registry {
	return newRegistry(opts...)
}

func newRegistry(opts ...Option) *registry {
	r := &registry{
		models:      make(map[reflect.Type]*Model, 64),
		tableNamer:  keepName,
		columnNamer: keepName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *registry) Get(val any) (*Model, error) {
	typ := reflect.TypeOf(val)
	r.lock.RLock()
	m, ok := r.models[typ]
	r.lock.RUnlock()
	if ok {
		return m, nil
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	// double check, 保证同一个类型只解析一次
	m, ok = r.models[typ]
	if ok {
		return m, nil
	}
	m, err := r.parseModel(val)
	if err != nil {
		return nil, err
	}
	r.models[typ] = m
	return m, nil
}

// Register 显式注册, 会覆盖已经缓存的元数据
func (r *registry) Register(val any, opts ...ModelOption) (*Model, error) {
	m, err := r.parseModel(val)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err = opt(m); err != nil {
			return nil, err
		}
	}
	r.lock.Lock()
	r.models[reflect.TypeOf(val)] = m
	r.lock.Unlock()
	return m, nil
}

// 只支持输入指针类型的结构体
func (r *registry) parseModel(entity any) (*Model, error) {
	typ := reflect.TypeOf(entity)
	if typ == nil || typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}
	typ = typ.Elem()

	// 用零值实例去探测 Bindings 和 TableName, 避免调用方传进来的是 nil 指针
	probe := reflect.New(typ).Interface()
	var bindings map[string]Binding
	bd, bindable := probe.(Bindable)
	if bindable {
		bindings = bd.Bindings()
	}

	p := &fieldParser{
		columnNamer: r.columnNamer,
		depth:       make(map[string]int, typ.NumField()),
	}
	if err := p.parse(typ, nil, 0, 0); err != nil {
		return nil, err
	}

	fieldMap := make(map[string]*Field, len(p.fields))
	columnMap := make(map[string]*Field, len(p.fields))
	for _, fd := range p.fields {
		if bindable {
			b, ok := bindings[fd.GoName]
			fd.Readable = ok && b.Get != nil
			fd.Writable = fd.Writable && ok && b.Set != nil
		}
		fieldMap[fd.GoName] = fd
		columnMap[fd.ColName] = fd
	}

	var tableName string
	if tn, ok := probe.(TableName); ok {
		tableName = tn.TableName()
	}
	if tableName == "" {
		tableName = r.tableNamer(typ.Name())
	}

	return &Model{
		TableName: tableName,
		Fields:    p.fields,
		FieldMap:  fieldMap,
		ColumnMap: columnMap,
		Bindable:  bindable,
	}, nil
}

type fieldParser struct {
	columnNamer func(string) string
	fields      []*Field
	// 字段名对应的嵌入深度, 同名字段浅的胜出
	depth map[string]int
}

func (p *fieldParser) parse(typ reflect.Type, index []int, offset uintptr, depth int) error {
	for i := 0; i < typ.NumField(); i++ {
		fd := typ.Field(i)
		idx := append(append(make([]int, 0, len(index)+1), index...), i)
		if fd.Anonymous && fd.Type.Kind() == reflect.Struct && !IsValueStruct(fd.Type) {
			if err := p.parse(fd.Type, idx, offset+fd.Offset, depth+1); err != nil {
				return err
			}
			continue
		}
		if !fd.IsExported() {
			continue
		}
		pair, err := parseTag(fd.Tag)
		if err != nil {
			return err
		}
		colName := pair[tagColumn]
		if colName == ignoreColumn {
			continue
		}
		if colName == "" {
			colName = p.columnNamer(fd.Name)
		}
		field := &Field{
			ColName:  colName,
			GoName:   fd.Name,
			Type:     fd.Type,
			Kind:     KindOf(fd.Type),
			Offset:   offset + fd.Offset,
			Index:    idx,
			Identity: pair[tagIdentity] == "true",
			Readable: true,
			Writable: pair[tagReadOnly] != "true",
		}
		p.add(field, depth)
	}
	return nil
}

func (p *fieldParser) add(fd *Field, depth int) {
	old, ok := p.depth[fd.GoName]
	if !ok {
		p.depth[fd.GoName] = depth
		p.fields = append(p.fields, fd)
		return
	}
	if depth >= old {
		return
	}
	p.depth[fd.GoName] = depth
	for i, f := range p.fields {
		if f.GoName == fd.GoName {
			p.fields[i] = fd
			return
		}
	}
}

var (
	valuerType  = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// IsValueStruct 嵌入的 time.Time, sql.NullXXX 这种是一个值, 不能展开
func IsValueStruct(typ reflect.Type) bool {
	return typ == timeType ||
		typ.Implements(valuerType) ||
		reflect.PointerTo(typ).Implements(scannerType)
}

func parseTag(tag reflect.StructTag) (map[string]string, error) {
	ormTag, ok := tag.Lookup(tagName)
	if !ok {
		return nil, nil
	}
	pairs := strings.Split(ormTag, ",")
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		segs := strings.Split(pair, "=")
		if len(segs) != 2 {
			return nil, errs.NewErrInvalidTagContent(pair)
		}
		tags[segs[0]] = segs[1]
	}
	return tags, nil
}

func keepName(name string) string {
	return name
}

// UnderscoreName 驼峰名字符串转下划线命名
func UnderscoreName(name string) string {
	runes := []rune(name)
	buf := make([]rune, 0, len(runes)+4)
	for i, v := range runes {
		if unicode.IsUpper(v) {
			if i != 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i < len(runes)-1 && !unicode.IsUpper(runes[i+1]))) {
				buf = append(buf, '_')
			}
			buf = append(buf, unicode.ToLower(v))
		} else {
			buf = append(buf, v)
		}
	}
	return string(buf)
}
