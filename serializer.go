// Package sqlmap 把结构体序列化成 INSERT 语句, 并把查询结果映射回结构体
package sqlmap

import (
	"strings"

	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/startdusk/sqlmap/internal/valuer"
	"github.com/startdusk/sqlmap/model"
)

type serializerOptions struct {
	r            model.Registry
	dialect      Dialect
	creator      valuer.Creator
	tableName    string
	copyIdentity bool
}

type SerializerOption func(o *serializerOptions)

// SerializerWithCopyIdentity identity 字段也写进 INSERT 语句
func SerializerWithCopyIdentity() SerializerOption {
	return func(o *serializerOptions) {
		o.copyIdentity = true
	}
}

// SerializerWithTableName 覆盖元数据里的表名
func SerializerWithTableName(name string) SerializerOption {
	return func(o *serializerOptions) {
		o.tableName = name
	}
}

func SerializerWithDialect(dialect Dialect) SerializerOption {
	return func(o *serializerOptions) {
		o.dialect = dialect
	}
}

func SerializerWithRegistry(r model.Registry) SerializerOption {
	return func(o *serializerOptions) {
		o.r = r
	}
}

func SerializerUseReflect() SerializerOption {
	return func(o *serializerOptions) {
		o.creator = valuer.Resolve(valuer.NewReflectValue)
	}
}

// Serializer 把 T 的记录序列化成 INSERT 语句
// 字段列表在创建的时候就确定了, 之后只读
type Serializer[T any] struct {
	model     *model.Model
	fields    []*model.Field
	tableName string
	// 每一条语句的列都一样, 提前拼好
	columns string
	enc     encoder
	creator valuer.Creator
}

func NewSerializer[T any](opts ...SerializerOption) (*Serializer[T], error) {
	o := serializerOptions{
		dialect: DialectStandard,
		creator: valuer.Resolve(valuer.NewUnsafeValue),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.r == nil {
		o.r = model.NewRegistry()
	}
	return newSerializer[T](o)
}

func newSerializer[T any](o serializerOptions) (*Serializer[T], error) {
	m, err := o.r.Get(new(T))
	if err != nil {
		return nil, err
	}
	s := &Serializer[T]{
		model:     m,
		fields:    m.InsertFields(o.copyIdentity),
		tableName: m.TableName,
		enc:       encoder{dialect: o.dialect},
		creator:   o.creator,
	}
	if o.tableName != "" {
		s.tableName = o.tableName
	}

	var sb strings.Builder
	for idx, fd := range s.fields {
		if idx > 0 {
			sb.WriteByte(',')
		}
		s.quote(&sb, fd.ColName)
	}
	s.columns = sb.String()
	return s, nil
}

// Columns 返回会出现在 INSERT 语句里的列, 按声明顺序
func (s *Serializer[T]) Columns() []string {
	res := make([]string, 0, len(s.fields))
	for _, fd := range s.fields {
		res = append(res, fd.ColName)
	}
	return res
}

// SerializeInsert 每条记录生成一条 INSERT 语句, 语句以 ";\n" 结尾, 按输入顺序拼接
// 没有记录的时候返回空字符串
func (s *Serializer[T]) SerializeInsert(records ...*T) (string, error) {
	var sb strings.Builder
	for _, record := range records {
		if record == nil {
			return "", errs.ErrNilRecord
		}
		if err := s.serializeOne(&sb, record); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (s *Serializer[T]) serializeOne(sb *strings.Builder, record *T) error {
	val := s.creator(s.model, record)
	sb.WriteString("INSERT INTO ")
	s.quote(sb, s.tableName)
	sb.WriteString(" (")
	sb.WriteString(s.columns)
	sb.WriteString(") VALUES (")
	for idx, fd := range s.fields {
		if idx > 0 {
			sb.WriteByte(',')
		}
		arg, err := val.Field(fd.GoName)
		if err != nil {
			return err
		}
		lit, err := s.enc.encode(fd, arg)
		if err != nil {
			return err
		}
		sb.WriteString(lit)
	}
	sb.WriteString(");\n")
	return nil
}

func (s *Serializer[T]) quote(sb *strings.Builder, name string) {
	q := s.enc.dialect.quoter()
	if q == 0 {
		sb.WriteString(name)
		return
	}
	sb.WriteByte(q)
	sb.WriteString(name)
	sb.WriteByte(q)
}
