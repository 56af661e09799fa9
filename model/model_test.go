package model

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/startdusk/sqlmap/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Register(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		entity    any
		wantModel *Model
		wantErr   error
		fields    []*Field
		opts      []ModelOption
	}{
		{
			name:   "test pointer model",
			entity: &TestModel{},
			wantModel: &Model{
				TableName: "test_model",
			},
			fields: []*Field{
				{
					ColName:  "id",
					GoName:   "ID",
					Type:     reflect.TypeOf(int64(0)),
					Kind:     KindNumeric,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "first_name",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Offset:   8,
					Index:    []int{1},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "age",
					GoName:   "Age",
					Type:     reflect.TypeOf(int8(0)),
					Kind:     KindNumeric,
					Offset:   24,
					Index:    []int{2},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "last_name",
					GoName:   "LastName",
					Type:     reflect.TypeOf(&sql.NullString{}),
					Kind:     KindValue,
					Offset:   32,
					Index:    []int{3},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name:   "test pointer model with opts",
			entity: &TestModel{},
			wantModel: &Model{
				TableName: "TEST_MODEL",
			},
			fields: []*Field{
				{
					ColName:  "id",
					GoName:   "ID",
					Type:     reflect.TypeOf(int64(0)),
					Kind:     KindNumeric,
					Index:    []int{0},
					Identity: true,
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "firstname",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Offset:   8,
					Index:    []int{1},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "age",
					GoName:   "Age",
					Type:     reflect.TypeOf(int8(0)),
					Kind:     KindNumeric,
					Offset:   24,
					Index:    []int{2},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "last_name",
					GoName:   "LastName",
					Type:     reflect.TypeOf(&sql.NullString{}),
					Kind:     KindValue,
					Offset:   32,
					Index:    []int{3},
					Readable: true,
					Writable: true,
				},
			},
			opts: []ModelOption{
				ModelWithTableName("TEST_MODEL"),
				ModelWithColumnName("FirstName", "firstname"),
				ModelWithIdentity("ID"),
			},
		},
		{
			name:    "unknown field in option",
			entity:  &TestModel{},
			opts:    []ModelOption{ModelWithColumnName("Unknown", "unknown")},
			wantErr: errs.NewErrUnknownField("Unknown"),
		},
		{
			name:    "unknown identity field",
			entity:  &TestModel{},
			opts:    []ModelOption{ModelWithIdentity("Unknown")},
			wantErr: errs.NewErrUnknownField("Unknown"),
		},
		{
			name:    "test struct model",
			entity:  TestModel{},
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "nil",
			entity:  nil,
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "primitive type",
			entity:  0,
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "map",
			entity:  map[string]string{"1": "1"},
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "slice",
			entity:  []int{1, 2, 3},
			wantErr: errs.ErrPointerOnly,
		},
	}

	r := newRegistry(WithTableNamer(UnderscoreName), WithColumnNamer(UnderscoreName))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := r.Register(c.entity, c.opts...)
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, withFields(c.wantModel, c.fields), m)
		})
	}
}

func Test_RegistryGet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string

		entity    any
		wantModel *Model
		wantErr   error

		fields []*Field
	}{
		{
			name:   "test pointer model",
			entity: &TestModel{},
			wantModel: &Model{
				TableName: "TestModel",
			},
			fields: []*Field{
				{
					ColName:  "ID",
					GoName:   "ID",
					Type:     reflect.TypeOf(int64(0)),
					Kind:     KindNumeric,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Offset:   8,
					Index:    []int{1},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "Age",
					GoName:   "Age",
					Type:     reflect.TypeOf(int8(0)),
					Kind:     KindNumeric,
					Offset:   24,
					Index:    []int{2},
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "LastName",
					GoName:   "LastName",
					Type:     reflect.TypeOf(&sql.NullString{}),
					Kind:     KindValue,
					Offset:   32,
					Index:    []int{3},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "tag",
			entity: func() any {
				type TagTable struct {
					FirstName string `orm:"column=first_name_t"`
				}
				return &TagTable{}
			}(),
			wantModel: &Model{
				TableName: "TagTable",
			},
			fields: []*Field{
				{
					ColName:  "first_name_t",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "empty column",
			entity: func() any {
				type TagTable struct {
					FirstName string `orm:"column="`
				}
				return &TagTable{}
			}(),
			wantModel: &Model{
				TableName: "TagTable",
			},
			fields: []*Field{
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "ignore column",
			entity: func() any {
				type TagTable struct {
					FirstName string `orm:"abc=abc"`
				}
				return &TagTable{}
			}(),
			wantModel: &Model{
				TableName: "TagTable",
			},
			fields: []*Field{
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "skip column and unexported field",
			entity: func() any {
				type TagTable struct {
					FirstName string `orm:"column=-"`
					lastName  string
					Age       int
				}
				return &TagTable{}
			}(),
			wantModel: &Model{
				TableName: "TagTable",
			},
			fields: []*Field{
				{
					ColName:  "Age",
					GoName:   "Age",
					Type:     reflect.TypeOf(0),
					Kind:     KindNumeric,
					Offset:   32,
					Index:    []int{2},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "identity and readonly",
			entity: func() any {
				type TagTable struct {
					ID       int64  `orm:"identity=true"`
					FullName string `orm:"column=full_name,readonly=true"`
				}
				return &TagTable{}
			}(),
			wantModel: &Model{
				TableName: "TagTable",
			},
			fields: []*Field{
				{
					ColName:  "ID",
					GoName:   "ID",
					Type:     reflect.TypeOf(int64(0)),
					Kind:     KindNumeric,
					Index:    []int{0},
					Identity: true,
					Readable: true,
					Writable: true,
				},
				{
					ColName:  "full_name",
					GoName:   "FullName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Offset:   8,
					Index:    []int{1},
					Readable: true,
				},
			},
		},

		{
			name:   "empty table name",
			entity: &EmptyTableName{},
			wantModel: &Model{
				TableName: "EmptyTableName",
			},
			fields: []*Field{
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name:   "custom table name",
			entity: &CustomTableName{},
			wantModel: &Model{
				TableName: "custom_table_name_t",
			},
			fields: []*Field{
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name:   "custom table name for ptr",
			entity: &CustomTableNamePtr{},
			wantModel: &Model{
				TableName: "custom_table_name_ptr_t",
			},
			fields: []*Field{
				{
					ColName:  "FirstName",
					GoName:   "FirstName",
					Type:     reflect.TypeOf(""),
					Kind:     KindText,
					Index:    []int{0},
					Readable: true,
					Writable: true,
				},
			},
		},

		{
			name: "invalid column",
			entity: func() any {
				type TagTable struct {
					FirstName string `orm:"column"`
				}
				return &TagTable{}
			}(),
			wantErr: errs.NewErrInvalidTagContent("column"),
		},
	}

	r := newRegistry()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := r.Get(c.entity)
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}

			want := withFields(c.wantModel, c.fields)
			assert.Equal(t, want, m)
			typ := reflect.TypeOf(c.entity)
			m, ok := r.models[typ]
			assert.True(t, ok)
			assert.Equal(t, want, m)
		})
	}
}

func TestRegistry_GetCached(t *testing.T) {
	r := NewRegistry()
	m1, err := r.Get(&TestModel{})
	require.NoError(t, err)
	m2, err := r.Get((*TestModel)(nil))
	require.NoError(t, err)
	// 同一个类型只解析一次
	assert.Same(t, m1, m2)
}

type gender int

func (g gender) String() string {
	if g == 1 {
		return "Female"
	}
	return "Male"
}

type person struct {
	Id         int64 `orm:"identity=true"`
	FirstName  string
	LastName   *string
	Age        int
	Active     bool
	Verified   *bool
	Gender     gender
	BirthDate  time.Time
	Score      float64
	ExternalID uuid.UUID
	Tags       []string
	Friend     *person
}

func TestModel_InsertFields(t *testing.T) {
	r := NewRegistry()
	m, err := r.Get(&person{})
	require.NoError(t, err)

	names := func(fields []*Field) []string {
		res := make([]string, 0, len(fields))
		for _, fd := range fields {
			res = append(res, fd.GoName)
		}
		return res
	}

	assert.Equal(t, []string{
		"FirstName", "LastName", "Age", "Active", "Verified",
		"Gender", "BirthDate", "Score", "ExternalID",
	}, names(m.InsertFields(false)))
	assert.Equal(t, []string{
		"Id", "FirstName", "LastName", "Age", "Active", "Verified",
		"Gender", "BirthDate", "Score", "ExternalID",
	}, names(m.InsertFields(true)))

	empty, err := r.Get(&struct{ Tags []string }{})
	require.NoError(t, err)
	assert.Empty(t, empty.InsertFields(true))
}

func TestRegistry_Embedded(t *testing.T) {
	type Base struct {
		Id        int64 `orm:"identity=true"`
		CreatedAt time.Time
	}
	type Account struct {
		Base
		Name string
		// 外层的同名字段覆盖嵌入结构体里的
		Id string
	}

	m, err := NewRegistry().Get(&Account{})
	require.NoError(t, err)
	require.Len(t, m.Fields, 3)

	id := m.Fields[0]
	assert.Equal(t, "Id", id.GoName)
	assert.Equal(t, []int{2}, id.Index)
	assert.Equal(t, KindText, id.Kind)
	assert.False(t, id.Identity)

	createdAt := m.Fields[1]
	assert.Equal(t, "CreatedAt", createdAt.GoName)
	assert.Equal(t, []int{0, 1}, createdAt.Index)
	assert.Equal(t, uintptr(8), createdAt.Offset)
	assert.Equal(t, KindTime, createdAt.Kind)

	assert.Equal(t, "Name", m.Fields[2].GoName)
	assert.Equal(t, []int{1}, m.Fields[2].Index)
	assert.Same(t, m.Fields[0], m.ColumnMap["Id"])
}

func TestRegistry_Bindable(t *testing.T) {
	m, err := NewRegistry().Get(&boundRecord{})
	require.NoError(t, err)
	assert.True(t, m.Bindable)

	name := m.FieldMap["Name"]
	assert.True(t, name.Readable)
	assert.True(t, name.Writable)

	age := m.FieldMap["Age"]
	assert.True(t, age.Readable)
	assert.False(t, age.Writable)

	secret := m.FieldMap["Secret"]
	assert.False(t, secret.Readable)
	assert.False(t, secret.Writable)

	assert.Len(t, m.InsertFields(false), 2)
}

func TestKindOf(t *testing.T) {
	type Level int
	cases := []struct {
		name string
		val  any
		want Kind
	}{
		{name: "string", val: "", want: KindText},
		{name: "string ptr", val: new(string), want: KindText},
		{name: "time", val: time.Time{}, want: KindTime},
		{name: "time ptr", val: &time.Time{}, want: KindTime},
		{name: "bool", val: false, want: KindBool},
		{name: "bool ptr", val: new(bool), want: KindNullBool},
		{name: "null bool", val: sql.NullBool{}, want: KindNullBool},
		{name: "null bool ptr", val: &sql.NullBool{}, want: KindNullBool},
		{name: "enum", val: gender(0), want: KindEnum},
		{name: "enum ptr", val: new(gender), want: KindEnum},
		{name: "int without String", val: Level(0), want: KindNumeric},
		{name: "int", val: 0, want: KindNumeric},
		{name: "uint16", val: uint16(0), want: KindNumeric},
		{name: "float64", val: 0.0, want: KindNumeric},
		{name: "uuid", val: uuid.UUID{}, want: KindValue},
		{name: "null string", val: sql.NullString{}, want: KindValue},
		{name: "struct", val: struct{ A int }{}, want: KindValue},
		{name: "uuid ptr", val: &uuid.UUID{}, want: KindValue},
		{name: "null string ptr", val: &sql.NullString{}, want: KindValue},
		// 指向普通结构体或者数组的指针是引用
		{name: "struct ptr", val: &struct{ A int }{}, want: KindUnsupported},
		{name: "record ptr", val: &person{}, want: KindUnsupported},
		{name: "array ptr", val: &[4]byte{}, want: KindUnsupported},
		{name: "bytes", val: []byte{}, want: KindUnsupported},
		{name: "map", val: map[string]int{}, want: KindUnsupported},
		{name: "double pointer", val: new(*int), want: KindUnsupported},
		{name: "complex", val: complex(1, 2), want: KindUnsupported},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, KindOf(reflect.TypeOf(c.val)))
		})
	}
}

func TestUnderscoreName(t *testing.T) {
	cases := map[string]string{
		"ID":             "id",
		"FirstName":      "first_name",
		"TestModel":      "test_model",
		"UserID":         "user_id",
		"HTTPServer":     "http_server",
		"EmptyTableName": "empty_table_name",
	}
	for in, want := range cases {
		assert.Equal(t, want, UnderscoreName(in), in)
	}
}

func withFields(m *Model, fields []*Field) *Model {
	fieldMap := make(map[string]*Field)
	columnMap := make(map[string]*Field)
	for _, field := range fields {
		fieldMap[field.GoName] = field
		columnMap[field.ColName] = field
	}
	m.Fields = fields
	m.FieldMap = fieldMap
	m.ColumnMap = columnMap
	return m
}

type EmptyTableName struct {
	FirstName string
}

func (e EmptyTableName) TableName() string {
	return ""
}

type CustomTableName struct {
	FirstName string
}

func (c CustomTableName) TableName() string {
	return "custom_table_name_t"
}

type CustomTableNamePtr struct {
	FirstName string
}

func (c *CustomTableNamePtr) TableName() string {
	return "custom_table_name_ptr_t"
}

type TestModel struct {
	ID        int64
	FirstName string
	Age       int8
	LastName  *sql.NullString
}

type boundRecord struct {
	Name   string
	Age    int
	Secret string
}

func (b *boundRecord) Bindings() map[string]Binding {
	return map[string]Binding{
		"Name": {
			Get: func() any { return b.Name },
			Set: func(val any) error {
				b.Name = val.(string)
				return nil
			},
		},
		"Age": {
			Get: func() any { return b.Age },
		},
	}
}
