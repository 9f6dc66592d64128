package debugui

import (
	"reflect"

	"github.com/plus3/sigecs/ecs"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
}

// reflectionCache holds the editable fields of every component kind of one
// catalog, plus lazily computed fields of nested struct types. It is only
// used from the render thread.
type reflectionCache struct {
	components [][]FieldInfo
	nested     map[reflect.Type][]FieldInfo
}

func newReflectionCache(s *ecs.Settings) *reflectionCache {
	rc := &reflectionCache{
		components: make([][]FieldInfo, s.ComponentCount()),
		nested:     make(map[reflect.Type][]FieldInfo),
	}
	for id := range rc.components {
		rc.components[id] = structFields(s.ComponentType(ecs.ComponentID(id)))
	}
	return rc
}

func (rc *reflectionCache) component(id ecs.ComponentID) []FieldInfo {
	return rc.components[id]
}

func (rc *reflectionCache) fields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.nested[t]; ok {
		return cached
	}
	fields := structFields(t)
	rc.nested[t] = fields
	return fields
}

// structFields lists the exported fields of t. Components that are not
// structs are shown as a single field named after their type.
func structFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return []FieldInfo{{Name: t.Name(), Type: t, Index: -1}}
	}

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Pointer
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			IsStruct:  fieldType.Kind() == reflect.Struct,
		})
	}
	return fields
}

// fieldValue resolves a FieldInfo against a struct value, following pointers.
// The zero Value is returned for nil pointers.
func fieldValue(v reflect.Value, f FieldInfo) reflect.Value {
	if f.Index < 0 {
		return v
	}
	fv := v.Field(f.Index)
	if f.IsPointer {
		if fv.IsNil() {
			return reflect.Value{}
		}
		fv = fv.Elem()
	}
	return fv
}
