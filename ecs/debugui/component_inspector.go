package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sigecs/ecs"
)

func NewComponentInspectorComponent(settings *ecs.Settings) ComponentInspectorComponent {
	return ComponentInspectorComponent{fields: newReflectionCache(settings)}
}

// Render shows and edits the components of the selected entity. Edits are
// written straight into the Manager's storage.
func (ci *ComponentInspectorComponent) Render(m *ecs.Manager, selected ecs.Handle, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !hasSelection {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !m.IsHandleValid(selected) {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", selected))
		imgui.End()
		return
	}

	s := m.Settings()
	e := m.EntityIndexOf(selected)
	bits := m.EntityBitset(e)

	imgui.Text(fmt.Sprintf("Index: %d  Handle: %s", e, selected))
	imgui.Text(fmt.Sprintf("Alive: %t", m.IsAlive(e)))
	imgui.Text("Bits: " + bits.Format(s.BitCount()))
	imgui.Separator()

	for c := 0; c < s.ComponentCount(); c++ {
		id := ecs.ComponentID(c)
		component := m.ComponentValue(e, id)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(s.ComponentType(id).String()) {
			val := reflect.ValueOf(component).Elem()
			for _, field := range ci.fields.component(id) {
				ci.renderField(field.Name, fieldValue(val, field))
			}
			imgui.TreePop()
		}
	}

	if s.TagCount() > 0 && imgui.TreeNodeStr("Tags") {
		for t := 0; t < s.TagCount(); t++ {
			if bits.Test(s.ComponentCount() + t) {
				imgui.BulletText(s.TagType(ecs.TagID(t)).String())
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}

// renderField draws one editable field. val is addressable because it points
// into component storage, so edits are applied with Set* directly.
func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	label := "##" + name
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range ci.fields.fields(val.Type()) {
				ci.renderField(nf.Name, fieldValue(val, nf))
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(name + ": <unexported>")
		}
	}
}
