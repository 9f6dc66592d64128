package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sigecs/ecs"
)

func NewSignatureDebuggerComponent() SignatureDebuggerComponent {
	return SignatureDebuggerComponent{
		selectedComponents: make(map[ecs.ComponentID]bool),
		selectedTags:       make(map[ecs.TagID]bool),
	}
}

// Render lets the user assemble an ad-hoc signature from checkboxes and shows
// how many entities match it, next to the registered signatures.
func (sd *SignatureDebuggerComponent) Render(m *ecs.Manager) {
	if !imgui.BeginV("Signature Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := m.Settings()

	if imgui.Button("Clear All") {
		clear(sd.selectedComponents)
		clear(sd.selectedTags)
	}

	imgui.Text("Components:")
	for c := 0; c < s.ComponentCount(); c++ {
		id := ecs.ComponentID(c)
		selected := sd.selectedComponents[id]
		if imgui.Checkbox(s.ComponentType(id).String(), &selected) {
			sd.selectedComponents[id] = selected
		}
	}
	imgui.Text("Tags:")
	for t := 0; t < s.TagCount(); t++ {
		id := ecs.TagID(t)
		selected := sd.selectedTags[id]
		if imgui.Checkbox(s.TagType(id).String(), &selected) {
			sd.selectedTags[id] = selected
		}
	}

	imgui.Separator()

	mask := sd.mask(s)
	if mask.IsZero() {
		imgui.Text("No kinds selected")
	} else {
		imgui.Text("Mask: " + mask.Format(s.BitCount()))
		imgui.Text(fmt.Sprintf("Matching Entities: %d", countMatching(m, mask)))
	}

	if imgui.TreeNodeStr("Registered Signatures") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SignatureTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Signature")
			imgui.TableSetupColumn("Mask")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for i := 0; i < s.SignatureCount(); i++ {
				id := ecs.SignatureID(i)
				bits := s.SignatureBitset(id)

				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(s.SignatureType(id).String())

				imgui.TableSetColumnIndex(1)
				imgui.Text(bits.Format(s.BitCount()))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", countMatching(m, bits)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if err := s.Validate(); err != nil && imgui.TreeNodeStr("Ignored Members") {
		for _, line := range strings.Split(err.Error(), "\n") {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (sd *SignatureDebuggerComponent) mask(s *ecs.Settings) ecs.Bitset {
	var mask ecs.Bitset
	for id, on := range sd.selectedComponents {
		if on {
			mask.Set(int(id))
		}
	}
	for id, on := range sd.selectedTags {
		if on {
			mask.Set(s.ComponentCount() + int(id))
		}
	}
	return mask
}

// countMatching counts alive entities whose bitset contains mask.
func countMatching(m *ecs.Manager, mask ecs.Bitset) int {
	n := 0
	for e := range m.Entities() {
		bits := m.EntityBitset(e)
		if m.IsAlive(e) && bits.Contains(mask) {
			n++
		}
	}
	return n
}
