package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sigecs/ecs"
)

type KindInfo struct {
	Kind  string
	Name  string
	Count int
}

type OccupancyViewerCache struct {
	kinds     []KindInfo
	occupancy []byte
}

func NewOccupancyViewerComponent() OccupancyViewerComponent {
	return OccupancyViewerComponent{
		cache:         &OccupancyViewerCache{},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws the slot occupancy row (A for alive, D for pending kill) and
// the number of alive entities per component, tag and signature.
func (ov *OccupancyViewerComponent) Render(m *ecs.Manager) {
	if !imgui.BeginV("Occupancy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ov.rebuildCache(m)

	imgui.Text(fmt.Sprintf("size: %d  sizeNext: %d  capacity: %d", m.EntityCount(), m.SizeNext(), m.Capacity()))
	if m.Capacity() > 0 {
		used := float32(m.SizeNext()) / float32(m.Capacity())
		imgui.ProgressBarV(used, imgui.NewVec2(-1, 0), fmt.Sprintf("%d / %d slots claimed", m.SizeNext(), m.Capacity()))
	}

	if imgui.TreeNodeStr("Slots") {
		imgui.Text(string(ov.cache.occupancy))
		imgui.TreePop()
	}
	imgui.Separator()

	maxCount := 0
	for _, k := range ov.cache.kinds {
		maxCount = max(maxCount, k.Count)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ov.sortColumn = int(spec.ColumnIndex())
			ov.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortKinds(ov.cache.kinds, ov.sortColumn, ov.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, k := range ov.cache.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(k.Kind)

			imgui.TableNextColumn()
			imgui.Text(k.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", k.Count))

			if maxCount > 0 {
				barWidth := float32(k.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (ov *OccupancyViewerComponent) rebuildCache(m *ecs.Manager) {
	ov.cache.kinds = kindRows(m.CollectStats(), ov.cache.kinds[:0])
	sortKinds(ov.cache.kinds, ov.sortColumn, ov.sortAscending)

	ov.cache.occupancy = ov.cache.occupancy[:0]
	for i := 0; i < m.SizeNext(); i++ {
		if m.IsAlive(ecs.EntityIndex(i)) {
			ov.cache.occupancy = append(ov.cache.occupancy, 'A')
		} else {
			ov.cache.occupancy = append(ov.cache.occupancy, 'D')
		}
	}
}

func kindRows(stats ecs.Stats, dst []KindInfo) []KindInfo {
	for _, c := range stats.Components {
		dst = append(dst, KindInfo{Kind: "component", Name: c.Name, Count: c.Count})
	}
	for _, t := range stats.Tags {
		dst = append(dst, KindInfo{Kind: "tag", Name: t.Name, Count: t.Count})
	}
	for _, s := range stats.Signatures {
		dst = append(dst, KindInfo{Kind: "signature", Name: s.Name, Count: s.Count})
	}
	return dst
}

func sortKinds(kinds []KindInfo, column int, ascending bool) {
	sort.SliceStable(kinds, func(i, j int) bool {
		a, b := kinds[i], kinds[j]
		var less bool

		switch column {
		case 0:
			less = a.Kind < b.Kind
		case 1:
			less = a.Name < b.Name
		default:
			less = a.Count < b.Count
		}

		if !ascending {
			return !less
		}
		return less
	})
}
