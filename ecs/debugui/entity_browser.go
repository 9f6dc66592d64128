package debugui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sigecs/ecs"
)

type EntityInfo struct {
	Index      ecs.EntityIndex
	Handle     ecs.Handle
	Alive      bool
	Bits       string
	Kinds      []string
	KindCount  int
	Signatures int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(m *ecs.Manager) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// Indices move on every refresh, so the rows are rebuilt each frame.
	eb.cache.entities = collectEntities(m, eb.cache.entities[:0])
	sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}
	imgui.SameLine()
	imgui.Checkbox("Pending kills", &eb.showDead)

	filtered := filterEntities(eb.cache.entities, eb.filterText, eb.showDead)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Kinds")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := strconv.Itoa(int(entity.Index))
			if !entity.Alive {
				label += " (D)"
			}
			isSelected := eb.hasSelection && eb.selected == entity.Handle
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.Handle
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Handle.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Kinds, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.KindCount))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		eb.currentPage = min(eb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Selected returns the handle of the selected entity. The handle is kept
// across refreshes; callers check it with IsHandleValid.
func (eb *EntityBrowserComponent) Selected() (ecs.Handle, bool) {
	return eb.selected, eb.hasSelection
}

// collectEntities describes every claimed slot, dead ones included.
func collectEntities(m *ecs.Manager, dst []EntityInfo) []EntityInfo {
	s := m.Settings()
	for i := 0; i < m.SizeNext(); i++ {
		e := ecs.EntityIndex(i)
		bits := m.EntityBitset(e)

		info := EntityInfo{
			Index:  e,
			Handle: m.HandleOf(e),
			Alive:  m.IsAlive(e),
			Bits:   bits.Format(s.BitCount()),
		}
		for c := 0; c < s.ComponentCount(); c++ {
			if bits.Test(c) {
				info.Kinds = append(info.Kinds, s.ComponentType(ecs.ComponentID(c)).Name())
			}
		}
		for t := 0; t < s.TagCount(); t++ {
			if bits.Test(s.ComponentCount() + t) {
				info.Kinds = append(info.Kinds, "#"+s.TagType(ecs.TagID(t)).Name())
			}
		}
		info.KindCount = len(info.Kinds)
		for sig := 0; sig < s.SignatureCount(); sig++ {
			if m.MatchesSignatureID(e, ecs.SignatureID(sig)) {
				info.Signatures++
			}
		}
		dst = append(dst, info)
	}
	return dst
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		var less bool

		switch column {
		case 1:
			less = a.Handle.HandleDataIndex() < b.Handle.HandleDataIndex()
		case 2:
			less = strings.Join(a.Kinds, ",") < strings.Join(b.Kinds, ",")
		case 3:
			less = a.KindCount < b.KindCount
		default:
			less = a.Index < b.Index
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// filterEntities matches the search text against the index, the handle and
// the kind names, case-insensitively.
func filterEntities(entities []EntityInfo, text string, showDead bool) []EntityInfo {
	if text == "" && showDead {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if !showDead && !entity.Alive {
			continue
		}

		if text != "" {
			idStr := strconv.Itoa(int(entity.Index))
			handleStr := entity.Handle.String()
			kindsStr := strings.ToLower(strings.Join(entity.Kinds, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(handleStr, filterLower) &&
				!strings.Contains(kindsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}
