package debugui

import "github.com/plus3/sigecs/ecs"

// SpawnDebugUI creates one entity carrying every debug panel and an ImguiItem
// that renders them. scheduler may be nil. Register must have been called on
// the Manager's settings.
func SpawnDebugUI(m *ecs.Manager, scheduler *ecs.Scheduler) ecs.Handle {
	h := m.CreateHandle()
	ecs.AddComponent(m, h, NewEntityBrowserComponent(100))
	ecs.AddComponent(m, h, NewComponentInspectorComponent(m.Settings()))
	ecs.AddComponent(m, h, NewOccupancyViewerComponent())
	ecs.AddComponent(m, h, NewPerformanceStatsComponent(120, scheduler))
	ecs.AddComponent(m, h, NewSignatureDebuggerComponent())
	ecs.AddComponent(m, h, NewFrameTimer())

	view := ecs.NewView[SDebugPanels](m)
	ecs.AddComponent(m, h, ImguiItem{
		Render: func() {
			panels, ok := view.GetHandle(h)
			if !ok {
				return
			}
			dt := panels.FrameTimer.GetDeltaTime()

			panels.EntityBrowserComponent.Render(m)
			selected, hasSelection := panels.EntityBrowserComponent.Selected()
			panels.ComponentInspectorComponent.Render(m, selected, hasSelection)
			panels.OccupancyViewerComponent.Render(m)
			panels.PerformanceStatsComponent.Render(m, dt)
			panels.SignatureDebuggerComponent.Render(m)
		},
	})
	return h
}
