package debugui

import (
	"github.com/plus3/sigecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           ecs.Handle
	hasSelection       bool
	filterText         string
	showDead           bool
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	fields *reflectionCache
}

type OccupancyViewerComponent struct {
	cache         *OccupancyViewerCache
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	scheduler     *ecs.Scheduler
}

type SignatureDebuggerComponent struct {
	selectedComponents map[ecs.ComponentID]bool
	selectedTags       map[ecs.TagID]bool
}
