package debugui

import (
	"log/slog"
	"reflect"
	"testing"

	"github.com/plus3/sigecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct {
	X, Y float32
}

type body struct {
	Pos    position
	Mass   float64
	Hidden bool
	Label  string
	Parent *position
	secret int
}

type hp int

type tEnemy struct{}

type sBodies struct {
	*body
	tEnemy
}

func newDebugManager(t *testing.T) *ecs.Manager {
	t.Helper()
	s := ecs.NewSettings()
	ecs.RegisterComponent[body](s)
	ecs.RegisterComponent[hp](s)
	ecs.RegisterTag[tEnemy](s)
	ecs.RegisterSignature[sBodies](s)
	Register(s)
	return ecs.NewManager(s, ecs.WithLogger(slog.New(slog.DiscardHandler)))
}

func TestRegister(t *testing.T) {
	m := newDebugManager(t)
	s := m.Settings()

	assert.True(t, ecs.IsComponent[ImguiItem](s))
	assert.True(t, ecs.IsComponent[FrameTimer](s))
	assert.True(t, ecs.IsSignature[SDebugPanels](s))
	assert.NoError(t, s.Validate())
}

func TestSpawnDebugUI(t *testing.T) {
	m := newDebugManager(t)
	h := SpawnDebugUI(m, nil)
	m.Refresh()

	assert.True(t, ecs.MatchesSignature[SDebugPanels](m, h))
	assert.True(t, ecs.MatchesSignature[SImguiItems](m, h))
	assert.NotNil(t, ecs.GetComponent[ImguiItem](m, h).Render)
}

func TestCollectEntities(t *testing.T) {
	m := newDebugManager(t)

	a := m.CreateIndex()
	ecs.AddComponent(m, a, body{Mass: 2})
	ecs.AddTag[tEnemy](m, a)

	b := m.CreateIndex()
	ecs.AddComponent(m, b, hp(3))
	m.Refresh()
	m.Kill(b)

	rows := collectEntities(m, nil)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"body", "#tEnemy"}, rows[0].Kinds)
	assert.Equal(t, 2, rows[0].KindCount)
	assert.Equal(t, 1, rows[0].Signatures)
	assert.True(t, rows[0].Alive)

	assert.Equal(t, []string{"hp"}, rows[1].Kinds)
	assert.False(t, rows[1].Alive)

	visible := filterEntities(rows, "", false)
	require.Len(t, visible, 1)
	assert.Equal(t, a, visible[0].Index)

	assert.Len(t, filterEntities(rows, "HP", true), 1)
	assert.Len(t, filterEntities(rows, "", true), 2)
	assert.Empty(t, filterEntities(rows, "nothing", true))
}

func TestSortEntities(t *testing.T) {
	rows := []EntityInfo{
		{Index: 0, KindCount: 3},
		{Index: 1, KindCount: 1},
		{Index: 2, KindCount: 2},
	}

	sortEntities(rows, 3, true)
	assert.Equal(t, []ecs.EntityIndex{1, 2, 0}, []ecs.EntityIndex{rows[0].Index, rows[1].Index, rows[2].Index})

	sortEntities(rows, 0, false)
	assert.Equal(t, []ecs.EntityIndex{2, 1, 0}, []ecs.EntityIndex{rows[0].Index, rows[1].Index, rows[2].Index})
}

func TestKindRows(t *testing.T) {
	m := newDebugManager(t)
	e := m.CreateIndex()
	ecs.AddComponent(m, e, body{})
	ecs.AddTag[tEnemy](m, e)
	m.Refresh()

	rows := kindRows(m.CollectStats(), nil)
	s := m.Settings()
	require.Len(t, rows, s.ComponentCount()+s.TagCount()+s.SignatureCount())

	sortKinds(rows, 2, false)
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, 0, rows[len(rows)-1].Count)

	sortKinds(rows, 1, true)
	assert.Equal(t, "debugui.ComponentInspectorComponent", rows[0].Name)
}

func TestSignatureDebuggerMask(t *testing.T) {
	m := newDebugManager(t)
	s := m.Settings()

	matching := m.CreateIndex()
	ecs.AddComponent(m, matching, body{})
	ecs.AddTag[tEnemy](m, matching)
	untagged := m.CreateIndex()
	ecs.AddComponent(m, untagged, body{})
	m.Refresh()

	sd := NewSignatureDebuggerComponent()
	assert.True(t, sd.mask(s).IsZero())

	sd.selectedComponents[ecs.ComponentIDOf[body](s)] = true
	assert.Equal(t, 2, countMatching(m, sd.mask(s)))

	sd.selectedTags[ecs.TagIDOf[tEnemy](s)] = true
	assert.Equal(t, s.SignatureBitset(ecs.SignatureIDOf[sBodies](s)), sd.mask(s))
	assert.Equal(t, 1, countMatching(m, sd.mask(s)))

	m.Kill(matching)
	assert.Equal(t, 0, countMatching(m, sd.mask(s)), "pending kills are not counted")
}

func TestReflectionCache(t *testing.T) {
	m := newDebugManager(t)
	rc := newReflectionCache(m.Settings())

	fields := rc.component(ecs.ComponentIDOf[body](m.Settings()))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Pos", "Mass", "Hidden", "Label", "Parent"}, names)
	assert.True(t, fields[0].IsStruct)
	assert.True(t, fields[4].IsPointer)
	assert.Equal(t, reflect.TypeFor[position](), fields[4].Type)

	scalar := rc.component(ecs.ComponentIDOf[hp](m.Settings()))
	require.Len(t, scalar, 1)
	assert.Equal(t, -1, scalar[0].Index)

	assert.Len(t, rc.fields(reflect.TypeFor[position]()), 2)
}

func TestFieldValueWritesThroughStorage(t *testing.T) {
	m := newDebugManager(t)
	e := m.CreateIndex()
	ecs.AddComponent(m, e, body{Mass: 1})
	ecs.AddComponent(m, e, hp(5))

	s := m.Settings()
	rc := newReflectionCache(s)

	bodyID := ecs.ComponentIDOf[body](s)
	val := reflect.ValueOf(m.ComponentValue(e, bodyID)).Elem()
	mass := fieldValue(val, rc.component(bodyID)[1])
	require.True(t, mass.CanSet())
	mass.SetFloat(4)
	assert.Equal(t, 4.0, ecs.GetComponent[body](m, e).Mass)

	assert.False(t, fieldValue(val, rc.component(bodyID)[4]).IsValid(), "nil pointer field")

	hpID := ecs.ComponentIDOf[hp](s)
	hpVal := fieldValue(reflect.ValueOf(m.ComponentValue(e, hpID)).Elem(), rc.component(hpID)[0])
	hpVal.SetInt(9)
	assert.Equal(t, hp(9), *ecs.GetComponent[hp](m, e))
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := NewPerformanceStatsComponent(4, nil)
	ps.record(0.010)
	ps.record(0.020)

	assert.InDelta(t, 7.5, ps.averageFrameTime(), 0.001)

	for i := 0; i < 4; i++ {
		ps.record(0.016)
	}
	assert.InDelta(t, 16, ps.averageFrameTime(), 0.001)
}
