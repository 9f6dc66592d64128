package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// ComponentID is the registration position of a component kind.
type ComponentID int

// TagID is the registration position of a tag kind.
type TagID int

// SignatureID is the registration position of a signature kind.
type SignatureID int

type componentKind struct {
	typ       reflect.Type
	newColumn func() column
}

// signatureMember is one field of a signature struct.
type signatureMember struct {
	name   string
	typ    reflect.Type
	tag    bool
	offset uintptr
}

// signatureField binds a pointer field of a signature struct to a component column.
type signatureField struct {
	component ComponentID
	offset    uintptr
}

type signatureKind struct {
	typ        reflect.Type
	members    []signatureMember
	bitset     Bitset
	components []ComponentID
	tags       []TagID
	fields     []signatureField
	dropped    []signatureMember
}

// Settings is the fixed catalog of component, tag and signature kinds shared by
// one or more Managers. Kinds are registered in order during an initialization
// phase; the catalog is frozen when the first Manager is built from it.
type Settings struct {
	components   []componentKind
	tags         []reflect.Type
	signatures   []*signatureKind
	componentIDs *intmap.Map[uint64, ComponentID]
	tagIDs       *intmap.Map[uint64, TagID]
	signatureIDs *intmap.Map[uint64, SignatureID]
	frozen       bool
}

// NewSettings creates an empty catalog.
func NewSettings() *Settings {
	return &Settings{
		componentIDs: intmap.New[uint64, ComponentID](32),
		tagIDs:       intmap.New[uint64, TagID](16),
		signatureIDs: intmap.New[uint64, SignatureID](16),
	}
}

// RegisterComponent appends T to the component catalog.
// Components must be value types; pointers, maps, channels, functions and
// interfaces are rejected.
func RegisterComponent[T any](s *Settings) ComponentID {
	t := reflect.TypeFor[T]()
	s.checkRegistration(t)
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: component " + t.String() + " must be a value type")
	}

	id := ComponentID(len(s.components))
	s.componentIDs.Put(typeKey(t), id)
	s.components = append(s.components, componentKind{typ: t, newColumn: newColumn[T]})
	return id
}

// RegisterTag appends T to the tag catalog. Tags carry no payload.
func RegisterTag[T any](s *Settings) TagID {
	t := reflect.TypeFor[T]()
	s.checkRegistration(t)

	id := TagID(len(s.tags))
	s.tagIDs.Put(typeKey(t), id)
	s.tags = append(s.tags, t)
	return id
}

// RegisterSignature appends the struct type S to the signature catalog.
// Every pointer field *C of S declares the component C as required and every
// non-pointer field of type T declares the tag T as required.
func RegisterSignature[S any](s *Settings) SignatureID {
	t := reflect.TypeFor[S]()
	if s.frozen {
		panic("ecs: cannot register " + t.String() + " after the settings are frozen")
	}
	if t.Kind() != reflect.Struct {
		panic("ecs: signature " + t.String() + " must be a struct")
	}
	key := typeKey(t)
	if _, ok := s.signatureIDs.Get(key); ok {
		panic("ecs: signature " + t.String() + " registered twice")
	}

	sig := &signatureKind{typ: t}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		m := signatureMember{name: f.Name, offset: f.Offset}
		if f.Type.Kind() == reflect.Pointer {
			m.typ = f.Type.Elem()
		} else {
			m.typ = f.Type
			m.tag = true
		}
		sig.members = append(sig.members, m)
	}

	id := SignatureID(len(s.signatures))
	s.signatureIDs.Put(key, id)
	s.signatures = append(s.signatures, sig)
	return id
}

func (s *Settings) checkRegistration(t reflect.Type) {
	if s.frozen {
		panic("ecs: cannot register " + t.String() + " after the settings are frozen")
	}
	key := typeKey(t)
	_, isComponent := s.componentIDs.Get(key)
	_, isTag := s.tagIDs.Get(key)
	if isComponent || isTag {
		panic("ecs: " + t.String() + " registered twice")
	}
	if len(s.components)+len(s.tags) >= MaxKinds {
		panic(fmt.Sprintf("ecs: cannot register more than %d components and tags", MaxKinds))
	}
}

// Freeze computes the signature bitsets. Registration panics afterwards.
// Calling Freeze more than once is a no-op.
func (s *Settings) Freeze() {
	if s.frozen {
		return
	}
	for _, sig := range s.signatures {
		s.compile(sig)
	}
	s.frozen = true
}

// Frozen reports whether the catalog can still change.
func (s *Settings) Frozen() bool {
	return s.frozen
}

func (s *Settings) compile(sig *signatureKind) {
	for _, m := range sig.members {
		key := typeKey(m.typ)
		cid, isComponent := s.componentIDs.Get(key)
		tid, isTag := s.tagIDs.Get(key)

		switch {
		case m.tag && isComponent:
			panic("ecs: signature " + sig.typ.String() + " field " + m.name + " must be a pointer to component " + m.typ.String())
		case !m.tag && isTag:
			panic("ecs: signature " + sig.typ.String() + " field " + m.name + " must not be a pointer to tag " + m.typ.String())
		case isComponent:
			sig.bitset.Set(int(cid))
			sig.components = append(sig.components, cid)
			sig.fields = append(sig.fields, signatureField{component: cid, offset: m.offset})
		case isTag:
			sig.bitset.Set(len(s.components) + int(tid))
			sig.tags = append(sig.tags, tid)
		default:
			sig.dropped = append(sig.dropped, m)
		}
	}
	slices.Sort(sig.components)
	sig.components = slices.Compact(sig.components)
	slices.Sort(sig.tags)
	sig.tags = slices.Compact(sig.tags)
}

// Validate reports every signature member that is not part of the catalog.
// Such members are ignored when matching, which makes the signature match more
// entities than its declaration suggests.
func (s *Settings) Validate() error {
	var errs []error
	for _, sig := range s.signatures {
		for _, m := range sig.members {
			key := typeKey(m.typ)
			_, isComponent := s.componentIDs.Get(key)
			_, isTag := s.tagIDs.Get(key)
			if m.tag && !isTag {
				errs = append(errs, fmt.Errorf("signature %s: tag %s is not registered", sig.typ, m.typ))
			}
			if !m.tag && !isComponent {
				errs = append(errs, fmt.Errorf("signature %s: component %s is not registered", sig.typ, m.typ))
			}
		}
	}
	return errors.Join(errs...)
}

// ComponentCount returns the number of registered components.
func (s *Settings) ComponentCount() int { return len(s.components) }

// TagCount returns the number of registered tags.
func (s *Settings) TagCount() int { return len(s.tags) }

// SignatureCount returns the number of registered signatures.
func (s *Settings) SignatureCount() int { return len(s.signatures) }

// BitCount returns the width of the bitsets in use: components plus tags.
func (s *Settings) BitCount() int { return len(s.components) + len(s.tags) }

// ComponentType returns the Go type of a registered component.
func (s *Settings) ComponentType(id ComponentID) reflect.Type { return s.components[id].typ }

// TagType returns the Go type of a registered tag.
func (s *Settings) TagType(id TagID) reflect.Type { return s.tags[id] }

// SignatureType returns the Go type of a registered signature.
func (s *Settings) SignatureType(id SignatureID) reflect.Type { return s.signatures[id].typ }

// SignatureBitset returns the precomputed mask of a signature.
func (s *Settings) SignatureBitset(id SignatureID) Bitset {
	s.mustBeFrozen()
	return s.signatures[id].bitset
}

// SignatureComponents returns the recognized component members of a signature
// in registration order.
func (s *Settings) SignatureComponents(id SignatureID) []ComponentID {
	s.mustBeFrozen()
	return slices.Clone(s.signatures[id].components)
}

// SignatureTags returns the recognized tag members of a signature in registration order.
func (s *Settings) SignatureTags(id SignatureID) []TagID {
	s.mustBeFrozen()
	return slices.Clone(s.signatures[id].tags)
}

// ComponentIDByType looks up a component by its reflect.Type.
func (s *Settings) ComponentIDByType(t reflect.Type) ComponentID {
	if id, ok := s.componentIDs.Get(typeKey(t)); ok {
		return id
	}
	return Unknown
}

func (s *Settings) mustBeFrozen() {
	if !s.frozen {
		panic("ecs: settings are not frozen yet")
	}
}

// ComponentIDOf returns the position of component T, or Unknown.
func ComponentIDOf[T any](s *Settings) ComponentID {
	if id, ok := s.componentIDs.Get(typeKeyFor[T]()); ok {
		return id
	}
	return Unknown
}

// TagIDOf returns the position of tag T, or Unknown.
func TagIDOf[T any](s *Settings) TagID {
	if id, ok := s.tagIDs.Get(typeKeyFor[T]()); ok {
		return id
	}
	return Unknown
}

// SignatureIDOf returns the position of signature S, or Unknown.
func SignatureIDOf[S any](s *Settings) SignatureID {
	if id, ok := s.signatureIDs.Get(typeKeyFor[S]()); ok {
		return id
	}
	return Unknown
}

// IsComponent reports whether T is a registered component.
func IsComponent[T any](s *Settings) bool { return ComponentIDOf[T](s) != Unknown }

// IsTag reports whether T is a registered tag.
func IsTag[T any](s *Settings) bool { return TagIDOf[T](s) != Unknown }

// IsSignature reports whether S is a registered signature.
func IsSignature[S any](s *Settings) bool { return SignatureIDOf[S](s) != Unknown }

// ComponentBit returns the bit used by component T, or Unknown.
func ComponentBit[T any](s *Settings) int {
	return int(ComponentIDOf[T](s))
}

// TagBit returns the bit used by tag T, or Unknown.
func TagBit[T any](s *Settings) int {
	id := TagIDOf[T](s)
	if id == Unknown {
		return Unknown
	}
	return len(s.components) + int(id)
}

func mustComponent[T any](s *Settings) ComponentID {
	id := ComponentIDOf[T](s)
	if id == Unknown {
		panic("ecs: " + reflect.TypeFor[T]().String() + " is not a registered component")
	}
	return id
}

func mustTagBit[T any](s *Settings) int {
	bit := TagBit[T](s)
	if bit == Unknown {
		panic("ecs: " + reflect.TypeFor[T]().String() + " is not a registered tag")
	}
	return bit
}

func mustSignature[S any](s *Settings) *signatureKind {
	id := SignatureIDOf[S](s)
	if id == Unknown {
		panic("ecs: " + reflect.TypeFor[S]().String() + " is not a registered signature")
	}
	return s.signatures[id]
}
