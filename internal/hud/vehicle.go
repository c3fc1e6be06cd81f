package hud

import (
	"reflect"
	"strings"

	"github.com/golang/geo/r3"
)

// TrackedFamily is matched case-insensitively against vehicle class names.
const TrackedFamily = "gyro"

// EntityKind classifies host entities.
type EntityKind int

const (
	KindOther EntityKind = iota
	KindVehicle
)

// Entity is the part of a host entity the HUD reads.
type Entity interface {
	Kind() EntityKind
	ClassName() string
}

// Vehicle is an entity with a world-space orientation.
type Vehicle interface {
	Entity
	Forward() r3.Vector
}

// Player is the local player; AttachedTo returns nil when on foot.
type Player interface {
	AttachedTo() Entity
}

// World exposes the primary (local) player, nil before spawn.
type World interface {
	PrimaryPlayer() Player
}

// Host is the embedding game. World returns nil outside a session.
type Host interface {
	World() World
}

// IsTrackedVehicle reports whether e is a vehicle of the tracked family.
// A nil pointer wrapped in e counts as no entity.
func IsTrackedVehicle(e Entity) bool {
	if isNil(e) || e.Kind() != KindVehicle {
		return false
	}
	name := e.ClassName()
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), TrackedFamily)
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
