package main

import (
	"math"

	"github.com/golang/geo/r3"

	"attitude-hud/internal/hud"
)

// Control rates per tick (60 TPS)
const (
	pitchRate   = 0.6 // degrees
	yawRate     = 1.2 // degrees
	maxSimPitch = 80.0
)

// SimEntity is an entity in the demo world. Vehicles carry an orientation
// as pitch and yaw in degrees.
type SimEntity struct {
	Class   string
	Label   string
	kind    hud.EntityKind
	Pitch   float64
	Yaw     float64
	Boarded bool
}

// Kind implements hud.Entity
func (e *SimEntity) Kind() hud.EntityKind { return e.kind }

// ClassName implements hud.Entity
func (e *SimEntity) ClassName() string { return e.Class }

// Forward returns the world-space forward unit vector, Y up.
func (e *SimEntity) Forward() r3.Vector {
	p := e.Pitch * math.Pi / 180
	y := e.Yaw * math.Pi / 180
	return r3.Vector{
		X: math.Cos(p) * math.Sin(y),
		Y: math.Sin(p),
		Z: math.Cos(p) * math.Cos(y),
	}
}

// Steer applies pitch and yaw input, keeping pitch within the sim limits.
func (e *SimEntity) Steer(dPitch, dYaw float64) {
	e.Pitch = math.Max(-maxSimPitch, math.Min(maxSimPitch, e.Pitch+dPitch))
	e.Yaw = math.Mod(e.Yaw+dYaw+360, 360)
}

// SimPlayer is the local player.
type SimPlayer struct {
	vehicle *SimEntity
}

// AttachedTo implements hud.Player. A nil vehicle must come back as an
// untyped nil so the HUD sees no attachment.
func (p *SimPlayer) AttachedTo() hud.Entity {
	if p.vehicle == nil {
		return nil
	}
	return p.vehicle
}

// SimWorld is the demo host: one player and a small garage of entities.
type SimWorld struct {
	player   *SimPlayer
	entities []*SimEntity
	selected int
	loaded   bool
}

// NewSimWorld creates a world with a gyrocopter, a motorcycle and a
// non-vehicle entity. extra adds more vehicle class names.
func NewSimWorld(extra ...string) *SimWorld {
	w := &SimWorld{
		player: &SimPlayer{},
		entities: []*SimEntity{
			{Class: "vehicleGyroCopter", Label: "Gyrocopter", kind: hud.KindVehicle},
			{Class: "vehicleMotorcycle", Label: "Motorcycle", kind: hud.KindVehicle},
			{Class: "animalChicken", Label: "Chicken", kind: hud.KindOther},
		},
		loaded: true,
	}
	for _, class := range extra {
		w.entities = append(w.entities, &SimEntity{Class: class, Label: class, kind: hud.KindVehicle})
	}
	return w
}

// World implements hud.Host. It returns nil while the world is unloaded.
func (w *SimWorld) World() hud.World {
	if !w.loaded {
		return nil
	}
	return w
}

// PrimaryPlayer implements hud.World
func (w *SimWorld) PrimaryPlayer() hud.Player {
	return w.player
}

// SetLoaded simulates entering or leaving a game session.
func (w *SimWorld) SetLoaded(loaded bool) {
	w.loaded = loaded
	if !loaded {
		w.Leave()
	}
}

// Loaded reports whether a session is active
func (w *SimWorld) Loaded() bool { return w.loaded }

// Selected returns the entity the player would board next.
func (w *SimWorld) Selected() *SimEntity {
	return w.entities[w.selected]
}

// SelectNext cycles the boarding target.
func (w *SimWorld) SelectNext() {
	w.selected = (w.selected + 1) % len(w.entities)
}

// Board attaches the player to the selected entity, leaving any current one.
func (w *SimWorld) Board() {
	w.Leave()
	e := w.Selected()
	e.Boarded = true
	w.player.vehicle = e
}

// Leave detaches the player.
func (w *SimWorld) Leave() {
	if w.player.vehicle != nil {
		w.player.vehicle.Boarded = false
		w.player.vehicle = nil
	}
}

// Current returns the boarded entity or nil.
func (w *SimWorld) Current() *SimEntity {
	return w.player.vehicle
}
