package hud

import "log"

// FrameController decides each frame whether the gauge is shown.
type FrameController struct {
	gauge *Gauge

	active    bool
	lastPitch float64
}

// NewFrameController creates an inactive controller drawing with gauge
func NewFrameController(gauge *Gauge) *FrameController {
	return &FrameController{gauge: gauge}
}

// Active reports whether the last frame showed the gauge.
func (f *FrameController) Active() bool {
	return f.active
}

// LastPitch returns the pitch drawn on the last active frame.
func (f *FrameController) LastPitch() float64 {
	return f.lastPitch
}

// Frame runs one frame: it looks up the tracked vehicle through host and,
// when found, draws the gauge on s. Missing host state of any kind leaves
// the controller inactive without drawing or logging.
func (f *FrameController) Frame(host Host, s Surface) {
	v := trackedVehicle(host)
	if v == nil {
		f.active = false
		return
	}

	if !f.active {
		f.active = true
		log.Printf("Tracking vehicle %s, attitude gauge shown", v.ClassName())
	}

	f.lastPitch = PitchDegrees(v.Forward())
	if s != nil {
		f.gauge.Draw(s, f.lastPitch)
	}
}

func trackedVehicle(host Host) Vehicle {
	if isNil(host) {
		return nil
	}
	world := host.World()
	if isNil(world) {
		return nil
	}
	player := world.PrimaryPlayer()
	if isNil(player) {
		return nil
	}
	e := player.AttachedTo()
	if !IsTrackedVehicle(e) {
		return nil
	}
	v, ok := e.(Vehicle)
	if !ok {
		return nil
	}
	return v
}
