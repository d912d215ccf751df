package input

import (
	"dsfront/emu/log"

	"github.com/veandco/go-sdl2/sdl"
)

// AxisThreshold is the absolute axis value from which a game controller axis
// is considered pressed. Axis values go from -32768 to 32767.
const AxisThreshold = 32000

// GameControllers tracks the game controllers currently plugged in, by
// joystick instance ID and by GUID. Update must be called for every
// controller device event to remain in sync. It's only accessed from the
// interactive thread.
type GameControllers struct {
	byGUID map[string]*sdl.GameController
	byID   map[sdl.JoystickID]*sdl.GameController
}

// NewGameControllers opens all game controllers already connected.
func NewGameControllers() *GameControllers {
	gcs := &GameControllers{
		byGUID: make(map[string]*sdl.GameController),
		byID:   make(map[sdl.JoystickID]*sdl.GameController),
	}
	for i := range sdl.NumJoysticks() {
		if !sdl.IsGameController(i) {
			continue
		}
		id, guid := gcs.open(i)
		log.ModInput.DebugZ("found controller").
			Int("id", int(id)).
			String("guid", guid).
			End()
	}
	return gcs
}

func (gcs *GameControllers) open(idx int) (sdl.JoystickID, string) {
	c := sdl.GameControllerOpen(idx)
	joy := c.Joystick()
	guid := sdl.JoystickGetGUIDString(joy.GUID())
	id := joy.InstanceID()
	gcs.byGUID[guid] = c
	gcs.byID[id] = c
	return id, guid
}

// GUID returns the GUID of the controller with the given instance ID, or an
// empty string if it's unknown.
func (gcs *GameControllers) GUID(id sdl.JoystickID) string {
	if gcs == nil {
		return ""
	}
	c, ok := gcs.byID[id]
	if !ok {
		return ""
	}
	return sdl.JoystickGetGUIDString(c.Joystick().GUID())
}

// Update opens or closes controllers as they're plugged or unplugged.
func (gcs *GameControllers) Update(e sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		id, guid := gcs.open(int(e.Which))
		log.ModInput.InfoZ("added controller").
			Int("id", int(id)).
			String("guid", guid).
			End()

	case sdl.CONTROLLERDEVICEREMOVED:
		c, ok := gcs.byID[e.Which]
		if !ok {
			log.ModInput.WarnZ("removed unknown controller").
				Int("id", int(e.Which)).
				End()
			return
		}
		guid := sdl.JoystickGetGUIDString(c.Joystick().GUID())
		delete(gcs.byGUID, guid)
		delete(gcs.byID, e.Which)
		c.Close()

		log.ModInput.InfoZ("removed controller").
			Int("id", int(e.Which)).
			String("guid", guid).
			End()
	}
}

// Close closes all opened controllers.
func (gcs *GameControllers) Close() {
	for _, c := range gcs.byID {
		c.Close()
	}
	clear(gcs.byGUID)
	clear(gcs.byID)
}
