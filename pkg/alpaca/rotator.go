package alpaca

var rotatorOps = withDeviceOps(Operations{
	"CanReverse":         get("canreverse"),
	"IsMoving":           get("ismoving"),
	"MechanicalPosition": get("mechanicalposition"),
	"Position":           get("position"),
	"Reverse":            get("reverse"),
	"SetReverse":         put("reverse", boolParam("Reverse")),
	"StepSize":           get("stepsize"),
	"TargetPosition":     get("targetposition"),

	"Halt":           put("halt"),
	"Move":           put("move", floatParam("Position")),
	"MoveAbsolute":   put("moveabsolute", floatParam("Position")),
	"MoveMechanical": put("movemechanical", floatParam("Position")),
	"Sync":           put("sync", floatParam("Position")),
})

// Rotator turns a camera rotator. Angles are in degrees.
type Rotator struct {
	Device
}

func NewRotator(address string, number int, opts ...Option) (*Rotator, error) {
	dev, err := newDevice(TypeRotator, address, number, rotatorOps, opts)
	if err != nil {
		return nil, err
	}
	return &Rotator{Device: dev}, nil
}

func (r *Rotator) CanReverse() (bool, error) { return invoke[bool](&r.Device, "CanReverse") }
func (r *Rotator) IsMoving() (bool, error)   { return invoke[bool](&r.Device, "IsMoving") }

// MechanicalPosition is the raw angle of the rotator, ignoring any sync
// offset.
func (r *Rotator) MechanicalPosition() (float64, error) {
	return invoke[float64](&r.Device, "MechanicalPosition")
}

// Position is the sky position angle.
func (r *Rotator) Position() (float64, error) {
	return invoke[float64](&r.Device, "Position")
}

func (r *Rotator) Reverse() (bool, error) {
	return invoke[bool](&r.Device, "Reverse")
}

func (r *Rotator) SetReverse(reverse bool) error {
	return run(&r.Device, "SetReverse", Bool(reverse))
}

func (r *Rotator) StepSize() (float64, error) {
	return invoke[float64](&r.Device, "StepSize")
}

// TargetPosition is the angle the rotator is moving to.
func (r *Rotator) TargetPosition() (float64, error) {
	return invoke[float64](&r.Device, "TargetPosition")
}

func (r *Rotator) Halt() error {
	return run(&r.Device, "Halt")
}

// Move turns the rotator by a relative angle.
func (r *Rotator) Move(angle float64) error {
	return run(&r.Device, "Move", Float(angle))
}

func (r *Rotator) MoveAbsolute(angle float64) error {
	return run(&r.Device, "MoveAbsolute", Float(angle))
}

func (r *Rotator) MoveMechanical(angle float64) error {
	return run(&r.Device, "MoveMechanical", Float(angle))
}

// Sync makes the current mechanical position read as angle.
func (r *Rotator) Sync(angle float64) error {
	return run(&r.Device, "Sync", Float(angle))
}
