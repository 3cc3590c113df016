package alpaca

var focuserOps = withDeviceOps(Operations{
	"Absolute":          get("absolute"),
	"IsMoving":          get("ismoving"),
	"MaxIncrement":      get("maxincrement"),
	"MaxStep":           get("maxstep"),
	"Position":          get("position"),
	"StepSize":          get("stepsize"),
	"TempComp":          get("tempcomp"),
	"SetTempComp":       put("tempcomp", boolParam("TempComp")),
	"TempCompAvailable": get("tempcompavailable"),
	"Temperature":       get("temperature"),

	"Halt": put("halt"),
	"Move": put("move", intParam("Position")),
})

// Focuser drives a focuser. Absolute focusers move to a step position,
// relative focusers move by a step offset.
type Focuser struct {
	Device
}

func NewFocuser(address string, number int, opts ...Option) (*Focuser, error) {
	dev, err := newDevice(TypeFocuser, address, number, focuserOps, opts)
	if err != nil {
		return nil, err
	}
	return &Focuser{Device: dev}, nil
}

func (f *Focuser) Absolute() (bool, error)    { return invoke[bool](&f.Device, "Absolute") }
func (f *Focuser) IsMoving() (bool, error)    { return invoke[bool](&f.Device, "IsMoving") }
func (f *Focuser) MaxIncrement() (int, error) { return invoke[int](&f.Device, "MaxIncrement") }
func (f *Focuser) MaxStep() (int, error)      { return invoke[int](&f.Device, "MaxStep") }
func (f *Focuser) Position() (int, error)     { return invoke[int](&f.Device, "Position") }
func (f *Focuser) StepSize() (float64, error) { return invoke[float64](&f.Device, "StepSize") }
func (f *Focuser) TempComp() (bool, error)    { return invoke[bool](&f.Device, "TempComp") }
func (f *Focuser) SetTempComp(on bool) error  { return run(&f.Device, "SetTempComp", Bool(on)) }

func (f *Focuser) TempCompAvailable() (bool, error) {
	return invoke[bool](&f.Device, "TempCompAvailable")
}

// Temperature is the ambient temperature at the focuser in degrees Celsius.
func (f *Focuser) Temperature() (float64, error) {
	return invoke[float64](&f.Device, "Temperature")
}

func (f *Focuser) Halt() error {
	return run(&f.Device, "Halt")
}

// Move goes to position on an absolute focuser, or moves by position steps
// on a relative one.
func (f *Focuser) Move(position int) error {
	return run(&f.Device, "Move", Int(position))
}
