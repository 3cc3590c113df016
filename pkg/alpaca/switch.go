package alpaca

var switchOps = withDeviceOps(Operations{
	"MaxSwitch":            get("maxswitch"),
	"CanWrite":             get("canwrite", intParam("Id")),
	"GetSwitch":            get("getswitch", intParam("Id")),
	"GetSwitchDescription": get("getswitchdescription", intParam("Id")),
	"GetSwitchName":        get("getswitchname", intParam("Id")),
	"GetSwitchValue":       get("getswitchvalue", intParam("Id")),
	"MinSwitchValue":       get("minswitchvalue", intParam("Id")),
	"MaxSwitchValue":       get("maxswitchvalue", intParam("Id")),
	"SwitchStep":           get("switchstep", intParam("Id")),

	"SetSwitch":      put("setswitch", intParam("Id"), boolParam("State")),
	"SetSwitchName":  put("setswitchname", intParam("Id"), stringParam("Name")),
	"SetSwitchValue": put("setswitchvalue", intParam("Id"), floatParam("Value")),
})

// Switch controls a bank of switches numbered 0 to MaxSwitch-1.
type Switch struct {
	Device
}

func NewSwitch(address string, number int, opts ...Option) (*Switch, error) {
	dev, err := newDevice(TypeSwitch, address, number, switchOps, opts)
	if err != nil {
		return nil, err
	}
	return &Switch{Device: dev}, nil
}

// MaxSwitch is the number of switches on the device.
func (s *Switch) MaxSwitch() (int, error) {
	return invoke[int](&s.Device, "MaxSwitch")
}

func (s *Switch) CanWrite(id int) (bool, error) {
	return invoke[bool](&s.Device, "CanWrite", Int(id))
}

func (s *Switch) GetSwitch(id int) (bool, error) {
	return invoke[bool](&s.Device, "GetSwitch", Int(id))
}

func (s *Switch) GetSwitchDescription(id int) (string, error) {
	return invoke[string](&s.Device, "GetSwitchDescription", Int(id))
}

func (s *Switch) GetSwitchName(id int) (string, error) {
	return invoke[string](&s.Device, "GetSwitchName", Int(id))
}

func (s *Switch) GetSwitchValue(id int) (float64, error) {
	return invoke[float64](&s.Device, "GetSwitchValue", Int(id))
}

func (s *Switch) MinSwitchValue(id int) (float64, error) {
	return invoke[float64](&s.Device, "MinSwitchValue", Int(id))
}

func (s *Switch) MaxSwitchValue(id int) (float64, error) {
	return invoke[float64](&s.Device, "MaxSwitchValue", Int(id))
}

// SwitchStep is the step size between values of a multi-state switch.
func (s *Switch) SwitchStep(id int) (float64, error) {
	return invoke[float64](&s.Device, "SwitchStep", Int(id))
}

func (s *Switch) SetSwitch(id int, state bool) error {
	return run(&s.Device, "SetSwitch", Int(id), Bool(state))
}

func (s *Switch) SetSwitchName(id int, name string) error {
	return run(&s.Device, "SetSwitchName", Int(id), String(name))
}

func (s *Switch) SetSwitchValue(id int, value float64) error {
	return run(&s.Device, "SetSwitchValue", Int(id), Float(value))
}
