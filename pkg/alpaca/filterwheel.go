package alpaca

var filterWheelOps = withDeviceOps(Operations{
	"FocusOffsets": get("focusoffsets"),
	"Names":        get("names"),
	"Position":     get("position"),
	"SetPosition":  put("position", intParam("Position")),
})

// FilterWheel selects filters on a filter wheel.
type FilterWheel struct {
	Device
}

func NewFilterWheel(address string, number int, opts ...Option) (*FilterWheel, error) {
	dev, err := newDevice(TypeFilterWheel, address, number, filterWheelOps, opts)
	if err != nil {
		return nil, err
	}
	return &FilterWheel{Device: dev}, nil
}

// FocusOffsets returns the focuser offset of each filter, in filter order.
func (f *FilterWheel) FocusOffsets() ([]int, error) {
	return invoke[[]int](&f.Device, "FocusOffsets")
}

func (f *FilterWheel) Names() ([]string, error) {
	return invoke[[]string](&f.Device, "Names")
}

// Position is the zero based slot in use, or -1 while the wheel is moving.
func (f *FilterWheel) Position() (int, error) {
	return invoke[int](&f.Device, "Position")
}

func (f *FilterWheel) SetPosition(position int) error {
	return run(&f.Device, "SetPosition", Int(position))
}
