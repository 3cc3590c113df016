package alpaca

var safetyMonitorOps = withDeviceOps(Operations{
	"IsSafe": get("issafe"),
})

type SafetyMonitor struct {
	Device
}

func NewSafetyMonitor(address string, number int, opts ...Option) (*SafetyMonitor, error) {
	dev, err := newDevice(TypeSafetyMonitor, address, number, safetyMonitorOps, opts)
	if err != nil {
		return nil, err
	}
	return &SafetyMonitor{Device: dev}, nil
}

// IsSafe reports whether conditions are safe to operate.
func (s *SafetyMonitor) IsSafe() (bool, error) {
	return invoke[bool](&s.Device, "IsSafe")
}
