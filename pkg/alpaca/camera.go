package alpaca

import (
	"encoding/json"
	"fmt"
	"time"
)

type CameraState int

const (
	CameraIdle CameraState = iota
	CameraWaiting
	CameraExposing
	CameraReading
	CameraDownload
	CameraError
)

func (s CameraState) String() string {
	switch s {
	case CameraIdle:
		return "Idle"
	case CameraWaiting:
		return "Waiting"
	case CameraExposing:
		return "Exposing"
	case CameraReading:
		return "Reading"
	case CameraDownload:
		return "Download"
	case CameraError:
		return "Error"
	default:
		return fmt.Sprintf("CameraState(%d)", int(s))
	}
}

type SensorType int

const (
	SensorMonochrome SensorType = iota
	SensorColor
	SensorRGGB
	SensorCMYG
	SensorCMYG2
	SensorLRGB
)

// ImageElementType is the element type code of an image array response.
type ImageElementType int

const (
	ElementUnknown ImageElementType = iota
	ElementInt16
	ElementInt32
	ElementDouble
)

// ImageArray is the JSON image returned by the imagearray endpoints. Rank is
// 2 for monochrome images and 3 for colour images.
type ImageArray struct {
	Type ImageElementType
	Rank int
	Data json.RawMessage
}

// Plane decodes a rank 2 image indexed [x][y].
func (img *ImageArray) Plane() ([][]float64, error) {
	if img.Rank != 2 {
		return nil, fmt.Errorf("image rank is %d, not 2", img.Rank)
	}
	var plane [][]float64
	if err := json.Unmarshal(img.Data, &plane); err != nil {
		return nil, err
	}
	return plane, nil
}

// Cube decodes a rank 3 image indexed [x][y][plane].
func (img *ImageArray) Cube() ([][][]float64, error) {
	if img.Rank != 3 {
		return nil, fmt.Errorf("image rank is %d, not 3", img.Rank)
	}
	var cube [][][]float64
	if err := json.Unmarshal(img.Data, &cube); err != nil {
		return nil, err
	}
	return cube, nil
}

var cameraOps = withDeviceOps(Operations{
	"BayerOffsetX":              get("bayeroffsetx"),
	"BayerOffsetY":              get("bayeroffsety"),
	"BinX":                      get("binx"),
	"SetBinX":                   put("binx", intParam("BinX")),
	"BinY":                      get("biny"),
	"SetBinY":                   put("biny", intParam("BinY")),
	"CameraState":               get("camerastate"),
	"CameraXSize":               get("cameraxsize"),
	"CameraYSize":               get("cameraysize"),
	"CanAbortExposure":          get("canabortexposure"),
	"CanAsymmetricBin":          get("canasymmetricbin"),
	"CanFastReadout":            get("canfastreadout"),
	"CanGetCoolerPower":         get("cangetcoolerpower"),
	"CanPulseGuide":             get("canpulseguide"),
	"CanSetCCDTemperature":      get("cansetccdtemperature"),
	"CanStopExposure":           get("canstopexposure"),
	"CCDTemperature":            get("ccdtemperature"),
	"CoolerOn":                  get("cooleron"),
	"SetCoolerOn":               put("cooleron", boolParam("CoolerOn")),
	"CoolerPower":               get("coolerpower"),
	"ElectronsPerADU":           get("electronsperadu"),
	"ExposureMax":               get("exposuremax"),
	"ExposureMin":               get("exposuremin"),
	"ExposureResolution":        get("exposureresolution"),
	"FastReadout":               get("fastreadout"),
	"SetFastReadout":            put("fastreadout", boolParam("FastReadout")),
	"FullWellCapacity":          get("fullwellcapacity"),
	"Gain":                      get("gain"),
	"SetGain":                   put("gain", intParam("Gain")),
	"GainMax":                   get("gainmax"),
	"GainMin":                   get("gainmin"),
	"Gains":                     get("gains"),
	"HasShutter":                get("hasshutter"),
	"HeatSinkTemperature":       get("heatsinktemperature"),
	"ImageArray":                get("imagearray"),
	"ImageArrayVariant":         get("imagearrayvariant"),
	"ImageReady":                get("imageready"),
	"IsPulseGuiding":            get("ispulseguiding"),
	"LastExposureDuration":      get("lastexposureduration"),
	"LastExposureStartTime":     get("lastexposurestarttime"),
	"MaxADU":                    get("maxadu"),
	"MaxBinX":                   get("maxbinx"),
	"MaxBinY":                   get("maxbiny"),
	"NumX":                      get("numx"),
	"SetNumX":                   put("numx", intParam("NumX")),
	"NumY":                      get("numy"),
	"SetNumY":                   put("numy", intParam("NumY")),
	"PercentCompleted":          get("percentcompleted"),
	"PixelSizeX":                get("pixelsizex"),
	"PixelSizeY":                get("pixelsizey"),
	"ReadoutMode":               get("readoutmode"),
	"SetReadoutMode":            put("readoutmode", intParam("ReadoutMode")),
	"ReadoutModes":              get("readoutmodes"),
	"SensorName":                get("sensorname"),
	"SensorType":                get("sensortype"),
	"CCDTemperatureSetpoint":    get("setccdtemperature"),
	"SetCCDTemperatureSetpoint": put("setccdtemperature", floatParam("SetCCDTemperature")),
	"StartX":                    get("startx"),
	"SetStartX":                 put("startx", intParam("StartX")),
	"StartY":                    get("starty"),
	"SetStartY":                 put("starty", intParam("StartY")),

	"AbortExposure": put("abortexposure"),
	"PulseGuide":    put("pulseguide", intParam("Direction"), intParam("Duration")),
	"StartExposure": put("startexposure", floatParam("Duration"), boolParam("Light")),
	"StopExposure":  put("stopexposure"),
})

// Camera controls an imaging camera.
type Camera struct {
	Device
}

func NewCamera(address string, number int, opts ...Option) (*Camera, error) {
	dev, err := newDevice(TypeCamera, address, number, cameraOps, opts)
	if err != nil {
		return nil, err
	}
	return &Camera{Device: dev}, nil
}

func (c *Camera) BayerOffsetX() (int, error) { return invoke[int](&c.Device, "BayerOffsetX") }
func (c *Camera) BayerOffsetY() (int, error) { return invoke[int](&c.Device, "BayerOffsetY") }

func (c *Camera) BinX() (int, error)    { return invoke[int](&c.Device, "BinX") }
func (c *Camera) SetBinX(bin int) error { return run(&c.Device, "SetBinX", Int(bin)) }
func (c *Camera) BinY() (int, error)    { return invoke[int](&c.Device, "BinY") }
func (c *Camera) SetBinY(bin int) error { return run(&c.Device, "SetBinY", Int(bin)) }

func (c *Camera) CameraState() (CameraState, error) {
	return invoke[CameraState](&c.Device, "CameraState")
}

// CameraXSize is the sensor width in unbinned pixels.
func (c *Camera) CameraXSize() (int, error) { return invoke[int](&c.Device, "CameraXSize") }

// CameraYSize is the sensor height in unbinned pixels.
func (c *Camera) CameraYSize() (int, error) { return invoke[int](&c.Device, "CameraYSize") }

func (c *Camera) CanAbortExposure() (bool, error) {
	return invoke[bool](&c.Device, "CanAbortExposure")
}

func (c *Camera) CanAsymmetricBin() (bool, error) {
	return invoke[bool](&c.Device, "CanAsymmetricBin")
}

func (c *Camera) CanFastReadout() (bool, error) {
	return invoke[bool](&c.Device, "CanFastReadout")
}

func (c *Camera) CanGetCoolerPower() (bool, error) {
	return invoke[bool](&c.Device, "CanGetCoolerPower")
}

func (c *Camera) CanPulseGuide() (bool, error) {
	return invoke[bool](&c.Device, "CanPulseGuide")
}

func (c *Camera) CanSetCCDTemperature() (bool, error) {
	return invoke[bool](&c.Device, "CanSetCCDTemperature")
}

func (c *Camera) CanStopExposure() (bool, error) {
	return invoke[bool](&c.Device, "CanStopExposure")
}

// CCDTemperature is the current sensor temperature in degrees Celsius.
func (c *Camera) CCDTemperature() (float64, error) {
	return invoke[float64](&c.Device, "CCDTemperature")
}

func (c *Camera) CoolerOn() (bool, error) {
	return invoke[bool](&c.Device, "CoolerOn")
}

func (c *Camera) SetCoolerOn(on bool) error {
	return run(&c.Device, "SetCoolerOn", Bool(on))
}

// CoolerPower is the cooler power level in percent.
func (c *Camera) CoolerPower() (float64, error) {
	return invoke[float64](&c.Device, "CoolerPower")
}

func (c *Camera) ElectronsPerADU() (float64, error) {
	return invoke[float64](&c.Device, "ElectronsPerADU")
}

// ExposureMax is the longest supported exposure in seconds.
func (c *Camera) ExposureMax() (float64, error) {
	return invoke[float64](&c.Device, "ExposureMax")
}

// ExposureMin is the shortest supported exposure in seconds.
func (c *Camera) ExposureMin() (float64, error) {
	return invoke[float64](&c.Device, "ExposureMin")
}

func (c *Camera) ExposureResolution() (float64, error) {
	return invoke[float64](&c.Device, "ExposureResolution")
}

func (c *Camera) FastReadout() (bool, error) {
	return invoke[bool](&c.Device, "FastReadout")
}

func (c *Camera) SetFastReadout(fast bool) error {
	return run(&c.Device, "SetFastReadout", Bool(fast))
}

// FullWellCapacity in electrons at the current binning.
func (c *Camera) FullWellCapacity() (float64, error) {
	return invoke[float64](&c.Device, "FullWellCapacity")
}

func (c *Camera) Gain() (int, error)     { return invoke[int](&c.Device, "Gain") }
func (c *Camera) SetGain(gain int) error { return run(&c.Device, "SetGain", Int(gain)) }
func (c *Camera) GainMax() (int, error)  { return invoke[int](&c.Device, "GainMax") }
func (c *Camera) GainMin() (int, error)  { return invoke[int](&c.Device, "GainMin") }

// Gains lists the gain names when the camera works in gain index mode.
func (c *Camera) Gains() ([]string, error) {
	return invoke[[]string](&c.Device, "Gains")
}

func (c *Camera) HasShutter() (bool, error) {
	return invoke[bool](&c.Device, "HasShutter")
}

func (c *Camera) HeatSinkTemperature() (float64, error) {
	return invoke[float64](&c.Device, "HeatSinkTemperature")
}

// ImageArray downloads the last image. The caller should check ImageReady
// first.
func (c *Camera) ImageArray() (*ImageArray, error) {
	return c.image("ImageArray")
}

// ImageArrayVariant downloads the last image in variant form.
func (c *Camera) ImageArrayVariant() (*ImageArray, error) {
	return c.image("ImageArrayVariant")
}

func (c *Camera) image(name string) (*ImageArray, error) {
	resp, err := c.Invoke(name)
	if err != nil {
		return nil, err
	}
	if !resp.HasValue() {
		return nil, fmt.Errorf("%s: %w", name, ErrNoValue)
	}
	return &ImageArray{
		Type: ImageElementType(resp.Type),
		Rank: resp.Rank,
		Data: resp.Value,
	}, nil
}

func (c *Camera) ImageReady() (bool, error) {
	return invoke[bool](&c.Device, "ImageReady")
}

func (c *Camera) IsPulseGuiding() (bool, error) {
	return invoke[bool](&c.Device, "IsPulseGuiding")
}

// LastExposureDuration is the actual duration of the last exposure in
// seconds.
func (c *Camera) LastExposureDuration() (float64, error) {
	return invoke[float64](&c.Device, "LastExposureDuration")
}

// LastExposureStartTime is the start time of the last exposure in the FITS
// DATE-OBS format.
func (c *Camera) LastExposureStartTime() (string, error) {
	return invoke[string](&c.Device, "LastExposureStartTime")
}

func (c *Camera) MaxADU() (int, error)  { return invoke[int](&c.Device, "MaxADU") }
func (c *Camera) MaxBinX() (int, error) { return invoke[int](&c.Device, "MaxBinX") }
func (c *Camera) MaxBinY() (int, error) { return invoke[int](&c.Device, "MaxBinY") }

func (c *Camera) NumX() (int, error)  { return invoke[int](&c.Device, "NumX") }
func (c *Camera) SetNumX(n int) error { return run(&c.Device, "SetNumX", Int(n)) }
func (c *Camera) NumY() (int, error)  { return invoke[int](&c.Device, "NumY") }
func (c *Camera) SetNumY(n int) error { return run(&c.Device, "SetNumY", Int(n)) }

func (c *Camera) PercentCompleted() (int, error) {
	return invoke[int](&c.Device, "PercentCompleted")
}

// PixelSizeX in microns.
func (c *Camera) PixelSizeX() (float64, error) {
	return invoke[float64](&c.Device, "PixelSizeX")
}

// PixelSizeY in microns.
func (c *Camera) PixelSizeY() (float64, error) {
	return invoke[float64](&c.Device, "PixelSizeY")
}

func (c *Camera) ReadoutMode() (int, error) {
	return invoke[int](&c.Device, "ReadoutMode")
}

func (c *Camera) SetReadoutMode(mode int) error {
	return run(&c.Device, "SetReadoutMode", Int(mode))
}

func (c *Camera) ReadoutModes() ([]string, error) {
	return invoke[[]string](&c.Device, "ReadoutModes")
}

func (c *Camera) SensorName() (string, error) {
	return invoke[string](&c.Device, "SensorName")
}

func (c *Camera) SensorType() (SensorType, error) {
	return invoke[SensorType](&c.Device, "SensorType")
}

// CCDTemperatureSetpoint is the cooler target temperature in degrees
// Celsius (the setccdtemperature property).
func (c *Camera) CCDTemperatureSetpoint() (float64, error) {
	return invoke[float64](&c.Device, "CCDTemperatureSetpoint")
}

func (c *Camera) SetCCDTemperatureSetpoint(celsius float64) error {
	return run(&c.Device, "SetCCDTemperatureSetpoint", Float(celsius))
}

func (c *Camera) StartX() (int, error)  { return invoke[int](&c.Device, "StartX") }
func (c *Camera) SetStartX(x int) error { return run(&c.Device, "SetStartX", Int(x)) }
func (c *Camera) StartY() (int, error)  { return invoke[int](&c.Device, "StartY") }
func (c *Camera) SetStartY(y int) error { return run(&c.Device, "SetStartY", Int(y)) }

func (c *Camera) AbortExposure() error {
	return run(&c.Device, "AbortExposure")
}

func (c *Camera) PulseGuide(direction GuideDirection, duration time.Duration) error {
	return run(&c.Device, "PulseGuide", Int(int(direction)), Int(int(duration.Milliseconds())))
}

// StartExposure begins an exposure of duration seconds. light is false for
// dark frames. Poll ImageReady to find out when the image can be read.
func (c *Camera) StartExposure(duration float64, light bool) error {
	return run(&c.Device, "StartExposure", Float(duration), Bool(light))
}

func (c *Camera) StopExposure() error {
	return run(&c.Device, "StopExposure")
}
