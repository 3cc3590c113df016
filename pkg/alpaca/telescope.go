package alpaca

import (
	"fmt"
	"time"
)

type AlignmentMode int

const (
	AlignAltAz AlignmentMode = iota
	AlignPolar
	AlignGermanPolar
)

type EquatorialSystem int

const (
	EquatorialOther EquatorialSystem = iota
	EquatorialTopocentric
	EquatorialJ2000
	EquatorialJ2050
	EquatorialB1950
)

type PierSide int

const (
	PierUnknown PierSide = -1
	PierEast    PierSide = 0
	PierWest    PierSide = 1
)

type DriveRate int

const (
	DriveSidereal DriveRate = iota
	DriveLunar
	DriveSolar
	DriveKing
)

type GuideDirection int

const (
	GuideNorth GuideDirection = iota
	GuideSouth
	GuideEast
	GuideWest
)

type TelescopeAxis int

const (
	AxisPrimary TelescopeAxis = iota
	AxisSecondary
	AxisTertiary
)

// AxisRate is a range of rates (degrees per second) supported by MoveAxis.
type AxisRate struct {
	Minimum float64 `json:"Minimum"`
	Maximum float64 `json:"Maximum"`
}

var telescopeOps = withDeviceOps(Operations{
	"AlignmentMode":              get("alignmentmode"),
	"Altitude":                   get("altitude"),
	"ApertureArea":               get("aperturearea"),
	"ApertureDiameter":           get("aperturediameter"),
	"AtHome":                     get("athome"),
	"AtPark":                     get("atpark"),
	"Azimuth":                    get("azimuth"),
	"CanFindHome":                get("canfindhome"),
	"CanPark":                    get("canpark"),
	"CanPulseGuide":              get("canpulseguide"),
	"CanSetDeclinationRate":      get("cansetdeclinationrate"),
	"CanSetGuideRates":           get("cansetguiderates"),
	"CanSetPark":                 get("cansetpark"),
	"CanSetPierSide":             get("cansetpierside"),
	"CanSetRightAscensionRate":   get("cansetrightascensionrate"),
	"CanSetTracking":             get("cansettracking"),
	"CanSlew":                    get("canslew"),
	"CanSlewAltAz":               get("canslewaltaz"),
	"CanSlewAltAzAsync":          get("canslewaltazasync"),
	"CanSync":                    get("cansync"),
	"CanSyncAltAz":               get("cansyncaltaz"),
	"CanUnpark":                  get("canunpark"),
	"Declination":                get("declination"),
	"DeclinationRate":            get("declinationrate"),
	"SetDeclinationRate":         put("declinationrate", floatParam("DeclinationRate")),
	"DoesRefraction":             get("doesrefraction"),
	"SetDoesRefraction":          put("doesrefraction", boolParam("DoesRefraction")),
	"EquatorialSystem":           get("equatorialsystem"),
	"FocalLength":                get("focallength"),
	"GuideRateDeclination":       get("guideratedeclination"),
	"SetGuideRateDeclination":    put("guideratedeclination", floatParam("GuideRateDeclination")),
	"GuideRateRightAscension":    get("guideraterightascension"),
	"SetGuideRateRightAscension": put("guideraterightascension", floatParam("GuideRateRightAscension")),
	"IsPulseGuiding":             get("ispulseguiding"),
	"RightAscension":             get("rightascension"),
	"RightAscensionRate":         get("rightascensionrate"),
	"SetRightAscensionRate":      put("rightascensionrate", floatParam("RightAscensionRate")),
	"SideOfPier":                 get("sideofpier"),
	"SetSideOfPier":              put("sideofpier", intParam("SideOfPier")),
	"SiderealTime":               get("siderealtime"),
	"SiteElevation":              get("siteelevation"),
	"SetSiteElevation":           put("siteelevation", floatParam("SiteElevation")),
	"SiteLatitude":               get("sitelatitude"),
	"SetSiteLatitude":            put("sitelatitude", floatParam("SiteLatitude")),
	"SiteLongitude":              get("sitelongitude"),
	"SetSiteLongitude":           put("sitelongitude", floatParam("SiteLongitude")),
	"Slewing":                    get("slewing"),
	"SlewSettleTime":             get("slewsettletime"),
	"SetSlewSettleTime":          put("slewsettletime", intParam("SlewSettleTime")),
	"TargetDeclination":          get("targetdeclination"),
	"SetTargetDeclination":       put("targetdeclination", floatParam("TargetDeclination")),
	"TargetRightAscension":       get("targetrightascension"),
	"SetTargetRightAscension":    put("targetrightascension", floatParam("TargetRightAscension")),
	"Tracking":                   get("tracking"),
	"SetTracking":                put("tracking", boolParam("Tracking")),
	"TrackingRate":               get("trackingrate"),
	"SetTrackingRate":            put("trackingrate", intParam("TrackingRate")),
	"TrackingRates":              get("trackingrates"),
	"UTCDate":                    get("utcdate"),
	"SetUTCDate":                 put("utcdate", stringParam("UTCDate")),

	"AbortSlew":              put("abortslew"),
	"AxisRates":              get("axisrates", intParam("Axis")),
	"CanMoveAxis":            get("canmoveaxis", intParam("Axis")),
	"DestinationSideOfPier":  get("destinationsideofpier", floatParam("RightAscension"), floatParam("Declination")),
	"FindHome":               put("findhome"),
	"MoveAxis":               put("moveaxis", intParam("Axis"), floatParam("Rate")),
	"Park":                   put("park"),
	"PulseGuide":             put("pulseguide", intParam("Direction"), intParam("Duration")),
	"SetPark":                put("setpark"),
	"SlewToAltAz":            put("slewtoaltaz", floatParam("Azimuth"), floatParam("Altitude")),
	"SlewToAltAzAsync":       put("slewtoaltazasync", floatParam("Azimuth"), floatParam("Altitude")),
	"SlewToCoordinates":      put("slewtocoordinates", floatParam("RightAscension"), floatParam("Declination")),
	"SlewToCoordinatesAsync": put("slewtocoordinatesasync", floatParam("RightAscension"), floatParam("Declination")),
	"SlewToTarget":           put("slewtotarget"),
	"SlewToTargetAsync":      put("slewtotargetasync"),
	"SyncToAltAz":            put("synctoaltaz", floatParam("Azimuth"), floatParam("Altitude")),
	"SyncToCoordinates":      put("synctocoordinates", floatParam("RightAscension"), floatParam("Declination")),
	"SyncToTarget":           put("synctotarget"),
	"Unpark":                 put("unpark"),
})

// Telescope controls a telescope mount.
type Telescope struct {
	Device
}

func NewTelescope(address string, number int, opts ...Option) (*Telescope, error) {
	dev, err := newDevice(TypeTelescope, address, number, telescopeOps, opts)
	if err != nil {
		return nil, err
	}
	return &Telescope{Device: dev}, nil
}

func (t *Telescope) AlignmentMode() (AlignmentMode, error) {
	return invoke[AlignmentMode](&t.Device, "AlignmentMode")
}

// Altitude of the mount in degrees, positive up.
func (t *Telescope) Altitude() (float64, error) {
	return invoke[float64](&t.Device, "Altitude")
}

// ApertureArea in square meters.
func (t *Telescope) ApertureArea() (float64, error) {
	return invoke[float64](&t.Device, "ApertureArea")
}

// ApertureDiameter in meters.
func (t *Telescope) ApertureDiameter() (float64, error) {
	return invoke[float64](&t.Device, "ApertureDiameter")
}

func (t *Telescope) AtHome() (bool, error) { return invoke[bool](&t.Device, "AtHome") }
func (t *Telescope) AtPark() (bool, error) { return invoke[bool](&t.Device, "AtPark") }

// Azimuth in degrees, North-referenced, positive East/clockwise.
func (t *Telescope) Azimuth() (float64, error) {
	return invoke[float64](&t.Device, "Azimuth")
}

func (t *Telescope) CanFindHome() (bool, error)   { return invoke[bool](&t.Device, "CanFindHome") }
func (t *Telescope) CanPark() (bool, error)       { return invoke[bool](&t.Device, "CanPark") }
func (t *Telescope) CanPulseGuide() (bool, error) { return invoke[bool](&t.Device, "CanPulseGuide") }

func (t *Telescope) CanSetDeclinationRate() (bool, error) {
	return invoke[bool](&t.Device, "CanSetDeclinationRate")
}

func (t *Telescope) CanSetGuideRates() (bool, error) {
	return invoke[bool](&t.Device, "CanSetGuideRates")
}

func (t *Telescope) CanSetPark() (bool, error)     { return invoke[bool](&t.Device, "CanSetPark") }
func (t *Telescope) CanSetPierSide() (bool, error) { return invoke[bool](&t.Device, "CanSetPierSide") }

func (t *Telescope) CanSetRightAscensionRate() (bool, error) {
	return invoke[bool](&t.Device, "CanSetRightAscensionRate")
}

func (t *Telescope) CanSetTracking() (bool, error) { return invoke[bool](&t.Device, "CanSetTracking") }
func (t *Telescope) CanSlew() (bool, error)        { return invoke[bool](&t.Device, "CanSlew") }
func (t *Telescope) CanSlewAltAz() (bool, error)   { return invoke[bool](&t.Device, "CanSlewAltAz") }

func (t *Telescope) CanSlewAltAzAsync() (bool, error) {
	return invoke[bool](&t.Device, "CanSlewAltAzAsync")
}

func (t *Telescope) CanSync() (bool, error)      { return invoke[bool](&t.Device, "CanSync") }
func (t *Telescope) CanSyncAltAz() (bool, error) { return invoke[bool](&t.Device, "CanSyncAltAz") }
func (t *Telescope) CanUnpark() (bool, error)    { return invoke[bool](&t.Device, "CanUnpark") }

// Declination of the mount in degrees.
func (t *Telescope) Declination() (float64, error) {
	return invoke[float64](&t.Device, "Declination")
}

// DeclinationRate is the declination tracking rate in arcseconds per second.
func (t *Telescope) DeclinationRate() (float64, error) {
	return invoke[float64](&t.Device, "DeclinationRate")
}

func (t *Telescope) SetDeclinationRate(rate float64) error {
	return run(&t.Device, "SetDeclinationRate", Float(rate))
}

func (t *Telescope) DoesRefraction() (bool, error) {
	return invoke[bool](&t.Device, "DoesRefraction")
}

func (t *Telescope) SetDoesRefraction(refraction bool) error {
	return run(&t.Device, "SetDoesRefraction", Bool(refraction))
}

func (t *Telescope) EquatorialSystem() (EquatorialSystem, error) {
	return invoke[EquatorialSystem](&t.Device, "EquatorialSystem")
}

// FocalLength in meters.
func (t *Telescope) FocalLength() (float64, error) {
	return invoke[float64](&t.Device, "FocalLength")
}

func (t *Telescope) GuideRateDeclination() (float64, error) {
	return invoke[float64](&t.Device, "GuideRateDeclination")
}

func (t *Telescope) SetGuideRateDeclination(rate float64) error {
	return run(&t.Device, "SetGuideRateDeclination", Float(rate))
}

func (t *Telescope) GuideRateRightAscension() (float64, error) {
	return invoke[float64](&t.Device, "GuideRateRightAscension")
}

func (t *Telescope) SetGuideRateRightAscension(rate float64) error {
	return run(&t.Device, "SetGuideRateRightAscension", Float(rate))
}

func (t *Telescope) IsPulseGuiding() (bool, error) {
	return invoke[bool](&t.Device, "IsPulseGuiding")
}

// RightAscension of the mount in hours.
func (t *Telescope) RightAscension() (float64, error) {
	return invoke[float64](&t.Device, "RightAscension")
}

// RightAscensionRate is the RA tracking offset in seconds per sidereal
// second.
func (t *Telescope) RightAscensionRate() (float64, error) {
	return invoke[float64](&t.Device, "RightAscensionRate")
}

func (t *Telescope) SetRightAscensionRate(rate float64) error {
	return run(&t.Device, "SetRightAscensionRate", Float(rate))
}

func (t *Telescope) SideOfPier() (PierSide, error) {
	return invoke[PierSide](&t.Device, "SideOfPier")
}

func (t *Telescope) SetSideOfPier(side PierSide) error {
	return run(&t.Device, "SetSideOfPier", Int(int(side)))
}

// SiderealTime is the local apparent sidereal time in hours.
func (t *Telescope) SiderealTime() (float64, error) {
	return invoke[float64](&t.Device, "SiderealTime")
}

// SiteElevation in meters above mean sea level.
func (t *Telescope) SiteElevation() (float64, error) {
	return invoke[float64](&t.Device, "SiteElevation")
}

func (t *Telescope) SetSiteElevation(elevation float64) error {
	return run(&t.Device, "SetSiteElevation", Float(elevation))
}

func (t *Telescope) SiteLatitude() (float64, error) {
	return invoke[float64](&t.Device, "SiteLatitude")
}

func (t *Telescope) SetSiteLatitude(latitude float64) error {
	return run(&t.Device, "SetSiteLatitude", Float(latitude))
}

func (t *Telescope) SiteLongitude() (float64, error) {
	return invoke[float64](&t.Device, "SiteLongitude")
}

func (t *Telescope) SetSiteLongitude(longitude float64) error {
	return run(&t.Device, "SetSiteLongitude", Float(longitude))
}

func (t *Telescope) Slewing() (bool, error) {
	return invoke[bool](&t.Device, "Slewing")
}

// SlewSettleTime in seconds.
func (t *Telescope) SlewSettleTime() (int, error) {
	return invoke[int](&t.Device, "SlewSettleTime")
}

func (t *Telescope) SetSlewSettleTime(seconds int) error {
	return run(&t.Device, "SetSlewSettleTime", Int(seconds))
}

func (t *Telescope) TargetDeclination() (float64, error) {
	return invoke[float64](&t.Device, "TargetDeclination")
}

func (t *Telescope) SetTargetDeclination(dec float64) error {
	return run(&t.Device, "SetTargetDeclination", Float(dec))
}

func (t *Telescope) TargetRightAscension() (float64, error) {
	return invoke[float64](&t.Device, "TargetRightAscension")
}

func (t *Telescope) SetTargetRightAscension(ra float64) error {
	return run(&t.Device, "SetTargetRightAscension", Float(ra))
}

func (t *Telescope) Tracking() (bool, error) {
	return invoke[bool](&t.Device, "Tracking")
}

func (t *Telescope) SetTracking(tracking bool) error {
	return run(&t.Device, "SetTracking", Bool(tracking))
}

func (t *Telescope) TrackingRate() (DriveRate, error) {
	return invoke[DriveRate](&t.Device, "TrackingRate")
}

func (t *Telescope) SetTrackingRate(rate DriveRate) error {
	return run(&t.Device, "SetTrackingRate", Int(int(rate)))
}

func (t *Telescope) TrackingRates() ([]DriveRate, error) {
	return invoke[[]DriveRate](&t.Device, "TrackingRates")
}

// UTCDate reads the mount's clock.
func (t *Telescope) UTCDate() (time.Time, error) {
	s, err := invoke[string](&t.Device, "UTCDate")
	if err != nil {
		return time.Time{}, err
	}
	return ParseUTCDate(s)
}

// SetUTCDate sets the mount's clock. value is either a preformatted string,
// sent unchanged, or a time.Time, sent in ISO 8601 form. Anything else fails
// with a *TypeMismatchError without contacting the server.
func (t *Telescope) SetUTCDate(value any) error {
	var date string
	switch v := value.(type) {
	case string:
		date = v
	case time.Time:
		date = FormatUTCDate(v)
	case *time.Time:
		if v == nil {
			return &TypeMismatchError{Name: "SetUTCDate.UTCDate", Want: "string or time.Time", Got: "nil"}
		}
		date = FormatUTCDate(*v)
	default:
		return &TypeMismatchError{Name: "SetUTCDate.UTCDate", Want: "string or time.Time", Got: fmt.Sprintf("%T", value)}
	}
	return run(&t.Device, "SetUTCDate", String(date))
}

// AbortSlew immediately stops a slew in progress.
func (t *Telescope) AbortSlew() error {
	return run(&t.Device, "AbortSlew")
}

// AxisRates returns the rates at which the axis can be moved with MoveAxis.
func (t *Telescope) AxisRates(axis TelescopeAxis) ([]AxisRate, error) {
	return invoke[[]AxisRate](&t.Device, "AxisRates", Int(int(axis)))
}

func (t *Telescope) CanMoveAxis(axis TelescopeAxis) (bool, error) {
	return invoke[bool](&t.Device, "CanMoveAxis", Int(int(axis)))
}

// DestinationSideOfPier predicts the pier side a German equatorial mount
// will end up on after slewing to the given coordinates.
func (t *Telescope) DestinationSideOfPier(ra, dec float64) (PierSide, error) {
	return invoke[PierSide](&t.Device, "DestinationSideOfPier", Float(ra), Float(dec))
}

func (t *Telescope) FindHome() error {
	return run(&t.Device, "FindHome")
}

// MoveAxis moves an axis at rate degrees per second. Zero stops it.
func (t *Telescope) MoveAxis(axis TelescopeAxis, rate float64) error {
	return run(&t.Device, "MoveAxis", Int(int(axis)), Float(rate))
}

func (t *Telescope) Park() error {
	return run(&t.Device, "Park")
}

// PulseGuide moves the mount in direction for duration at the guide rate.
func (t *Telescope) PulseGuide(direction GuideDirection, duration time.Duration) error {
	return run(&t.Device, "PulseGuide", Int(int(direction)), Int(int(duration.Milliseconds())))
}

func (t *Telescope) SetPark() error {
	return run(&t.Device, "SetPark")
}

func (t *Telescope) SlewToAltAz(azimuth, altitude float64) error {
	return run(&t.Device, "SlewToAltAz", Float(azimuth), Float(altitude))
}

func (t *Telescope) SlewToAltAzAsync(azimuth, altitude float64) error {
	return run(&t.Device, "SlewToAltAzAsync", Float(azimuth), Float(altitude))
}

func (t *Telescope) SlewToCoordinates(ra, dec float64) error {
	return run(&t.Device, "SlewToCoordinates", Float(ra), Float(dec))
}

func (t *Telescope) SlewToCoordinatesAsync(ra, dec float64) error {
	return run(&t.Device, "SlewToCoordinatesAsync", Float(ra), Float(dec))
}

func (t *Telescope) SlewToTarget() error {
	return run(&t.Device, "SlewToTarget")
}

func (t *Telescope) SlewToTargetAsync() error {
	return run(&t.Device, "SlewToTargetAsync")
}

func (t *Telescope) SyncToAltAz(azimuth, altitude float64) error {
	return run(&t.Device, "SyncToAltAz", Float(azimuth), Float(altitude))
}

func (t *Telescope) SyncToCoordinates(ra, dec float64) error {
	return run(&t.Device, "SyncToCoordinates", Float(ra), Float(dec))
}

func (t *Telescope) SyncToTarget() error {
	return run(&t.Device, "SyncToTarget")
}

func (t *Telescope) Unpark() error {
	return run(&t.Device, "Unpark")
}
