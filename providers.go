package refframe

// TimeProvider converts between the engine's internal epoch representation
// (seconds past a reference epoch) and external time scales. Grounded on
// the reference codebase's own julian-day conventions in celestial.go and
// tools.go, generalized into an interface so the providers/meeus adapter
// (and any test double) can supply it without this package depending on a
// concrete time library.
type TimeProvider interface {
	// ToJulian converts an internal epoch to a Julian day number.
	ToJulian(et float64) float64
	// FromJulian converts a Julian day number to an internal epoch.
	FromJulian(jd float64) float64
}

// EphemerisState is the raw state and covering-axes id an EphemerisProvider
// reports for one target at one epoch.
type EphemerisState struct {
	Center NodeID
	Axes   NodeID
	S      State
}

// PositionRecord names one (center, axes) coverage the provider can serve
// for a target, together with the time span it is valid over. AddEphemeris
// (points.go) calls PositionRecords at registration time to discover which
// record applies before any query is made; a target covered by more than
// one record is rejected with ErrAmbiguousEphemeris rather than silently
// picking one.
type PositionRecord struct {
	Center  NodeID
	Axes    NodeID
	StartEt float64
	EndEt   float64
}

// EphemerisProvider supplies externally-sourced states for Ephemeris-class
// points (e.g. planetary positions from an analytic or SPICE-like series),
// generalizing celestial.go's CelestialObject.HelioOrbit VSOP87/Pluto
// dispatch into a narrow interface this package can query without knowing
// which backend produced the series.
type EphemerisProvider interface {
	// PositionRecords reports the (center, axes) coverage available for
	// target, mirroring a SPICE SPK kernel's position_records() summary.
	// AddEphemeris requires exactly one record; zero means ErrDataGap, more
	// than one means the caller must disambiguate some other way (a
	// different target id, or a provider split by center/axes) since this
	// package will refuse the registration with ErrAmbiguousEphemeris.
	PositionRecords(target NodeID) ([]PositionRecord, error)
	// State returns the target's state relative to Center in EphemerisState,
	// expressed in the axes named by Axes, at epoch et, up to order.
	// Returns ErrDataGap if et falls outside the provider's covered range.
	State(target NodeID, et float64, order Order) (EphemerisState, error)
}

// PlanetaryOrientation supplies a body's orientation model (pole right
// ascension/declination and prime-meridian rate, IAU-report style),
// generalizing celestial.go's per-CelestialObject J (obliquity) fields into
// a producer any Rotating axes node can be built from.
type PlanetaryOrientation interface {
	// EulerAngles returns the 3-1-3 (RA, Dec, W) sequence angles and their
	// derivatives, truncated to order, for the body's orientation relative
	// to its reference axes at epoch et.
	EulerAngles(et float64, order Order) ([]AngleSlot, error)
}
