package domain

// Preference selects the route weighting.
type Preference string

// Route preferences.
const (
	PreferenceFastest     Preference = "fastest"
	PreferenceShortest    Preference = "shortest"
	PreferenceRecommended Preference = "recommended"
)

// Units is the distance unit used in responses.
type Units string

// Distance units.
const (
	UnitsMeters     Units = "m"
	UnitsKilometers Units = "km"
	UnitsMiles      Units = "mi"
)

// InstructionsFormat is the markup used for turn instructions.
type InstructionsFormat string

// Instruction formats.
const (
	InstructionsText InstructionsFormat = "text"
	InstructionsHTML InstructionsFormat = "html"
)

// GeometryFormat is the wire representation of route geometry.
type GeometryFormat string

// Geometry formats.
const (
	GeometryEncodedPolyline GeometryFormat = "encodedpolyline"
	GeometryGeoJSON         GeometryFormat = "geojson"
	GeometryPlain           GeometryFormat = "plain"
)

// ResponseType selects the response envelope.
type ResponseType string

// Response envelopes.
const (
	ResponseJSON    ResponseType = "json"
	ResponseGeoJSON ResponseType = "geojson"
)

// ExtraInfo names an auxiliary per-segment attribute.
type ExtraInfo string

// Extra info tags.
const (
	ExtraSteepness        ExtraInfo = "steepness"
	ExtraSuitability      ExtraInfo = "suitability"
	ExtraSurface          ExtraInfo = "surface"
	ExtraWayCategory      ExtraInfo = "waycategory"
	ExtraWayType          ExtraInfo = "waytype"
	ExtraTollways         ExtraInfo = "tollways"
	ExtraTrailDifficulty  ExtraInfo = "traildifficulty"
	ExtraOSMID            ExtraInfo = "osmid"
	ExtraRoadRestrictions ExtraInfo = "roadaccessrestrictions"
	ExtraCountryInfo      ExtraInfo = "countryinfo"
	ExtraGreen            ExtraInfo = "green"
	ExtraNoise            ExtraInfo = "noise"
)

// AvoidFeature names a road or terrain attribute a route may avoid.
type AvoidFeature string

// Avoidable features.
const (
	AvoidHighways     AvoidFeature = "highways"
	AvoidTollways     AvoidFeature = "tollways"
	AvoidFerries      AvoidFeature = "ferries"
	AvoidTunnels      AvoidFeature = "tunnels"
	AvoidPavedRoads   AvoidFeature = "pavedroads"
	AvoidUnpavedRoads AvoidFeature = "unpavedroads"
	AvoidTracks       AvoidFeature = "tracks"
	AvoidFords        AvoidFeature = "fords"
	AvoidSteps        AvoidFeature = "steps"
	AvoidHills        AvoidFeature = "hills"
)

// AvoidBorders controls border crossings.
type AvoidBorders string

// Border crossing policies.
const (
	BordersAll        AvoidBorders = "all"
	BordersControlled AvoidBorders = "controlled"
	BordersNone       AvoidBorders = "none"
)

// VehicleType refines the heavy-goods profile.
type VehicleType string

// Heavy-goods vehicle types.
const (
	VehicleHGV          VehicleType = "hgv"
	VehicleBus          VehicleType = "bus"
	VehicleAgricultural VehicleType = "agricultural"
	VehicleDelivery     VehicleType = "delivery"
	VehicleForestry     VehicleType = "forestry"
	VehicleGoods        VehicleType = "goods"
)

type enumSet[T ~string] map[T]struct{}

func newEnumSet[T ~string](values ...T) enumSet[T] {
	s := make(enumSet[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s enumSet[T]) parse(v string) (T, bool) {
	_, ok := s[T(v)]
	return T(v), ok
}

var (
	preferences = newEnumSet(PreferenceFastest, PreferenceShortest, PreferenceRecommended)
	units       = newEnumSet(UnitsMeters, UnitsKilometers, UnitsMiles)
	instrFmts   = newEnumSet(InstructionsText, InstructionsHTML)
	geomFmts    = newEnumSet(GeometryEncodedPolyline, GeometryGeoJSON, GeometryPlain)
	extraInfos  = newEnumSet(
		ExtraSteepness, ExtraSuitability, ExtraSurface, ExtraWayCategory,
		ExtraWayType, ExtraTollways, ExtraTrailDifficulty, ExtraOSMID,
		ExtraRoadRestrictions, ExtraCountryInfo, ExtraGreen, ExtraNoise,
	)
	avoidFeatures = newEnumSet(
		AvoidHighways, AvoidTollways, AvoidFerries, AvoidTunnels, AvoidPavedRoads,
		AvoidUnpavedRoads, AvoidTracks, AvoidFords, AvoidSteps, AvoidHills,
	)
	avoidBorders = newEnumSet(BordersAll, BordersControlled, BordersNone)
	vehicleTypes = newEnumSet(
		VehicleHGV, VehicleBus, VehicleAgricultural, VehicleDelivery,
		VehicleForestry, VehicleGoods,
	)
)

// ParsePreference reports whether s is a known preference.
func ParsePreference(s string) (Preference, bool) { return preferences.parse(s) }

// ParseUnits reports whether s is a known distance unit.
func ParseUnits(s string) (Units, bool) { return units.parse(s) }

// ParseInstructionsFormat reports whether s is a known instruction format.
func ParseInstructionsFormat(s string) (InstructionsFormat, bool) { return instrFmts.parse(s) }

// ParseGeometryFormat reports whether s is a known geometry format.
func ParseGeometryFormat(s string) (GeometryFormat, bool) { return geomFmts.parse(s) }

// ParseExtraInfo reports whether s is a known extra info tag.
func ParseExtraInfo(s string) (ExtraInfo, bool) { return extraInfos.parse(s) }

// ParseAvoidFeature reports whether s is a known avoidable feature.
func ParseAvoidFeature(s string) (AvoidFeature, bool) { return avoidFeatures.parse(s) }

// ParseAvoidBorders reports whether s is a known border policy.
func ParseAvoidBorders(s string) (AvoidBorders, bool) { return avoidBorders.parse(s) }

// ParseVehicleType reports whether s is a known vehicle type.
func ParseVehicleType(s string) (VehicleType, bool) { return vehicleTypes.parse(s) }
