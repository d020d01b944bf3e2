package domain

import "sort"

// ProfileClass groups profiles that share the same option legality rules.
type ProfileClass int

// Profile classes.
const (
	ClassDriving ProfileClass = iota + 1
	ClassHeavyGoods
	ClassCycling
	ClassWalking
	ClassWheelchair
)

// String returns the class name.
func (c ProfileClass) String() string {
	switch c {
	case ClassDriving:
		return "driving"
	case ClassHeavyGoods:
		return "heavy-goods"
	case ClassCycling:
		return "cycling"
	case ClassWalking:
		return "walking"
	case ClassWheelchair:
		return "wheelchair"
	default:
		return "unknown"
	}
}

// Profile is a named routing mode.
type Profile string

// Registered profiles.
const (
	ProfileDrivingCar      Profile = "driving-car"
	ProfileDrivingHGV      Profile = "driving-hgv"
	ProfileCyclingRegular  Profile = "cycling-regular"
	ProfileCyclingRoad     Profile = "cycling-road"
	ProfileCyclingMountain Profile = "cycling-mountain"
	ProfileCyclingElectric Profile = "cycling-electric"
	ProfileFootWalking     Profile = "foot-walking"
	ProfileFootHiking      Profile = "foot-hiking"
	ProfileWheelchair      Profile = "wheelchair"
)

var profileRegistry = map[Profile]ProfileClass{
	ProfileDrivingCar:      ClassDriving,
	ProfileDrivingHGV:      ClassHeavyGoods,
	ProfileCyclingRegular:  ClassCycling,
	ProfileCyclingRoad:     ClassCycling,
	ProfileCyclingMountain: ClassCycling,
	ProfileCyclingElectric: ClassCycling,
	ProfileFootWalking:     ClassWalking,
	ProfileFootHiking:      ClassWalking,
	ProfileWheelchair:      ClassWheelchair,
}

// ProfileFromString looks a profile up in the registry. Unregistered names
// fail with InvalidParameterValue.
func ProfileFromString(s string) (Profile, error) {
	p := Profile(s)
	if _, ok := profileRegistry[p]; !ok {
		return "", NewInvalidParameterValue("profile", s)
	}
	return p, nil
}

// Class returns the profile's class, or zero for an unregistered profile.
func (p Profile) Class() ProfileClass {
	return profileRegistry[p]
}

// Profiles lists every registered profile in name order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profileRegistry))
	for p := range profileRegistry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
