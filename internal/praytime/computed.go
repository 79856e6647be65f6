package praytime

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// Calculation convention. Fixed: the app follows the MUIS (Singapore)
// convention with the Shafii asr shadow factor.
const (
	fajrAngle    = 20.0  // sun depression at dawn, degrees
	ishaAngle    = 18.0  // sun depression at nightfall, degrees
	horizonAngle = 0.833 // refraction + solar radius at rise/set
	asrFactor    = 1.0   // shadow length multiple (Shafii)
)

// SolarSource computes prayer times from solar geometry. It needs only
// coordinates and a date, so it serves as the universal fallback when the
// curated dataset has a gap.
type SolarSource struct {
	loc *time.Location
}

// NewSolarSource builds a computed source emitting times of day in loc.
func NewSolarSource(loc *time.Location) *SolarSource {
	return &SolarSource{loc: loc}
}

func (s *SolarSource) Lookup(_ context.Context, date domain.Date, c Coordinates) (domain.DailyPrayerTimes, error) {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return domain.DailyPrayerTimes{}, fmt.Errorf("invalid coordinates (%v, %v)", c.Lat, c.Lon)
	}

	// UTC offset in hours for this date in the target zone.
	_, offsetSec := date.At(12*60, s.loc).Zone()
	tz := float64(offsetSec) / 3600

	jd := julianDay(date.Year, int(date.Month), date.Day)
	// Evaluate the sun's position near local solar noon.
	decl, eqt := sunPosition(jd + 0.5 - c.Lon/360)

	noon := 12 + tz - c.Lon/15 - eqt

	fajrHA, err := hourAngle(fajrAngle, c.Lat, decl)
	if err != nil {
		return domain.DailyPrayerTimes{}, fmt.Errorf("fajr: %w", err)
	}
	riseHA, err := hourAngle(horizonAngle, c.Lat, decl)
	if err != nil {
		return domain.DailyPrayerTimes{}, fmt.Errorf("sunrise: %w", err)
	}
	ishaHA, err := hourAngle(ishaAngle, c.Lat, decl)
	if err != nil {
		return domain.DailyPrayerTimes{}, fmt.Errorf("isha: %w", err)
	}
	asrHA, err := asrHourAngle(asrFactor, c.Lat, decl)
	if err != nil {
		return domain.DailyPrayerTimes{}, fmt.Errorf("asr: %w", err)
	}

	times := domain.DailyPrayerTimes{
		Date: date,
		Times: map[domain.Prayer]domain.Minutes{
			domain.Fajr:    toMinutes(noon - fajrHA),
			domain.Sunrise: toMinutes(noon - riseHA),
			domain.Dhuhr:   toMinutes(noon),
			domain.Asr:     toMinutes(noon + asrHA),
			domain.Maghrib: toMinutes(noon + riseHA),
			domain.Isha:    toMinutes(noon + ishaHA),
		},
	}
	if err := times.Validate(); err != nil {
		return domain.DailyPrayerTimes{}, err
	}
	return times, nil
}

// julianDay returns the Julian day number for 0h UT of the given
// calendar date (Gregorian).
func julianDay(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// sunPosition returns the sun's declination (degrees) and the equation of
// time (hours) for the given Julian day, using the low-precision
// expressions from the Astronomical Almanac.
func sunPosition(jd float64) (decl, eqt float64) {
	d := jd - 2451545.0
	g := fixAngle(357.529 + 0.98560028*d) // mean anomaly
	q := fixAngle(280.459 + 0.98564736*d) // mean longitude
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))

	e := 23.439 - 0.00000036*d // obliquity of the ecliptic

	ra := datan2(dcos(e)*dsin(l), dcos(l)) / 15
	ra = fixHour(ra)

	decl = dasin(dsin(e) * dsin(l))
	eqt = fixHour(q/15 - ra)
	if eqt > 12 {
		eqt -= 24
	}
	return decl, eqt
}

// hourAngle returns the hours between solar noon and the moment the sun
// sits `angle` degrees below the horizon. Errors when the sun never
// reaches that depression on this date (high latitudes).
func hourAngle(angle, lat, decl float64) (float64, error) {
	cosH := (-dsin(angle) - dsin(lat)*dsin(decl)) / (dcos(lat) * dcos(decl))
	if cosH < -1 || cosH > 1 {
		return 0, fmt.Errorf("sun never reaches %.1f° below horizon at latitude %.2f", angle, lat)
	}
	return dacos(cosH) / 15, nil
}

// asrHourAngle returns the hours after solar noon at which an object's
// shadow equals `factor` times its height plus its noon shadow.
func asrHourAngle(factor, lat, decl float64) (float64, error) {
	alt := datan(1 / (factor + dtan(math.Abs(lat-decl))))
	cosH := (dsin(alt) - dsin(lat)*dsin(decl)) / (dcos(lat) * dcos(decl))
	if cosH < -1 || cosH > 1 {
		return 0, fmt.Errorf("no asr altitude at latitude %.2f", lat)
	}
	return dacos(cosH) / 15, nil
}

// toMinutes rounds a fractional hour-of-day to the nearest minute,
// wrapped into [0, 1440).
func toMinutes(hours float64) domain.Minutes {
	m := int(math.Round(hours * 60))
	m %= 24 * 60
	if m < 0 {
		m += 24 * 60
	}
	return domain.Minutes(m)
}

func fixAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func fixHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

const degToRad = math.Pi / 180

func dsin(d float64) float64  { return math.Sin(d * degToRad) }
func dcos(d float64) float64  { return math.Cos(d * degToRad) }
func dtan(d float64) float64  { return math.Tan(d * degToRad) }
func dasin(x float64) float64 { return math.Asin(x) / degToRad }
func dacos(x float64) float64 { return math.Acos(x) / degToRad }
func datan(x float64) float64 { return math.Atan(x) / degToRad }
func datan2(y, x float64) float64 {
	return math.Atan2(y, x) / degToRad
}
