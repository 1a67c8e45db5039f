package prayer

import "math"

// solarPosition is the part of the sun's geometry the prayer times need.
type solarPosition struct {
	Declination float64 // degrees
	UTNoon      float64 // degrees of hour angle east of Greenwich; /15 gives UTC hours
}

// dayNumber approximates the days elapsed since 2000-01-01 12:00 UTC.
// It does not validate the date.
func dayNumber(year, month, day int) float64 {
	y := float64(year)
	m := float64(month)
	return 367*y -
		math.Floor((y+math.Floor((m+9)/12))*7/4) +
		math.Floor(275*m/9) +
		float64(day) - 730531.5
}

// solarGeometry derives the sun's declination and the UTC noon hour angle
// for an observer at the given longitude.
func solarGeometry(year, month, day int, longitude float64) solarPosition {
	d := dayNumber(year, month, day)

	meanLongitude := Normalize360(280.461 + 0.9856474*d)
	meanAnomaly := Normalize360(357.528 + 0.9856003*d)

	// Equation of center.
	lambda := Normalize360(meanLongitude +
		1.915*math.Sin(degToRad(meanAnomaly)) +
		0.02*math.Sin(degToRad(2*meanAnomaly)))

	obliquity := 23.439 - 0.0000004*d

	// atan only covers 180 degrees; put alpha in the same quadrant as lambda.
	alpha := radToDeg(math.Atan(math.Cos(degToRad(obliquity)) * math.Tan(degToRad(lambda))))
	alpha -= 360 * math.Floor(alpha/360)
	alpha += 90 * (math.Floor(lambda/90) - math.Floor(alpha/90))

	siderealTime := 100.46 + 0.985647352*d
	declination := radToDeg(math.Asin(math.Sin(degToRad(obliquity)) * math.Sin(degToRad(lambda))))

	noon := Normalize360(alpha - siderealTime)

	return solarPosition{
		Declination: declination,
		UTNoon:      noon - longitude,
	}
}
