package geo

import "math"

// earthRadiusMeters is the mean Earth radius used for great-circle
// distance. This is the radius the budget ledger is denominated in —
// keep it distinct from cartesianRadiusMeters, which projects onto a
// different reference sphere for nearest-neighbour indexing.
const earthRadiusMeters = 6_371_010.0

// cartesianRadiusMeters is the sphere radius used for the ECEF-style
// projection consumed by the k-NN index. A different constant from
// earthRadiusMeters on purpose: Cartesian distance here is only ever
// used for ordering (nearest-neighbour, queue priority), never for the
// budget ledger, so it is not required to share the haversine radius.
const cartesianRadiusMeters = 6_378_137.0

// Point is a Cartesian coordinate in 3-D space, the projection of a
// (lon, lat) pair used for nearest-neighbour indexing and bounding
// boxes.
type Point struct {
	X, Y, Z float64
}

// Cartesian projects a (lon, lat) pair in decimal degrees onto a
// sphere of radius cartesianRadiusMeters, standard geodetic-to-ECEF
// with no ellipsoidal flattening.
func Cartesian(lon, lat float64) Point {
	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180
	cosLat := math.Cos(latR)
	return Point{
		X: cartesianRadiusMeters * cosLat * math.Cos(lonR),
		Y: cartesianRadiusMeters * cosLat * math.Sin(lonR),
		Z: cartesianRadiusMeters * math.Sin(latR),
	}
}

// SqDist3D returns the squared Euclidean distance between two
// Cartesian points. Used for nearest-neighbour ordering and queue
// priority, where it is monotone in great-circle distance for nearby
// points and avoids trigonometric cost per comparison.
func SqDist3D(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// BBox returns the axis-aligned bounding box of two Cartesian points
// in the XY plane, (xmin, ymin, xmax, ymax). Callers must use this
// same projection consistently for both rectangle-index storage and
// queries — mixing projections breaks overlap tests silently.
func BBox(p, q Point) (xmin, ymin, xmax, ymax float64) {
	xmin, xmax = p.X, q.X
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	ymin, ymax = p.Y, q.Y
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return xmin, ymin, xmax, ymax
}

// Haversine returns the great-circle distance in meters between two
// points on a sphere of radius earthRadiusMeters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointToSegmentDist computes the perpendicular distance from point P to segment AB,
// and returns the projection ratio along AB (clamped to [0,1]).
// dist is in meters, ratio is in [0.0, 1.0].
func PointToSegmentDist(pLat, pLon, aLat, aLon, bLat, bLon float64) (dist float64, ratio float64) {
	// Work in equirectangular projection (good enough for grid-scale extents).
	cosLat := math.Cos((aLat+bLat) / 2 * math.Pi / 180)

	// Convert to approximate planar coordinates (degrees, longitude scaled by cos(lat)).
	ax := aLon * cosLat
	ay := aLat
	bx := bLon * cosLat
	by := bLat
	px := pLon * cosLat
	py := pLat

	// Check for degenerate segment using original coordinates.
	if aLat == bLat && aLon == bLon {
		return Haversine(pLat, pLon, aLat, aLon), 0
	}

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return Haversine(pLat, pLon, aLat, aLon), 0
	}

	// Project P onto line AB, clamp to [0,1].
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	// Closest point on segment in original coordinates.
	closeLat := aLat + t*(bLat-aLat)
	closeLon := aLon + t*(bLon-aLon)

	return Haversine(pLat, pLon, closeLat, closeLon), t
}
