package reduce

import (
	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

// simplify is the recursive Ramer-Douglas-Peucker pass.
func simplify(points []track.Point, epsilon float64) []track.Point {
	if len(points) <= 2 {
		return points
	}

	first, last := points[0], points[len(points)-1]
	idx, maxDist := farthestPoint(points, 0, len(points)-1)

	if maxDist > epsilon {
		left := simplify(points[:idx+1], epsilon)
		right := simplify(points[idx:], epsilon)

		out := make([]track.Point, 0, len(left)+len(right)-1)
		out = append(out, left[:len(left)-1]...)
		return append(out, right...)
	}

	return []track.Point{first, last}
}

// simplifyIterative yields the same output as simplify using an explicit stack,
// so very long tracks cannot exhaust the goroutine stack.
func simplifyIterative(points []track.Point, epsilon float64) []track.Point {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true

	type span struct{ start, end int }
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.end-s.start < 2 {
			continue
		}

		idx, maxDist := farthestPoint(points, s.start, s.end)
		if maxDist > epsilon {
			keep[idx] = true
			stack = append(stack, span{idx, s.end}, span{s.start, idx})
		}
	}

	out := make([]track.Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// farthestPoint returns the first interior point of points[start..end] with the
// largest distance to the chord between the endpoints.
func farthestPoint(points []track.Point, start, end int) (idx int, maxDist float64) {
	idx = start
	for i := start + 1; i < end; i++ {
		if d := perpendicularDistance(points[i], points[start], points[end]); d > maxDist {
			maxDist = d
			idx = i
		}
	}
	return idx, maxDist
}

// perpendicularDistance projects p onto the infinite line through lineStart and
// lineEnd in degree space (lon as x, lat as y) and measures the haversine
// distance in meters from p to that projection.
func perpendicularDistance(p, lineStart, lineEnd track.Point) float64 {
	dx := lineEnd.Lon - lineStart.Lon
	dy := lineEnd.Lat - lineStart.Lat

	if dx == 0 && dy == 0 {
		return geo.DistanceMeters(p.Lat, p.Lon, lineStart.Lat, lineStart.Lon)
	}

	t := ((p.Lon-lineStart.Lon)*dx + (p.Lat-lineStart.Lat)*dy) / (dx*dx + dy*dy)
	closestLon := lineStart.Lon + t*dx
	closestLat := lineStart.Lat + t*dy

	return geo.DistanceMeters(p.Lat, p.Lon, closestLat, closestLon)
}

// stride keeps every 1/ratio-th point with ratio = target/(len+1), stopping at
// target points. The last pick is swapped for the final point so the track end
// survives.
func stride(points []track.Point, target int) []track.Point {
	n := len(points)
	if n <= target {
		return points
	}

	step := float64(n+1) / float64(target)
	out := make([]track.Point, 0, target)
	lastIdx := -1
	for k := 0; len(out) < target; k++ {
		idx := int(float64(k) * step)
		if idx >= n {
			break
		}
		out = append(out, points[idx])
		lastIdx = idx
	}

	if lastIdx != n-1 {
		out[len(out)-1] = points[n-1]
	}
	return out
}
