// Package mappin positions branch pins on the static Lebanon map image.
// Coordinates are percentages of the image width and height.
package mappin

import (
	"math"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
)

// Geographic bounds used for the linear projection.
const (
	latMin = 33.05
	latMax = 34.7
	lngMin = 35.1
	lngMax = 36.65
)

// Non-white content box of the map image, in percent.
const (
	contentLeft   = 3.49
	contentRight  = 96.4
	contentTop    = 3.49
	contentBottom = 93.2
)

const (
	safeInset         = 2.25
	collisionDistance = 3.25
	collisionOffset   = 2.35
	maxAttempts       = 10
)

// Point is a position on the map image in percent.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the box pins are kept inside.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// SafeBounds returns the content box shrunk by the pin inset.
func SafeBounds() Bounds {
	return Bounds{
		XMin: contentLeft + safeInset,
		XMax: contentRight - safeInset,
		YMin: contentTop + safeInset,
		YMax: contentBottom - safeInset,
	}
}

func (b Bounds) clamp(p Point) Point {
	return Point{
		X: math.Max(b.XMin, math.Min(b.XMax, p.X)),
		Y: math.Max(b.YMin, math.Min(b.YMax, p.Y)),
	}
}

// Project maps a coordinate onto the image, clamped to the safe box.
func Project(lat, lng float64) Point {
	nx := (lng - lngMin) / (lngMax - lngMin)
	ny := (latMax - lat) / (latMax - latMin)
	return SafeBounds().clamp(Point{
		X: contentLeft + nx*(contentRight-contentLeft),
		Y: contentTop + ny*(contentBottom-contentTop),
	})
}

// Place nudges projected points so later pins do not sit on earlier ones.
// Each overlapping pin tries offsets around its projection at 45 degree steps.
func Place(projected []Point) []Point {
	safe := SafeBounds()
	placed := make([]Point, 0, len(projected))
	for _, origin := range projected {
		p := origin
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if !overlaps(placed, p) {
				break
			}
			angle := float64(attempt) * math.Pi / 4
			p = Point{
				X: origin.X + math.Cos(angle)*collisionOffset,
				Y: origin.Y + math.Sin(angle)*collisionOffset,
			}
		}
		placed = append(placed, safe.clamp(p))
	}
	return placed
}

func overlaps(placed []Point, p Point) bool {
	for _, other := range placed {
		if math.Hypot(other.X-p.X, other.Y-p.Y) < collisionDistance {
			return true
		}
	}
	return false
}

// Pin is a branch marker ready for rendering.
type Pin struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Index int    `json:"index"`
	Point
	Directions string `json:"directions"`
}

// Pins projects and places every branch in order.
func Pins(branches []catalog.Branch, directions func(catalog.Branch) string) []Pin {
	projected := make([]Point, 0, len(branches))
	for _, b := range branches {
		projected = append(projected, Project(b.Coordinates.Lat, b.Coordinates.Lng))
	}
	placed := Place(projected)
	pins := make([]Pin, 0, len(branches))
	for i, b := range branches {
		pin := Pin{Slug: b.Slug, Name: b.Name, City: b.City, Index: i, Point: placed[i]}
		if directions != nil {
			pin.Directions = directions(b)
		}
		pins = append(pins, pin)
	}
	return pins
}
