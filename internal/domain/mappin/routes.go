package mappin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
)

// Routes holds multi-stop links visiting every branch.
type Routes struct {
	Google string `json:"google"`
	Apple  string `json:"apple"`
}

func latLng(c catalog.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// AllBranchRoutes builds Google and Apple Maps routes through the branches in order.
func AllBranchRoutes(branches []catalog.Branch) Routes {
	switch len(branches) {
	case 0:
		return Routes{Google: "https://www.google.com/maps", Apple: "https://maps.apple.com/"}
	case 1:
		b := branches[0]
		return Routes{
			Google: "https://www.google.com/maps/dir/?api=1&destination=" + latLng(b.Coordinates),
			Apple:  "https://maps.apple.com/?q=" + escape(b.Name) + "&ll=" + latLng(b.Coordinates),
		}
	}

	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", latLng(branches[0].Coordinates))
	params.Set("destination", latLng(branches[len(branches)-1].Coordinates))
	if len(branches) > 2 {
		waypoints := make([]string, 0, len(branches)-2)
		for _, b := range branches[1 : len(branches)-1] {
			waypoints = append(waypoints, latLng(b.Coordinates))
		}
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}

	stops := make([]string, 0, len(branches))
	for _, b := range branches {
		stops = append(stops, latLng(b.Coordinates))
	}
	return Routes{
		Google: "https://www.google.com/maps/dir/?" + params.Encode(),
		Apple:  "https://maps.apple.com/?daddr=" + escape(strings.Join(stops, "+to:")),
	}
}

func escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
