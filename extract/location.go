package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/tgfeed"
)

// OpenStreetMapURL is the map service locations are rewritten to.
const OpenStreetMapURL = "https://www.openstreetmap.org/"

// LocationURL renders an OpenStreetMap link centered on a point. The values
// are inserted verbatim, as read from the source map link.
func LocationURL(lat, lon, zoom string) string {
	return fmt.Sprintf("%s?lat=%s&lon=%s&zoom=%s&layers=M", OpenStreetMapURL, lat, lon, zoom)
}

// ParseMapLink reads latitude, longitude and zoom from a map link whose
// query carries q=<lat>,<lon> and z=<zoom>.
// Returns EMALFORMEDMEDIA if either parameter is absent or q is not a pair.
func ParseMapLink(link string) (lat, lon, zoom string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "invalid map link %q: %v", link, err)
	}
	query := u.Query()

	q := query.Get("q")
	if q == "" {
		return "", "", "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "map link %q has no q parameter", link)
	}
	zoom = strings.TrimSpace(query.Get("z"))
	if zoom == "" {
		return "", "", "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "map link %q has no z parameter", link)
	}

	parts := strings.Split(q, ",")
	if len(parts) != 2 {
		return "", "", "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "map link %q: q is not a lat,lon pair", link)
	}
	lat, lon = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lat == "" || lon == "" {
		return "", "", "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "map link %q: q is not a lat,lon pair", link)
	}

	return lat, lon, zoom, nil
}
