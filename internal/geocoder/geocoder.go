// Package geocoder wraps the geo-golang providers behind a small interface
// that returns locations in the shape the bootcamp model stores: a GeoJSON
// point plus the resolved address components.
package geocoder

import (
	"errors"
	"strings"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/mapquest/open"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"github.com/devcamper/api/internal/model"
)

// ErrNoResults is returned when the provider cannot resolve an address.
var ErrNoResults = errors.New("address could not be geocoded")

// Geocoder resolves free-form addresses and zipcodes to coordinates.
type Geocoder struct {
	provider geo.Geocoder
}

// New selects a provider by name. "mapquest" requires an API key; anything
// else falls back to the keyless OpenStreetMap Nominatim provider, which is
// good enough for development.
func New(provider, apiKey string) *Geocoder {
	switch strings.ToLower(provider) {
	case "mapquest":
		return &Geocoder{provider: open.Geocoder(apiKey)}
	default:
		return &Geocoder{provider: openstreetmap.Geocoder()}
	}
}

// Locate resolves an address into a Location. The reverse lookup that
// fills in the address components is best-effort: a point with coordinates
// is still returned when it fails.
func (g *Geocoder) Locate(address string) (model.Location, error) {
	loc, err := g.provider.Geocode(address)
	if err != nil {
		return model.Location{}, err
	}
	if loc == nil {
		return model.Location{}, ErrNoResults
	}
	out := model.Location{
		Type:        "Point",
		Coordinates: []float64{loc.Lng, loc.Lat},
	}
	if addr, err := g.provider.ReverseGeocode(loc.Lat, loc.Lng); err == nil && addr != nil {
		out.FormattedAddress = addr.FormattedAddress
		out.Street = strings.TrimSpace(addr.HouseNumber + " " + addr.Street)
		out.City = addr.City
		out.State = addr.State
		out.Zipcode = addr.Postcode
		out.Country = addr.Country
	}
	return out, nil
}

// Coordinates resolves a zipcode (or any address) to a lng/lat pair, the
// order MongoDB expects.
func (g *Geocoder) Coordinates(zipcode string) (lng, lat float64, err error) {
	loc, err := g.provider.Geocode(zipcode)
	if err != nil {
		return 0, 0, err
	}
	if loc == nil {
		return 0, 0, ErrNoResults
	}
	return loc.Lng, loc.Lat, nil
}
