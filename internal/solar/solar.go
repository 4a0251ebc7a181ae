// Package solar resolves the fiscal moment: the date/time anchor, possibly
// tied to a solar event at a geographic location, whose metal price the levy
// is reckoned against.
package solar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/ringsaturn/tzf"
	"github.com/sj14/astral/pkg/astral"
	"go.uber.org/zap"

	"github.com/srahimian/huquq/internal/config"
	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/datetime"
)

// ErrNoLocation indicates the configuration carries neither usable
// coordinates nor a geocodable address.
var ErrNoLocation = fmt.Errorf("could not resolve a location for solar times")

// Almanac computes solar-event times for configured locations. It geocodes
// addresses through Nominatim and expresses event times in the location's
// own timezone.
type Almanac struct {
	geocoder geo.Geocoder
	finder   tzf.F
	logger   *zap.Logger
}

// NewAlmanac creates an Almanac. Building the timezone finder loads its
// embedded polygon data once per process.
func NewAlmanac(logger *zap.Logger) (*Almanac, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("init timezone finder: %w", err)
	}
	return &Almanac{
		geocoder: openstreetmap.Geocoder(),
		finder:   finder,
		logger:   logger,
	}, nil
}

// Coordinates resolves a configured location to latitude and longitude.
// Explicit coordinates win; otherwise the "city state country" address is
// geocoded.
func (a *Almanac) Coordinates(loc config.LocationConfig) (float64, float64, error) {
	if loc.Latitude != "" && loc.Longitude != "" {
		lat, err := strconv.ParseFloat(loc.Latitude, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse latitude %q: %w", loc.Latitude, err)
		}
		lon, err := strconv.ParseFloat(loc.Longitude, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse longitude %q: %w", loc.Longitude, err)
		}
		return lat, lon, nil
	}

	address := strings.TrimSpace(strings.Join([]string{loc.City, loc.State, loc.Country}, " "))
	if loc.City == "" || loc.Country == "" {
		return 0, 0, ErrNoLocation
	}
	found, err := a.geocoder.Geocode(address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", address, err)
	}
	if found == nil {
		return 0, 0, fmt.Errorf("%w: no match for address %q", ErrNoLocation, address)
	}
	a.logger.Debug("geocoded address",
		zap.String("op", "solar.Almanac.Coordinates"),
		zap.String("address", address),
		zap.Float64("lat", found.Lat),
		zap.Float64("lon", found.Lng),
	)
	return found.Lat, found.Lng, nil
}

// EventTime computes when the sun reaches the named period (dawn, sunrise,
// noon, sunset, dusk) on the given date at the given coordinates, in the
// location's timezone.
func (a *Almanac) EventTime(lat, lon float64, period string, date time.Time) (time.Time, error) {
	zone := a.finder.GetTimezoneName(lon, lat)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		a.logger.Warn("unknown timezone for coordinates, keeping local",
			zap.String("op", "solar.Almanac.EventTime"),
			zap.String("zone", zone),
		)
		loc = date.Location()
		err = nil
	}

	observer := astral.Observer{Latitude: lat, Longitude: lon}
	var t time.Time
	switch period {
	case "dawn":
		t, err = astral.Dawn(observer, date, astral.DepressionCivil)
	case "sunrise":
		t, err = astral.Sunrise(observer, date)
	case "noon":
		t = astral.Noon(observer, date)
	case "sunset":
		t, err = astral.Sunset(observer, date)
	case "dusk":
		t, err = astral.Dusk(observer, date, astral.DepressionCivil)
	default:
		return time.Time{}, fmt.Errorf("unrecognized solar period: %q", period)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("compute %s at %f,%f: %w", period, lat, lon, err)
	}
	return t.In(loc), nil
}

// Moment resolves the configured fiscal date and time into the concrete
// target moment. The fiscal date anchors to the most recently passed
// anniversary; the time is a solar period at the configured location, the
// literal "now", or a fixed clock time.
func (a *Almanac) Moment(conf *config.Configuration, now time.Time) (time.Time, error) {
	period := strings.ToLower(strings.TrimSpace(conf.Fiscal.Time))
	if period == "now" {
		return now, nil
	}

	fiscalDate, err := datetime.ParseFiscalDate(conf.Fiscal.Date, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse fiscal date: %w", err)
	}

	if config.IsSolarPeriod(period) {
		lat, lon, err := a.Coordinates(conf.Location)
		if err != nil {
			return time.Time{}, err
		}
		evt, err := a.EventTime(lat, lon, period, fiscalDate)
		if err != nil {
			return time.Time{}, err
		}
		return datetime.CombineDateTime(fiscalDate, evt), nil
	}

	clock, err := time.Parse(constants.ClockTimeLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse fiscal time: %w", err)
	}
	return datetime.CombineDateTime(fiscalDate, clock), nil
}
