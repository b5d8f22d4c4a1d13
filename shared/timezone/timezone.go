package timezone

import (
	"rental/config"
	"time"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Str("timezone", fallbackZone).Msg("No timezone configured, booking days follow UTC.")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, booking days follow UTC.")

		return
	}

	appLocation = loc
	log.Debug().Str("timezone", loc.String()).Msg("Service timezone loaded.")
}

// GetLocation returns the service timezone. It is UTC unless APP_TIMEZONE names a valid zone.
func GetLocation() *time.Location {
	return appLocation
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Parse interprets value in the service timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Day returns the calendar day of t in the service timezone as YYYY-MM-DD.
func Day(t time.Time) string {
	return Format(t, time.DateOnly)
}

// ParseDay parses a YYYY-MM-DD value as midnight in the service timezone.
func ParseDay(value string) (time.Time, error) {
	return Parse(time.DateOnly, value)
}
