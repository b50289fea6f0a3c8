package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// ParseSelection reads continent, country, start and end from query values.
// Absent parameters keep the fallback's value; an explicitly empty continent
// or country clears it. Years must be integers.
func ParseSelection(q url.Values, fallback domain.Selection) (domain.Selection, error) {
	sel := fallback
	if q.Has("continent") {
		sel.Continent = strings.TrimSpace(q.Get("continent"))
	}
	if q.Has("country") {
		sel.Country = strings.TrimSpace(q.Get("country"))
	}

	var err error
	if sel.Years.Start, err = parseYearParam(q, "start", fallback.Years.Start); err != nil {
		return domain.Selection{}, err
	}
	if sel.Years.End, err = parseYearParam(q, "end", fallback.Years.End); err != nil {
		return domain.Selection{}, err
	}
	if err := sel.Years.Validate(); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

func parseYearParam(q url.Values, name string, fallback int) (int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer year", ErrInvalidSelection, name, s)
	}
	return v, nil
}
