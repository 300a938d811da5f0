package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"procurepulse/internal/dataprocessing"
	apperrors "procurepulse/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DashboardQuery is the filter selection carried in the query string
type DashboardQuery struct {
	Year      int      `validate:"omitempty,min=1900,max=9999"`
	Plants    []string `validate:"dive,required,max=64"`
	AllPlants bool
	AllGroups bool
	Groups    []string `validate:"dive,required,max=64"`
}

// ParseDashboardQuery reads and validates the selection from r. Malformed
// values are reported as 400 errors naming the parameter; a query string that
// does not decode is rejected whole.
func ParseDashboardQuery(r *http.Request) (*DashboardQuery, error) {
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, apperrors.NewWithDetails(apperrors.ErrInvalidRequest.StatusCode, apperrors.ErrInvalidRequest.ErrorCode,
			"malformed query string", err.Error())
	}
	q := &DashboardQuery{AllPlants: true, AllGroups: true}

	if raw := strings.TrimSpace(values.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.InvalidParameterError("year", err)
		}
		q.Year = year
	}

	if q.AllPlants, err = boolParam(values, "all_plants", true); err != nil {
		return nil, err
	}
	if q.AllGroups, err = boolParam(values, "all_groups", true); err != nil {
		return nil, err
	}
	q.Plants = listParam(values, "plant")
	q.Groups = listParam(values, "group")

	if err := validate.Struct(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Selection converts the query into pipeline filter choices. Explicit plant
// values win over all_plants; group values only count when all_groups is false.
func (q *DashboardQuery) Selection() dataprocessing.Selection {
	sel := dataprocessing.Selection{Year: q.Year}

	switch {
	case len(q.Plants) > 0:
		sel.Plants = dataprocessing.ExplicitPlants(q.Plants...)
	case !q.AllPlants:
		sel.Plants = dataprocessing.ExplicitPlants()
	default:
		sel.Plants = dataprocessing.AllPlants()
	}

	if q.AllGroups {
		sel.Groups = dataprocessing.AllGroups()
	} else {
		sel.Groups = dataprocessing.ExplicitGroups(q.Groups...)
	}
	return sel
}

func boolParam(values url.Values, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidParameterError(name, err)
	}
	return b, nil
}

// listParam accepts repeated parameters and comma-separated values
func listParam(values url.Values, name string) []string {
	var out []string
	for _, v := range values[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
