package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/resultado/dre/internal/model"
	"github.com/resultado/dre/internal/report"
)

// statementParams are the query parameters of /reports/dre.
type statementParams struct {
	Year      int      `query:"year" validate:"gte=0,lte=9999"`
	Entities  []string `query:"entity" validate:"max=100,dive,required,max=64"`
	Query     string   `query:"q" validate:"max=200"`
	LineQuery string   `query:"line_q" validate:"max=200"`
}

// compareParams are the query parameters of /reports/dre/compare.
type compareParams struct {
	Period1   string   `query:"period1" validate:"required,datetime=2006-01"`
	Period2   string   `query:"period2" validate:"required,datetime=2006-01"`
	Mode      string   `query:"mode" validate:"omitempty,oneof=period cumulative"`
	Entities  []string `query:"entity" validate:"max=100,dive,required,max=64"`
	Query     string   `query:"q" validate:"max=200"`
	LineQuery string   `query:"line_q" validate:"max=200"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// entities accepts both entity=01&entity=02 and entity=01,02.
func entities(values url.Values) []string {
	var out []string
	for _, v := range values["entity"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func parseStatementParams(v *validator.Validate, values url.Values) (statementParams, error) {
	p := statementParams{
		Entities:  entities(values),
		Query:     values.Get("q"),
		LineQuery: values.Get("line_q"),
	}
	if s := strings.TrimSpace(values.Get("year")); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%w: year: %q is not a number", ErrValidation, s)
		}
		p.Year = year
	}
	if err := v.Struct(p); err != nil {
		return p, validationError(err)
	}
	return p, nil
}

func parseCompareParams(v *validator.Validate, values url.Values) (compareParams, error) {
	p := compareParams{
		Period1:   strings.TrimSpace(values.Get("period1")),
		Period2:   strings.TrimSpace(values.Get("period2")),
		Mode:      strings.TrimSpace(values.Get("mode")),
		Entities:  entities(values),
		Query:     values.Get("q"),
		LineQuery: values.Get("line_q"),
	}
	if err := v.Struct(p); err != nil {
		return p, validationError(err)
	}
	return p, nil
}

// query converts validated params into an engine query.
func (p compareParams) query(defaultMode report.ValueMode) (report.CompareQuery, error) {
	p1, err := model.ParsePeriod(p.Period1)
	if err != nil {
		return report.CompareQuery{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	p2, err := model.ParsePeriod(p.Period2)
	if err != nil {
		return report.CompareQuery{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	mode := defaultMode
	if p.Mode != "" {
		mode = report.ValueMode(p.Mode)
	}
	return report.CompareQuery{Period1: p1, Period2: p2, Mode: mode, LineFilter: p.LineQuery}, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), rule))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
