package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// periodQuery carries the validated query parameters for period reports.
type periodQuery struct {
	CompanyID int64     `validate:"required,gt=0"`
	From      time.Time `validate:"required"`
	To        time.Time `validate:"required,gtefield=From"`
}

// asOfQuery carries the validated query parameters for snapshot reports.
type asOfQuery struct {
	CompanyID int64     `validate:"required,gt=0"`
	AsOf      time.Time `validate:"required"`
}

func parsePeriodQuery(r *http.Request, validate *validator.Validate) (periodQuery, error) {
	var q periodQuery
	q.CompanyID, _ = strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
	if raw := r.URL.Query().Get("from"); raw != "" {
		q.From, _ = time.Parse(dateLayout, raw)
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		q.To, _ = time.Parse(dateLayout, raw)
	}
	return q, validate.Struct(q)
}

func parseAsOfQuery(r *http.Request, validate *validator.Validate) (asOfQuery, error) {
	var q asOfQuery
	q.CompanyID, _ = strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		q.AsOf, _ = time.Parse(dateLayout, raw)
	}
	return q, validate.Struct(q)
}

func parseCompanyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("company_id must be a positive integer")
	}
	return id, nil
}
