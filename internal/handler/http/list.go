package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

// Names of the list views whose navigation state is kept per session.
const (
	listEmployees         = "employees"
	listDepartments       = "departments"
	listLeaveTypes        = "leave-types"
	listWorkSchedules     = "work-schedules"
	listBenefits          = "benefits"
	listDeductions        = "deductions"
	listAttendanceHistory = "attendance-history"
)

// listQuery applies the request's list parameters to the session's pager for
// list and returns the query to run. Parameters that are absent keep their
// previous value:
//
//	search    new search text, resets to page 1
//	per_page  new page size, resets to page 1
//	sort, dir sort key and direction (asc|desc)
//	page      jump to a page
//	nav       next | prev, no-op at the bounds
//
// page and nav are ignored when the same request resets the page.
func listQuery(registry *listquery.Registry, r *http.Request, list string) (string, listquery.Query) {
	key := list
	if sc, ok := session.FromContext(r.Context()); ok {
		key = listquery.SessionKey(sc.ID(), list)
	}
	params := r.URL.Query()

	q := registry.Update(key, func(p *listquery.Pager) {
		reset := false
		if params.Has("search") {
			reset = p.SetSearch(params.Get("search"))
		}
		if n, err := strconv.Atoi(params.Get("per_page")); err == nil {
			reset = p.SetPerPage(n) || reset
		}
		if params.Has("sort") {
			p.SetSort(params.Get("sort"), listquery.SortDir(params.Get("dir")))
		}
		if reset {
			return
		}
		if n, err := strconv.Atoi(params.Get("page")); err == nil {
			p.GoTo(n)
		}
		switch params.Get("nav") {
		case "next":
			p.Next()
		case "prev":
			p.Prev()
		}
	})
	return key, q
}

// writeList records the result bounds for the pager and writes one page.
func writeList[T any](w http.ResponseWriter, registry *listquery.Registry, key string, res listquery.Result[T]) {
	registry.Observe(key, res.TotalPages)
	items := res.Items
	if items == nil {
		items = []T{}
	}
	response.SuccessWithMeta(w, items, response.PageMeta(res))
}

// decodeJSON reads the request body into dst. An empty body leaves dst as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, name string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(name+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, what+" ID is required", nil)
		return "", false
	}
	return id, true
}
