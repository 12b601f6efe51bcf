package master

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

func newUpstream(t *testing.T, r chi.Router) (*apiclient.Client, context.Context) {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	sc := session.NewContext(session.NewMemoryStore(), "sid-1", time.Hour)
	ctx := session.WithContext(context.Background(), sc)
	require.NoError(t, sc.SetToken(ctx, "tok"))
	return apiclient.New(srv.URL, 5*time.Second), ctx
}

const departmentsBody = `{"data": [
	{"id": 1, "name": "Engineering", "description": "Builds things", "status": "active"},
	{"id": 2, "name": "finance", "description": "Money", "status": "active"},
	{"id": 3, "name": "Archive", "description": "Old engineering team", "status": "inactive"}
]}`

func TestDepartmentService_ListSearchesAndSorts(t *testing.T) {
	r := chi.NewRouter()
	r.Get(departmentsPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, departmentsBody)
	})
	client, ctx := newUpstream(t, r)
	svc := NewDepartmentService(client)

	res, err := svc.List(ctx, listquery.Query{PerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"Archive", "Engineering", "finance"},
		[]string{res.Items[0].Name, res.Items[1].Name, res.Items[2].Name})

	res, err = svc.List(ctx, listquery.Query{Search: "ENGINEERING", PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalItems)
}

func TestDepartmentService_CreateValidatesBeforeUpstream(t *testing.T) {
	var posts atomic.Int32
	r := chi.NewRouter()
	r.Post(departmentsPath, func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data": {"id": 10, "name": %q, "status": %q}}`, body["name"], body["status"])
	})
	client, ctx := newUpstream(t, r)
	svc := NewDepartmentService(client)

	_, err := svc.Create(ctx, department.DepartmentRequest{Name: " "})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, int32(0), posts.Load())

	created, err := svc.Create(ctx, department.DepartmentRequest{Name: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, "10", created.ID)
	assert.Equal(t, department.StatusActive, created.Status)
	assert.Equal(t, int32(1), posts.Load())
}

func TestDepartmentService_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get(departmentsPath+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Department not found"}`)
	})
	client, ctx := newUpstream(t, r)

	_, err := NewDepartmentService(client).Get(ctx, "99")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentService_ActiveNamesSharesOneLoad(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	r := chi.NewRouter()
	r.Get(departmentsPath, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		<-release
		fmt.Fprint(w, departmentsBody)
	})
	client, ctx := newUpstream(t, r)
	svc := NewDepartmentService(client)

	var wg sync.WaitGroup
	results := make(chan []string, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names, err := svc.ActiveNames(ctx)
			assert.NoError(t, err)
			results <- names
		}()
	}
	<-entered
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for names := range results {
		assert.Equal(t, []string{"Engineering", "finance"}, names)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestDepartmentService_ActiveNamesSurvivesCanceledCaller(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get(departmentsPath, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		<-release
		fmt.Fprint(w, departmentsBody)
	})
	client, ctx := newUpstream(t, r)
	svc := NewDepartmentService(client)

	firstCtx, cancel := context.WithCancel(ctx)
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.ActiveNames(firstCtx)
		firstErr <- err
	}()
	<-entered

	second := make(chan []string, 1)
	go func() {
		names, err := svc.ActiveNames(ctx)
		assert.NoError(t, err)
		second <- names
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Equal(t, []string{"Engineering", "finance"}, <-second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLeaveTypeService_WritesBothDayFields(t *testing.T) {
	r := chi.NewRouter()
	r.Put(leaveTypesPath+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "7", chi.URLParam(r, "id"))
		assert.Equal(t, float64(14), body["default_days"])
		assert.Equal(t, float64(14), body["days_per_year"])
		fmt.Fprint(w, `{"id": 7, "name": "Annual", "code": "AL", "is_paid": 1, "days_per_year": 14}`)
	})
	client, ctx := newUpstream(t, r)

	lt, err := NewLeaveTypeService(client).Update(ctx, "7", leave.LeaveTypeRequest{Name: "Annual", Code: "al", IsPaid: true, DefaultDays: 14})
	require.NoError(t, err)
	assert.Equal(t, 14, lt.DefaultDays)
	assert.True(t, lt.IsPaid)
}

func TestCatalogService_RoutesByKind(t *testing.T) {
	r := chi.NewRouter()
	r.Get(benefitsPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "name": "Meal", "amount": "50000", "amountType": "fixed"}]`)
	})
	r.Get(deductionsPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": 2, "name": "Tax", "amount": 5, "amount_type": "percentage"}], "last_page": 1}`)
	})
	r.Delete(deductionsPath+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client, ctx := newUpstream(t, r)
	svc := NewCatalogService(client)

	benefits, err := svc.List(ctx, compensation.KindBenefit, listquery.Query{})
	require.NoError(t, err)
	require.Len(t, benefits.Items, 1)
	assert.Equal(t, compensation.KindBenefit, benefits.Items[0].Kind)

	deductions, err := svc.List(ctx, compensation.KindDeduction, listquery.Query{})
	require.NoError(t, err)
	require.Len(t, deductions.Items, 1)
	assert.Equal(t, compensation.AmountPercentage, deductions.Items[0].AmountType)

	assert.NoError(t, svc.Delete(ctx, compensation.KindDeduction, "2"))

	_, err = svc.List(ctx, compensation.Kind("bonus"), listquery.Query{})
	assert.ErrorIs(t, err, compensation.ErrUnknownKind)
}

func TestResource_RequiresSession(t *testing.T) {
	client, _ := newUpstream(t, chi.NewRouter())
	_, err := NewWorkScheduleService(client).List(context.Background(), listquery.Query{})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}
