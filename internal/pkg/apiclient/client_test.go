package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type item struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func TestDecode_AcceptsBothShapes(t *testing.T) {
	wrapped, err := Decode[item](json.RawMessage(`{"data":{"id":7,"name":"Sales"}}`))
	require.NoError(t, err)
	assert.Equal(t, ID("7"), wrapped.ID)
	assert.Equal(t, "Sales", wrapped.Name)

	bare, err := Decode[item](json.RawMessage(`{"id":"abc","name":"Finance"}`))
	require.NoError(t, err)
	assert.Equal(t, ID("abc"), bare.ID)
	assert.Equal(t, "Finance", bare.Name)

	withStatus, err := Decode[item](json.RawMessage(`{"success":true,"data":{"id":"x","name":"HR"}}`))
	require.NoError(t, err)
	assert.Equal(t, "HR", withStatus.Name)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode[item](json.RawMessage(`not json`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeList_Shapes(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantLen  int
		wantLast int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 1},
		{"wrapped array", `{"data":[{"id":1}]}`, 1, 1},
		{"paginated", `{"data":[{"id":1},{"id":2}],"current_page":2,"last_page":4,"per_page":2,"total":8}`, 2, 4},
		{"nested paginated", `{"data":{"data":[{"id":1}],"last_page":3}}`, 1, 3},
		{"meta paginated", `{"success":true,"data":[{"id":1}],"meta":{"page":1,"limit":20,"total_items":41,"total_pages":3}}`, 1, 3},
		{"null data", `{"data":null}`, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, err := DecodeList[item](json.RawMessage(c.body))
			require.NoError(t, err)
			assert.Len(t, page.Items, c.wantLen)
			assert.Equal(t, c.wantLast, page.LastPage)
			assert.GreaterOrEqual(t, page.CurrentPage, 1)
		})
	}
}

func TestDecodeList_RejectsScalar(t *testing.T) {
	_, err := DecodeList[item](json.RawMessage(`"nope"`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":1,"name":"me"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second).WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok-123"}))
	raw, err := c.Get(context.Background(), "/api/v1/me", nil)
	require.NoError(t, err)

	me, err := Decode[item](raw)
	require.NoError(t, err)
	assert.Equal(t, "me", me.Name)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_AnonymousHasNoAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Post(context.Background(), "/api/v1/login", map[string]string{"email": "a@b.cd"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

type failingSource struct{ err error }

func (f failingSource) Token() (*oauth2.Token, error) { return nil, f.err }

func TestClient_TokenSourceErrorPropagates(t *testing.T) {
	sentinel := errors.New("no token")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second).WithTokenSource(failingSource{err: sentinel})
	_, err := c.Get(context.Background(), "/api/v1/me", nil)
	assert.ErrorIs(t, err, sentinel)
}

func TestClient_ErrorMessages(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantFields map[string]string
	}{
		{"laravel message", http.StatusConflict, `{"message":"Already clocked out"}`, "Already clocked out", nil},
		{"structured error envelope", http.StatusUnprocessableEntity, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":{"email":"taken"}}}`, "Validation failed", map[string]string{"email": "taken"}},
		{"error string", http.StatusBadRequest, `{"error":"bad input"}`, "bad input", nil},
		{"field errors", http.StatusUnprocessableEntity, `{"message":"invalid","errors":{"email":["The email has already been taken."]}}`, "invalid", map[string]string{"email": "The email has already been taken."}},
		{"no body", http.StatusInternalServerError, ``, "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Get(context.Background(), "/x", nil)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, c.status, apiErr.StatusCode)
			assert.Equal(t, c.wantMsg, apiErr.Message)
			assert.Equal(t, c.wantFields, apiErr.Fields)
		})
	}
}

func TestAPIError_StatusSentinels(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusNotFound}, ErrNotFound)
	assert.NotErrorIs(t, &APIError{StatusCode: http.StatusConflict}, ErrUnauthorized)
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "dup", ServerMessage(&APIError{StatusCode: 409, Message: "dup"}, "fallback"))
	assert.Equal(t, "fallback", ServerMessage(&APIError{StatusCode: 500}, "fallback"))
	assert.Equal(t, "fallback", ServerMessage(errors.New("network down"), "fallback"))
}

func TestLooseTypes(t *testing.T) {
	var payload struct {
		Late    Bool      `json:"is_late"`
		Late2   Bool      `json:"is_late2"`
		Hours   *Float    `json:"total_hours"`
		Missing *Float    `json:"missing"`
		In      Timestamp `json:"check_in"`
		Out     Timestamp `json:"check_out"`
	}
	body := `{"is_late":1,"is_late2":"false","total_hours":"8.5","missing":null,"check_in":"2024-03-04 09:00:00","check_out":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.True(t, bool(payload.Late))
	assert.False(t, bool(payload.Late2))
	require.NotNil(t, payload.Hours)
	assert.InDelta(t, 8.5, float64(*payload.Hours), 1e-9)
	assert.Nil(t, payload.Missing)
	require.NotNil(t, payload.In.Ptr())
	assert.Equal(t, 9, payload.In.Time.Hour())
	assert.True(t, payload.In.Floating)
	assert.Nil(t, payload.Out.Ptr())
}

func TestTimestamp_In(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	var floating, zoned Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-04 23:30:00"`), &floating))
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-04T23:30:00Z"`), &zoned))
	assert.False(t, zoned.Floating)

	local := floating.In(jakarta)
	assert.Equal(t, "2024-03-04 23:30", local.Time.Format("2006-01-02 15:04"))
	assert.Equal(t, "Asia/Jakarta", local.Time.Location().String())

	assert.Equal(t, "2024-03-05 06:30", zoned.In(jakarta).Time.Format("2006-01-02 15:04"))
	assert.False(t, Timestamp{}.In(jakarta).Valid)
}

func TestGetAll_FollowsLastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		switch r.URL.Query().Get("page") {
		case "":
			w.Write([]byte(`{"data":[{"id":1,"name":"a"}],"current_page":1,"last_page":2}`))
		case "2":
			w.Write([]byte(`{"data":[{"id":2,"name":"b"}],"current_page":2,"last_page":2}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	items, err := GetAll[item](context.Background(), New(srv.URL, time.Second), "/things", url.Values{"status": {"active"}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].Name)
}

func TestGetAll_EmptyIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	items, err := GetAll[item](context.Background(), New(srv.URL, time.Second), "/things", nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
