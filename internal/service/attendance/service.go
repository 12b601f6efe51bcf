package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/sse"
)

const (
	mePath = "/api/v1/me"
	action = "attendance"

	// EventAttendanceChanged is published after a successful clock action.
	EventAttendanceChanged = "attendance.changed"
)

// Config holds attendance service configuration
type Config struct {
	Path       string         // default: /api/v1/attendances
	Location   *time.Location // default: UTC, decides which day is "today"
	BoardLimit int            // default: 31 records on the board
}

type service struct {
	client *apiclient.Client
	guard  *inflight.Guard
	hub    *sse.Hub
	config Config
	now    func() time.Time

	mu     sync.Mutex
	boards map[string]attendance.Board
}

// NewAttendanceService creates the attendance page controller. hub may be nil.
func NewAttendanceService(client *apiclient.Client, guard *inflight.Guard, hub *sse.Hub, cfg Config) attendance.AttendanceService {
	if cfg.Path == "" {
		cfg.Path = "/api/v1/attendances"
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.BoardLimit == 0 {
		cfg.BoardLimit = 31
	}

	return &service{
		client: client,
		guard:  guard,
		hub:    hub,
		config: cfg,
		now:    time.Now,
		boards: make(map[string]attendance.Board),
	}
}

func (s *service) today() string {
	return attendance.Today(s.now(), s.config.Location)
}

func toRecords(payloads []attendance.RecordPayload, loc *time.Location) []attendance.Record {
	records := make([]attendance.Record, 0, len(payloads))
	for _, p := range payloads {
		rec, err := p.ToRecord(loc)
		if err != nil {
			slog.Warn("skipping attendance record", "id", p.ID, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (s *service) fetchRecords(ctx context.Context, client *apiclient.Client, q url.Values) (apiclient.Page[attendance.RecordPayload], error) {
	raw, err := client.Get(ctx, s.config.Path, q)
	if err != nil {
		return apiclient.Page[attendance.RecordPayload]{}, err
	}
	return apiclient.DecodeList[attendance.RecordPayload](raw)
}

func (s *service) Load(ctx context.Context) (attendance.Board, error) {
	client, sc, err := session.Client(ctx, s.client)
	if err != nil {
		return attendance.Board{}, err
	}

	var (
		user    auth.User
		records []attendance.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := client.Get(gctx, mePath, nil)
		if err != nil {
			return err
		}
		p, err := apiclient.Decode[auth.UserPayload](raw)
		if err != nil {
			return err
		}
		user = p.ToUser()
		return nil
	})
	g.Go(func() error {
		page, err := s.fetchRecords(gctx, client, url.Values{"per_page": {strconv.Itoa(s.config.BoardLimit)}})
		if err != nil {
			return err
		}
		records = toRecords(page.Items, s.config.Location)
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.Board{}, fmt.Errorf("failed to load attendance: %w", session.Translate(ctx, err))
	}

	// The page may have gone away while we waited.
	if err := ctx.Err(); err != nil {
		return attendance.Board{}, err
	}

	board := s.newBoard(user, records)
	s.store(sc.ID(), board)
	return board, nil
}

func (s *service) newBoard(user auth.User, records []attendance.Record) attendance.Board {
	return attendance.Board{
		Employee: attendance.EmployeeRef{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		Today:    attendance.NewTodayStatus(records, s.today()),
		Records:  records,
		Summary:  attendance.Summarize(records),
	}
}

func (s *service) cached(sessionID string) (attendance.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	board, ok := s.boards[sessionID]
	return board, ok
}

func (s *service) store(sessionID string, board attendance.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[sessionID] = board
}

// Forget drops the cached board of a session, e.g. on logout.
func (s *service) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, sessionID)
}

func (s *service) SessionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	return ids
}

func (s *service) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.Board, error) {
	return s.clock(ctx, "/clock-in", req, func(status *attendance.Record) error {
		if attendance.CanClockIn(status) {
			return nil
		}
		if status.CheckOut != nil {
			return attendance.ErrAlreadyClockedOut
		}
		return attendance.ErrAlreadyClockedIn
	})
}

func (s *service) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.Board, error) {
	return s.clock(ctx, "/clock-out", req, func(status *attendance.Record) error {
		if attendance.CanClockOut(status) {
			return nil
		}
		if status == nil || status.CheckIn == nil {
			return attendance.ErrNotClockedIn
		}
		return attendance.ErrAlreadyClockedOut
	})
}

// guardKey names the in-flight slot of a clock action. Actions are
// serialized per employee across all of their sessions.
func guardKey(sessionID string, board attendance.Board) string {
	if board.Employee.ID != "" {
		return inflight.Key("user-"+board.Employee.ID, action)
	}
	return inflight.Key(sessionID, action)
}

// clock runs one clock action: guarded per employee, checked against the
// current status before any upstream call, and applied only on success.
func (s *service) clock(ctx context.Context, suffix string, req attendance.ClockRequest, allowed func(*attendance.Record) error) (attendance.Board, error) {
	client, sc, err := session.Client(ctx, s.client)
	if err != nil {
		return attendance.Board{}, err
	}

	board, ok := s.cached(sc.ID())
	if !ok {
		if board, err = s.Load(ctx); err != nil {
			return attendance.Board{}, err
		}
	}

	release, ok := s.guard.TryAcquire(guardKey(sc.ID(), board))
	if !ok {
		return attendance.Board{}, attendance.ErrActionInProgress
	}
	defer release()

	// Another session of the same employee may have finished an action
	// while this one was loading.
	if latest, ok := s.cached(sc.ID()); ok {
		board = latest
	}

	today := s.today()
	if err := allowed(attendance.DeriveTodayStatus(board.Records, today)); err != nil {
		return board, err
	}

	raw, err := client.Post(ctx, s.config.Path+suffix, req)
	if err != nil {
		return board, session.Translate(ctx, err)
	}
	payload, err := apiclient.Decode[attendance.RecordPayload](raw)
	if err != nil {
		return board, err
	}
	if payload.Date == "" {
		payload.Date = today
	}
	rec, err := payload.ToRecord(s.config.Location)
	if err != nil {
		return board, err
	}

	if err := ctx.Err(); err != nil {
		slog.Info("dropping stale attendance result", "session", sc.ID(), "error", err)
		return board, err
	}

	changed := s.apply(sc.ID(), board, rec, today)
	if s.hub != nil {
		for id, b := range changed {
			s.hub.Publish(id, sse.Event{
				SessionID: id,
				Event:     EventAttendanceChanged,
				Data:      b.Today,
			})
		}
	}

	return changed[sc.ID()], nil
}

// apply merges rec into the board of sessionID and into every other cached
// board of the same employee. It returns the changed boards by session.
func (s *service) apply(sessionID string, board attendance.Board, rec attendance.Record, today string) map[string]attendance.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := map[string]attendance.Board{sessionID: withRecord(board, rec, today)}
	if board.Employee.ID != "" {
		for id, other := range s.boards {
			if id != sessionID && other.Employee.ID == board.Employee.ID {
				changed[id] = withRecord(other, rec, today)
			}
		}
	}
	maps.Copy(s.boards, changed)
	return changed
}

func withRecord(board attendance.Board, rec attendance.Record, today string) attendance.Board {
	records := attendance.Merge(board.Records, rec)
	return attendance.Board{
		Employee: board.Employee,
		Today:    attendance.NewTodayStatus(records, today),
		Records:  records,
		Summary:  attendance.Summarize(records),
	}
}

func (s *service) History(ctx context.Context, q listquery.Query) (listquery.Result[attendance.Record], error) {
	client, _, err := session.Client(ctx, s.client)
	if err != nil {
		return listquery.Result[attendance.Record]{}, err
	}

	src := listquery.ServerSource[attendance.Record]{
		LoadPage: func(ctx context.Context, q listquery.Query) (listquery.ServerPage[attendance.Record], error) {
			params := url.Values{
				"page":     {strconv.Itoa(q.Page)},
				"per_page": {strconv.Itoa(q.PerPage)},
			}
			if q.Search != "" {
				params.Set("search", q.Search)
			}
			page, err := s.fetchRecords(ctx, client, params)
			if err != nil {
				return listquery.ServerPage[attendance.Record]{}, session.Translate(ctx, err)
			}
			return listquery.ServerPage[attendance.Record]{
				Items:    toRecords(page.Items, s.config.Location),
				LastPage: page.LastPage,
				Total:    page.Total,
			}, nil
		},
	}
	return src.Fetch(ctx, q)
}
