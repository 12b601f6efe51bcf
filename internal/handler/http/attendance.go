package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	Board(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
	lists             *listquery.Registry
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub, lists *listquery.Registry) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
		lists:             lists,
	}
}

// Board implements AttendanceHandler.
func (h *attendanceHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.attendanceService.Load(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, board)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Clocked in successfully", h.attendanceService.ClockIn)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Clocked out successfully", h.attendanceService.ClockOut)
}

func (h *attendanceHandlerImpl) clock(w http.ResponseWriter, r *http.Request, message string, action func(ctx context.Context, req attendance.ClockRequest) (attendance.Board, error)) {
	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req, "Clock") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	board, err := action(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, board)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	key, q := listQuery(h.lists, r, listAttendanceHistory)
	res, err := h.attendanceService.History(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, h.lists, key, res)
}

// SSETokenResponse is handed to the page to open the attendance stream.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *attendanceHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		response.HandleError(w, session.ErrUnauthenticated)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(sc.ID())
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes today's status to every open attendance page of the session.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	sessionID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sessionID)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to encode attendance event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
