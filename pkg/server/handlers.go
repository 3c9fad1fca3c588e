package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/session"
)

// maxBody bounds request bodies.
const maxBody = 8 << 20

// Item batch operations.
const (
	OpAppend  = "append"
	OpReplace = "replace"
)

// CreateRequest opens a session. Omitted layout fields use server defaults.
type CreateRequest struct {
	ViewportWidth float64  `json:"viewport_width"`
	ColumnWidth   *float64 `json:"column_width,omitempty"`
	Gap           *float64 `json:"gap,omitempty"`
	ItemHeight    *float64 `json:"item_height,omitempty"`
	Overscan      *int     `json:"overscan,omitempty"`
}

// Summary describes a session's layout.
type Summary struct {
	ID            string          `json:"id"`
	Columns       int             `json:"columns"`
	Options       masonry.Options `json:"options"`
	Items         int             `json:"items"`
	Placed        int             `json:"placed"`
	LongestColumn float64         `json:"longest_column"`
	ContentWidth  float64         `json:"content_width"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// ItemsRequest adds items to a session.
//
// Without Count an append carries only the new batch. With Count, Items is
// the client's full list and Count says how many entries at its end are new;
// a count that does not match the session's unplaced tail is rejected with
// INVALID_CHANGE.
type ItemsRequest struct {
	Op    string         `json:"op"`
	Items []masonry.Item `json:"items"`
	Count *int           `json:"count,omitempty"`
}

// ItemsResponse carries the positions the batch produced. From is the index
// of the first entry in Positions.
type ItemsResponse struct {
	Change        string             `json:"change"`
	From          int                `json:"from"`
	Positions     []masonry.Position `json:"positions"`
	Placed        int                `json:"placed"`
	LongestColumn float64            `json:"longest_column"`
}

// ViewportRequest reports a new viewport width.
type ViewportRequest struct {
	Width float64 `json:"width"`
}

// ViewportResponse reports the column count after a resize.
type ViewportResponse struct {
	Columns       int     `json:"columns"`
	Changed       bool    `json:"changed"`
	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`
}

// WindowResponse lists the items to mount.
type WindowResponse struct {
	Range         masonry.Range     `json:"range"`
	Items         []masonry.Visible `json:"items"`
	ContentHeight float64           `json:"content_height"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"sessions": s.store.Len(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := errors.ValidatePositive("viewport_width", req.ViewportWidth); err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.defaults
	if req.ColumnWidth != nil {
		if err := errors.ValidatePositive("column_width", *req.ColumnWidth); err != nil {
			s.writeError(w, err)
			return
		}
		opts.ColumnWidth = *req.ColumnWidth
	}
	if req.Gap != nil {
		opts.Gap = *req.Gap
	}
	if req.ItemHeight != nil {
		opts.ItemHeight = *req.ItemHeight
	}
	if req.Overscan != nil {
		opts.Overscan = *req.Overscan
	}

	sess := session.New(req.ViewportWidth, opts)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("session created", "id", sess.ID, "viewport_width", req.ViewportWidth)
	writeJSON(w, http.StatusCreated, summarize(sess))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(sess))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req ItemsRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Op == "" {
		req.Op = OpAppend
	}
	if req.Op != OpAppend && req.Op != OpReplace {
		s.writeError(w, errors.New(errors.ErrCodeInvalidChange, "op must be %q or %q, got %q", OpAppend, OpReplace, req.Op))
		return
	}
	if req.Count != nil && req.Op != OpAppend {
		s.writeError(w, errors.New(errors.ErrCodeInvalidChange, "count is only valid with op %q", OpAppend))
		return
	}
	if err := layout.ValidateItems(req.Items); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		resp     ItemsResponse
		applyErr error
	)
	start := time.Now()
	sess.Do(func(g *masonry.Grid) {
		var items []masonry.Item
		var change masonry.Change
		switch {
		case req.Op == OpReplace:
			items, change = req.Items, masonry.Replaced()
		case req.Count != nil:
			items, change = req.Items, masonry.Appended(*req.Count)
		default:
			prev := g.Items()
			items = make([]masonry.Item, 0, len(prev)+len(req.Items))
			items = append(append(items, prev...), req.Items...)
			change = masonry.Appended(len(req.Items))
		}

		from := g.Snapshot().Placed
		if change.Kind == masonry.ChangeReplace {
			from = 0
		}
		snap, err := g.Apply(items, change)
		if err != nil {
			applyErr = errors.Wrap(errors.ErrCodeInvalidChange, err, "append count %d does not match the %d unplaced items", change.Count, len(items)-from)
			return
		}
		resp = ItemsResponse{
			Change:        change.String(),
			From:          from,
			Positions:     snap.Since(from),
			Placed:        snap.Placed,
			LongestColumn: snap.LongestColumn,
		}
	})
	if applyErr != nil {
		s.writeError(w, applyErr)
		return
	}
	observability.Layout().OnExtend(r.Context(), resp.Change, resp.Placed, time.Since(start))

	if resp.Positions == nil {
		resp.Positions = []masonry.Position{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req ViewportRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := errors.ValidatePositive("width", req.Width); err != nil {
		s.writeError(w, err)
		return
	}

	cols, changed := sess.Resize(req.Width)
	if changed {
		observability.Layout().OnReset(r.Context(), cols)
		s.logger.Debug("session relayout", "id", sess.ID, "columns", cols)
	}

	resp := ViewportResponse{Columns: cols, Changed: changed}
	sess.Do(func(g *masonry.Grid) {
		resp.ContentWidth = g.ContentWidth()
		resp.ContentHeight = g.ContentHeight()
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	scrollTop, err := floatParam(r, "scroll_top", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	height, err := floatParam(r, "height", -1)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var resp WindowResponse
	sess.Do(func(g *masonry.Grid) {
		g.SetScrollOffset(scrollTop)
		if height >= 0 {
			g.SetContainerHeight(height)
		}
		resp.Range = g.Range()
		resp.Items = g.Visible()
		resp.ContentHeight = g.ContentHeight()
	})
	if resp.Items == nil {
		resp.Items = []masonry.Visible{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func summarize(sess *session.Session) Summary {
	sum := Summary{ID: sess.ID, ExpiresAt: sess.ExpiresAt()}
	sess.Do(func(g *masonry.Grid) {
		snap := g.Snapshot()
		sum.Columns = g.Columns()
		sum.Options = g.Options()
		sum.Items = len(g.Items())
		sum.Placed = snap.Placed
		sum.LongestColumn = snap.LongestColumn
		sum.ContentWidth = g.ContentWidth()
	})
	return sum
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
	}
	if err := errors.ValidateNonNegative(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
