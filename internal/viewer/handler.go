package viewer

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehiview/ehiview/internal/platform/auth"
	"github.com/ehiview/ehiview/pkg/pagination"
)

// Handler exposes view sessions over HTTP. Each endpoint operates on
// one session identified by its UUID; the identity capability gates
// every route.
type Handler struct {
	mgr      *Manager
	identity auth.Identity
}

// NewHandler wires the session manager and the injected identity
// capability.
func NewHandler(mgr *Manager, identity auth.Identity) *Handler {
	return &Handler{mgr: mgr, identity: identity}
}

// RegisterRoutes mounts the view session API on the given group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/view", h.requireAuth)
	g.POST("/sessions", h.OpenSession)
	g.GET("/sessions/:id", h.GetView)
	g.PUT("/sessions/:id/search", h.Search)
	g.PUT("/sessions/:id/sort", h.Sort)
	g.PUT("/sessions/:id/page", h.Page)
	g.GET("/sessions/:id/records/:rid", h.Detail)
	g.DELETE("/sessions/:id/selection", h.ClearSelection)
	g.DELETE("/sessions/:id", h.CloseSession)
}

func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.identity.IsAuthenticated(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
		}
		return next(c)
	}
}

// OpenSession activates a fresh view: the full record set is fetched
// once for the session's lifetime.
func (h *Handler) OpenSession(c echo.Context) error {
	s := h.mgr.Open(c.Request().Context())
	return c.JSON(http.StatusCreated, map[string]any{
		"session_id": s.ID,
		"view":       s.View(),
	})
}

func (h *Handler) session(c echo.Context) (*Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	s, ok := h.mgr.Get(id)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return s, nil
}

// GetView renders the current page of the session.
func (h *Handler) GetView(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.View())
}

type searchRequest struct {
	Term string `json:"term"`
}

// Search feeds search input into the session's debouncer and returns
// the view as it stands; clients poll or re-fetch after the quiet
// window to observe the settled filter.
func (h *Handler) Search(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.SetTerm(req.Term)
	return c.JSON(http.StatusAccepted, s.View())
}

type sortRequest struct {
	Column string `json:"column"`
}

// Sort applies one column-header click: same column toggles direction,
// a new column starts ascending.
func (h *Handler) Sort(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req sortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Column == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "column is required")
	}
	s.ToggleSort(req.Column)
	return c.JSON(http.StatusOK, s.View())
}

type pageRequest struct {
	Action PageAction `json:"action"`
	Index  int        `json:"index"`
	Size   int        `json:"size"`
}

// Page applies a paging navigation action.
func (h *Handler) Page(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switch req.Action {
	case PageFirst, PagePrev, PageNext, PageLast:
		s.Navigate(req.Action, 0)
	case PageJump:
		s.Navigate(PageJump, req.Index)
	case PageSize:
		if req.Size <= 0 || req.Size > pagination.MaxPageSize {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page size")
		}
		s.Navigate(PageSize, req.Size)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown page action")
	}
	return c.JSON(http.StatusOK, s.View())
}

// Detail selects one record and returns its grouped projection for the
// modal.
func (h *Handler) Detail(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	groups, ok := s.Select(c.Param("rid"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":     c.Param("rid"),
		"groups": groups,
	})
}

// ClearSelection closes the open detail. Idempotent.
func (h *Handler) ClearSelection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.ClearSelection()
	return c.NoContent(http.StatusNoContent)
}

// CloseSession discards the session and its in-memory record set.
func (h *Handler) CloseSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	h.mgr.CloseSession(id)
	return c.NoContent(http.StatusNoContent)
}
