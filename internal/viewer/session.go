package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehiview/ehiview/internal/record"
	"github.com/ehiview/ehiview/pkg/pagination"
)

// Phase is the user-visible state of a view session. It is always
// exactly one of these four; failures never escape as anything else.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseEmpty
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseEmpty:
		return "empty"
	case PhaseErrored:
		return "errored"
	default:
		return "loading"
	}
}

// Column describes one grid column.
type Column struct {
	Field  string `json:"field"`
	Header string `json:"header"`
}

// Columns is the default grid column set, in presentation order.
var Columns = []Column{
	{"firstname", "First Name"},
	{"lastname", "Last Name"},
	{"dob", "DOB"},
	{"ssn", "SSN"},
	{"athenapatientid", "Patient ID"},
	{"enterpriseid", "Enterprise ID"},
	{"mobilephone", "Mobile Phone"},
	{"homephone", "Home Phone"},
	{"address", "Address"},
}

// Row is one rendered grid row: the record's stable key plus display
// values for each column that is present on the record.
type Row struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

// ViewState is the session snapshot the HTTP surface renders.
type ViewState struct {
	Phase    string               `json:"phase"`
	Error    string               `json:"error,omitempty"`
	Term     string               `json:"term"`
	Sort     SortState            `json:"sort"`
	Columns  []Column             `json:"columns"`
	Selected string               `json:"selected,omitempty"`
	Page     *pagination.Response `json:"page"`
}

// Session is one view activation: it owns the fetched record set and
// the three independent state axes (search term, sort, page). The
// record slice is only ever replaced wholesale by a fetch commit;
// filtering and sorting build derived views and never mutate it. The
// rendered rows are a pure function of the latest committed
// (term, sort, page) tuple.
type Session struct {
	ID uuid.UUID

	mu           sync.Mutex
	gw           *Gateway
	log          zerolog.Logger
	searchFields []string // nil = search-all

	activation uint64 // commit token for discard-stale-response
	phase      Phase
	fetchErr   string
	records    []*record.Record
	filtered   []*record.Record
	term       string
	sortState  SortState
	page       pagination.State
	selected   string
	debounce   *Debouncer
	lastSeen   time.Time
}

// SessionConfig carries the tunables a session is created with.
type SessionConfig struct {
	Quiet        time.Duration // debounce quiet window; 0 = DefaultQuiet
	PageSize     int           // 0 = pagination.DefaultPageSize
	SearchFields []string      // nil = search-all mode
}

// NewSession builds an inactive session; call Activate to fetch.
func NewSession(gw *Gateway, cfg SessionConfig, log zerolog.Logger) *Session {
	quiet := cfg.Quiet
	if quiet == 0 {
		quiet = DefaultQuiet
	}
	s := &Session{
		ID:           uuid.New(),
		gw:           gw,
		log:          log,
		searchFields: cfg.SearchFields,
		phase:        PhaseLoading,
		page:         pagination.New(cfg.PageSize),
		lastSeen:     time.Now(),
	}
	s.debounce = NewDebouncer(quiet, s.commitTerm)
	return s
}

// Activate starts the one fetch for this activation. The call returns
// immediately; the result is committed asynchronously exactly once. A
// re-activation before the previous fetch resolves bumps the commit
// token so only the latest response is ever committed.
//
// The fetch outlives the caller: Activate returns before the fetch
// resolves, and the HTTP server cancels a request context as soon as
// its handler does. The fetch keeps the request's values but not its
// cancellation; the gateway client's own timeout bounds it.
func (s *Session) Activate(ctx context.Context) {
	s.mu.Lock()
	s.activation++
	token := s.activation
	s.phase = PhaseLoading
	s.fetchErr = ""
	s.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		records, err := s.gw.FetchAll(fetchCtx)
		s.commitFetch(token, records, err)
	}()
}

func (s *Session) commitFetch(token uint64, records []*record.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.activation {
		s.log.Debug().Str("session", s.ID.String()).Msg("discarding stale fetch response")
		return
	}

	if err != nil {
		s.log.Error().Err(err).Str("session", s.ID.String()).Msg("patient fetch failed")
		s.phase = PhaseErrored
		s.fetchErr = err.Error()
		s.records = nil
		s.filtered = nil
		return
	}

	s.records = records
	if len(records) == 0 {
		s.phase = PhaseEmpty
	} else {
		s.phase = PhaseReady
	}
	s.refilterLocked()
}

// SetTerm feeds one input of search text through the debouncer. The
// filter evaluation runs after the quiet window and only the latest
// settled term is ever committed.
func (s *Session) SetTerm(term string) {
	s.touch()
	s.debounce.Input(term)
}

// commitTerm is the debouncer's delivery point.
func (s *Session) commitTerm(term string, gen uint64) {
	if gen != s.debounce.Current() {
		return // a newer term superseded this evaluation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
	s.refilterLocked()
}

func (s *Session) refilterLocked() {
	s.filtered = Filter(s.records, s.term, s.searchFields)
	s.page = s.page.Clamp(len(s.filtered))
}

// ToggleSort applies one column-header click.
func (s *Session) ToggleSort(column string) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortState = s.sortState.Toggle(column)
}

// PageAction names a paging navigation request.
type PageAction string

const (
	PageFirst PageAction = "first"
	PagePrev  PageAction = "prev"
	PageNext  PageAction = "next"
	PageLast  PageAction = "last"
	PageJump  PageAction = "jump"
	PageSize  PageAction = "size"
)

// Navigate applies one paging action. arg is the target index for jump
// and the new size for size; it is ignored otherwise.
func (s *Session) Navigate(action PageAction, arg int) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.filtered)
	switch action {
	case PageFirst:
		s.page = s.page.First()
	case PagePrev:
		s.page = s.page.Prev()
	case PageNext:
		s.page = s.page.Next(total)
	case PageLast:
		s.page = s.page.Last(total)
	case PageJump:
		s.page = s.page.JumpTo(arg, total)
	case PageSize:
		s.page = s.page.SetSize(arg)
	}
	s.page = s.page.Clamp(total)
}

// Rows renders the current page: sort(filter(records))[page bounds],
// recomputed from the current axis values alone.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowsLocked()
}

func (s *Session) rowsLocked() []Row {
	sorted := Sort(s.filtered, s.sortState)
	lo, hi := s.page.Bounds(len(sorted))

	rows := make([]Row, 0, hi-lo)
	for _, r := range sorted[lo:hi] {
		cells := make(map[string]string, len(Columns))
		for _, col := range Columns {
			if v, ok := record.Resolve(r, col.Field); ok {
				cells[col.Field] = v.Display()
			}
		}
		rows = append(rows, Row{ID: r.ID, Cells: cells})
	}
	return rows
}

// View snapshots the session for rendering.
func (s *Session) View() ViewState {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	return ViewState{
		Phase:    s.phase.String(),
		Error:    s.fetchErr,
		Term:     s.term,
		Sort:     s.sortState,
		Columns:  Columns,
		Selected: s.selected,
		Page:     pagination.NewResponse(s.rowsLocked(), len(s.filtered), s.page),
	}
}

// Select marks one record as the open detail and returns its grouped
// projection. At most one record is selected at a time; selecting a
// second record replaces the first. The bool result is false when no
// record with the given ID exists in this activation's batch.
func (s *Session) Select(id string) ([]DetailGroup, bool) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			s.selected = id
			return Project(r), true
		}
	}
	return nil, false
}

// ClearSelection closes the detail view. Closing an already-closed
// selection is a no-op.
func (s *Session) ClearSelection() {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Close releases the session's timer resources.
func (s *Session) Close() {
	s.debounce.Stop()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IdleSince reports the last time the session was used.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
