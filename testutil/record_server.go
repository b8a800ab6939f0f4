package testutil

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Record is one stored resource item. Its "id" field identifies it.
type Record map[string]any

// ID returns the record id as a string.
func (r Record) ID() string {
	if v, ok := r["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func (r Record) clone() Record {
	return maps.Clone(r)
}

// RecordedRequest is a request seen by a RecordServer.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
}

// Reserved list query parameters; every other parameter filters by field.
const (
	ParamSortField  = "sort-field"
	ParamSortOrder  = "sort-order"
	ParamRangeStart = "range-start"
	ParamRangeEnd   = "range-end"
	ParamIDs        = "ids"
)

// RecordServer is an in-memory REST backend served over httptest.
type RecordServer struct {
	mu          sync.Mutex
	resources   map[string][]Record
	requests    []RecordedRequest
	countHeader string
	engine      *gin.Engine
	server      *httptest.Server
}

var _ TestComponent = (*RecordServer)(nil)

// RecordServerOption configures a RecordServer.
type RecordServerOption func(*RecordServer)

// WithCountHeader sets the header carrying list totals. Defaults to X-Total-Count.
func WithCountHeader(name string) RecordServerOption {
	return func(s *RecordServer) { s.countHeader = name }
}

// NewRecordServer creates a stopped RecordServer. Call Start, or use
// T(t).Setup, before sending requests.
func NewRecordServer(opts ...RecordServerOption) *RecordServer {
	gin.SetMode(gin.TestMode)
	s := &RecordServer{
		resources:   make(map[string][]Record),
		countHeader: "X-Total-Count",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(s.record)
	r.GET("/:resource", s.list)
	r.GET("/:resource/:id", s.getOne)
	r.POST("/:resource", s.create)
	r.PATCH("/:resource", s.updateMany)
	r.PATCH("/:resource/:id", s.update)
	r.DELETE("/:resource", s.deleteMany)
	r.DELETE("/:resource/:id", s.deleteOne)
	s.engine = r
	return s
}

// Name implements TestComponent.
func (s *RecordServer) Name() string { return "record-server" }

// Start begins serving on a local port.
func (s *RecordServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("testutil: record server already started")
	}
	s.server = httptest.NewServer(s.engine)
	return nil
}

// Stop shuts the server down.
func (s *RecordServer) Stop(_ context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Reset drops every record and recorded request.
func (s *RecordServer) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = make(map[string][]Record)
	s.requests = nil
	return nil
}

// Snapshot returns a deep copy of the stored records.
func (s *RecordServer) Snapshot(_ context.Context) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyResources(s.resources), nil
}

// Restore replaces the stored records with a value returned by Snapshot.
func (s *RecordServer) Restore(_ context.Context, snapshot interface{}) error {
	res, ok := snapshot.(map[string][]Record)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = copyResources(res)
	return nil
}

// URL returns the base URL of the running server, or "" when stopped.
func (s *RecordServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return ""
	}
	return s.server.URL
}

// Handler returns the gin engine for in-process use without a listener.
func (s *RecordServer) Handler() http.Handler { return s.engine }

// Seed appends records to resource. Records without an id get a uuid.
func (s *RecordServer) Seed(resource string, records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		r = r.clone()
		if r.ID() == "" {
			r["id"] = uuid.NewString()
		}
		s.resources[resource] = append(s.resources[resource], r)
	}
}

// Records returns a copy of the records stored for resource.
func (s *RecordServer) Records(resource string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecords(s.resources[resource])
}

// Requests returns every request served so far.
func (s *RecordServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request. It panics when none was served.
func (s *RecordServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

// --- handlers ---

func (s *RecordServer) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *RecordServer) list(c *gin.Context) {
	resource := c.Param("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.resources[resource]

	if ids, ok := c.GetQuery(ParamIDs); ok {
		c.JSON(http.StatusOK, selectIDs(rows, splitIDs(ids)))
		return
	}

	var filtered []Record
	for _, r := range rows {
		if matches(r, c.Request.URL.Query()) {
			filtered = append(filtered, r)
		}
	}
	if field := c.Query(ParamSortField); field != "" {
		desc := strings.EqualFold(c.Query(ParamSortOrder), "DESC")
		slices.SortStableFunc(filtered, func(a, b Record) int {
			n := compareValues(a[field], b[field])
			if desc {
				return -n
			}
			return n
		})
	}

	total := len(filtered)
	start, end, err := parseRange(c.Query(ParamRangeStart), c.Query(ParamRangeEnd), total)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header(s.countHeader, strconv.Itoa(total))
	c.JSON(http.StatusOK, copyRecords(filtered[start:end]))
}

func (s *RecordServer) getOne(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, _ := s.find(c.Param("resource"), c.Param("id"))
	if r == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, r.clone())
}

func (s *RecordServer) create(c *gin.Context) {
	var r Record
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.ID() == "" {
		r["id"] = uuid.NewString()
	}
	resource := c.Param("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, _ := s.find(resource, r.ID()); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate id"})
		return
	}
	s.resources[resource] = append(s.resources[resource], r)
	c.JSON(http.StatusCreated, r.clone())
}

func (s *RecordServer) update(c *gin.Context) {
	var patch Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, _ := s.find(c.Param("resource"), c.Param("id"))
	if r == nil {
		notFound(c)
		return
	}
	applyPatch(r, patch)
	c.JSON(http.StatusOK, r.clone())
}

func (s *RecordServer) updateMany(c *gin.Context) {
	var body struct {
		Data Record `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := selectIDs(s.resources[c.Param("resource")], splitIDs(c.Query(ParamIDs)))
	for _, r := range rows {
		applyPatch(r, body.Data)
	}
	c.JSON(http.StatusOK, copyRecords(rows))
}

func (s *RecordServer) deleteOne(c *gin.Context) {
	resource := c.Param("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	r, i := s.find(resource, c.Param("id"))
	if r == nil {
		notFound(c)
		return
	}
	s.resources[resource] = slices.Delete(s.resources[resource], i, i+1)
	c.JSON(http.StatusOK, r)
}

func (s *RecordServer) deleteMany(c *gin.Context) {
	resource := c.Param("resource")
	ids := splitIDs(c.Query(ParamIDs))
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := copyRecords(selectIDs(s.resources[resource], ids))
	s.resources[resource] = slices.DeleteFunc(s.resources[resource], func(r Record) bool {
		return slices.Contains(ids, r.ID())
	})
	c.JSON(http.StatusOK, deleted)
}

// --- helpers ---

func (s *RecordServer) find(resource, id string) (Record, int) {
	for i, r := range s.resources[resource] {
		if r.ID() == id {
			return r, i
		}
	}
	return nil, -1
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// applyPatch writes patch onto r in place. The id never changes.
func applyPatch(r, patch Record) {
	for k, v := range patch {
		if k != "id" {
			r[k] = v
		}
	}
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// selectIDs returns the stored records for ids in ids order. Unknown ids are skipped.
func selectIDs(rows []Record, ids []string) []Record {
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		for _, r := range rows {
			if r.ID() == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func matches(r Record, query map[string][]string) bool {
	for key, values := range query {
		switch key {
		case ParamSortField, ParamSortOrder, ParamRangeStart, ParamRangeEnd:
			continue
		}
		v, ok := r[key]
		if !ok || !slices.Contains(values, fmt.Sprint(v)) {
			return false
		}
	}
	return true
}

func compareValues(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// parseRange converts an inclusive [start, end] range into slice bounds.
func parseRange(rawStart, rawEnd string, total int) (int, int, error) {
	start, end := 0, total-1
	var err error
	if rawStart != "" {
		if start, err = strconv.Atoi(rawStart); err != nil || start < 0 {
			return 0, 0, fmt.Errorf("invalid %s %q", ParamRangeStart, rawStart)
		}
	}
	if rawEnd != "" {
		if end, err = strconv.Atoi(rawEnd); err != nil || end < -1 {
			return 0, 0, fmt.Errorf("invalid %s %q", ParamRangeEnd, rawEnd)
		}
	}
	start = min(start, total)
	end = min(end+1, total)
	if end < start {
		end = start
	}
	return start, end, nil
}

func copyRecords(rows []Record) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.clone()
	}
	return out
}

func copyResources(res map[string][]Record) map[string][]Record {
	out := make(map[string][]Record, len(res))
	for k, rows := range res {
		out[k] = copyRecords(rows)
	}
	return out
}
