// Package session holds the client-side view state for a catalog
// browsing session: the cached catalog, the category filter and pager,
// and the transient overlay state machines. The package performs no
// I/O; the UI layer runs gateway calls and feeds results back through
// the Begin*/Finish* pairs, which lets late responses from abandoned
// overlays be detected and dropped.
package session

// Session bundles the state owned by one mounted view.
type Session struct {
	Cache  *Cache
	View   *View
	Detail *DetailOverlay
	Create *CreateOverlay
}

func New(pageSize int) *Session {
	cache := NewCache()
	return &Session{
		Cache:  cache,
		View:   NewView(pageSize),
		Detail: NewDetailOverlay(cache),
		Create: NewCreateOverlay(),
	}
}

// Visible returns the current page of the filtered catalog.
func (s *Session) Visible() Slice {
	return s.View.VisibleSlice(s.Cache.Products())
}
