package listquery

import (
	"strings"
	"sync"
)

// Pager holds the navigation state of one list view.
// Changing the search or page size invalidates the page and resets it to 1.
type Pager struct {
	q          Query
	totalPages int
}

func NewPager(perPage int) *Pager {
	return &Pager{q: Query{PerPage: perPage}.Normalize(), totalPages: 1}
}

func (p *Pager) Query() Query { return p.q }

// SetSearch reports whether the search changed and the page was reset.
func (p *Pager) SetSearch(search string) bool {
	search = strings.TrimSpace(search)
	if search == p.q.Search {
		return false
	}
	p.q.Search = search
	p.q.Page = 1
	return true
}

// SetPerPage reports whether the page size changed and the page was reset.
func (p *Pager) SetPerPage(perPage int) bool {
	if perPage < 1 || perPage == p.q.PerPage {
		return false
	}
	p.q.PerPage = perPage
	p.q.Page = 1
	return true
}

func (p *Pager) SetSort(key string, dir SortDir) {
	p.q.SortKey = key
	p.q.SortDir = dir
	p.q = p.q.Normalize()
}

// GoTo requests a page. The bound is enforced when the result is observed.
func (p *Pager) GoTo(page int) {
	if page < 1 {
		page = 1
	}
	p.q.Page = page
}

func (p *Pager) HasPrev() bool { return p.q.Page > 1 }
func (p *Pager) HasNext() bool { return p.q.Page < p.totalPages }

// Next advances one page. It is a no-op on the last page.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.q.Page++
	return true
}

// Prev goes back one page. It is a no-op on the first page.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.q.Page--
	return true
}

// Observe records the bounds of a computed result.
func (p *Pager) Observe(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	p.totalPages = totalPages
	p.q.Page = ClampPage(p.q.Page, totalPages)
}

// SessionKey names the pager of list within a browser session.
func SessionKey(sessionID, list string) string {
	return sessionID + "/" + list
}

// Registry keeps one Pager per key, typically a SessionKey.
type Registry struct {
	mu      sync.Mutex
	pagers  map[string]*Pager
	perPage int
}

func NewRegistry(defaultPerPage int) *Registry {
	return &Registry{pagers: make(map[string]*Pager), perPage: defaultPerPage}
}

// Update runs fn on the pager for key and returns the resulting query.
func (r *Registry) Update(key string, fn func(p *Pager)) Query {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pagers[key]
	if !ok {
		p = NewPager(r.perPage)
		r.pagers[key] = p
	}
	fn(p)
	return p.q
}

// Observe records result bounds for key.
func (r *Registry) Observe(key string, totalPages int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pagers[key]; ok {
		p.Observe(totalPages)
	}
}

// Forget drops every pager whose key starts with prefix.
func (r *Registry) Forget(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.pagers {
		if strings.HasPrefix(k, prefix) {
			delete(r.pagers, k)
		}
	}
}

// ForgetSession drops every pager of a session.
func (r *Registry) ForgetSession(sessionID string) {
	r.Forget(sessionID + "/")
}

// SessionIDs lists the sessions holding at least one pager.
func (r *Registry) SessionIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	var ids []string
	for k := range r.pagers {
		id, _, ok := strings.Cut(k, "/")
		if !ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
