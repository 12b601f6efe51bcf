package listquery

import "context"

// Source acquires a page of T. Implementations differ in where slicing
// happens but return the same Result contract.
type Source[T any] interface {
	Fetch(ctx context.Context, q Query) (Result[T], error)
}

// ClientSource fetches the whole collection and slices it in memory.
type ClientSource[T any] struct {
	Load   func(ctx context.Context) ([]T, error)
	Config Config[T]
}

func (s ClientSource[T]) Fetch(ctx context.Context, q Query) (Result[T], error) {
	items, err := s.Load(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	return Apply(items, q, s.Config), nil
}

// ServerPage is what a server-paginated endpoint returns.
type ServerPage[T any] struct {
	Items    []T
	LastPage int
	Total    int
}

// ServerSource asks the upstream for the page directly.
type ServerSource[T any] struct {
	LoadPage func(ctx context.Context, q Query) (ServerPage[T], error)
}

func (s ServerSource[T]) Fetch(ctx context.Context, q Query) (Result[T], error) {
	q = q.Normalize()

	page, err := s.LoadPage(ctx, q)
	if err != nil {
		return Result[T]{}, err
	}
	totalPages := max(1, page.LastPage)

	// Requested past the end: clamp and fetch the last page instead.
	if q.Page > totalPages {
		q.Page = totalPages
		page, err = s.LoadPage(ctx, q)
		if err != nil {
			return Result[T]{}, err
		}
		totalPages = max(1, page.LastPage)
	}

	items := page.Items
	if items == nil {
		items = []T{}
	}
	total := page.Total
	if total == 0 && totalPages == 1 {
		total = len(items)
	}

	return Result[T]{
		Items:      items,
		Page:       ClampPage(q.Page, totalPages),
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
