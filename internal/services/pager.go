package services

import "context"

// PageFunc fetches one page of items at the given offset. The boolean
// reports whether the catalog advertises a further page (a next cursor);
// sources without a cursor should return true and rely on short-page
// termination.
type PageFunc[T any] func(ctx context.Context, limit, offset int) ([]T, bool, error)

// Pager drains a paginated endpoint behind a single Next contract,
// regardless of whether the underlying endpoint terminates with a short
// page, a null cursor, or both.
type Pager[T any] struct {
	fetch  PageFunc[T]
	limit  int
	offset int
	done   bool
}

// NewPager creates a Pager that fetches pages of the given size.
func NewPager[T any](fetch PageFunc[T], limit int) *Pager[T] {
	return &Pager[T]{fetch: fetch, limit: limit}
}

// Next returns the next page, or nil when the source is exhausted.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}

	items, more, err := p.fetch(ctx, p.limit, p.offset)
	if err != nil {
		return nil, err
	}

	p.offset += p.limit
	if !more || len(items) < p.limit {
		p.done = true
	}

	if len(items) == 0 {
		return nil, nil
	}

	return items, nil
}

// All drains the source and concatenates every page in returned order.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var all []T
	for {
		page, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return all, nil
		}
		all = append(all, page...)
	}
}
