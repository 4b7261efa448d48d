package pagination

const (
	// DefaultPageSize matches the product dashboard's page size.
	DefaultPageSize = 4
	// MaxPageSize caps how many rows a single page may request.
	MaxPageSize = 500
)

// Params holds page-number pagination inputs from controllers or the CLI.
type Params struct {
	Page     int
	PageSize int
}

// Window is a resolved page over a collection of a known length.
type Window struct {
	Page       int
	PageSize   int
	TotalPages int
	Start      int
	End        int
}

// NormalizePageSize enforces the default and maximum page sizes.
func NormalizePageSize(size, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultPageSize
	}
	if size <= 0 {
		size = fallback
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages returns ceil(total/size); zero when there is nothing to show.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Resolve clamps the requested page to [1, max(1,totalPages)] and returns the slice bounds.
func Resolve(params Params, total, fallbackSize int) Window {
	size := NormalizePageSize(params.PageSize, fallbackSize)
	pages := TotalPages(total, size)

	page := params.Page
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	if pages == 0 {
		page = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	if total < 0 {
		start, end = 0, 0
	}

	return Window{
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		Start:      start,
		End:        end,
	}
}
