package shared

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// ListFilters represents standard list filters for master data.
type ListFilters struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool

	// Entity specific filters
	Category string
	City     string
	LowStock bool
}

// Normalize applies pagination defaults in place.
func (f *ListFilters) Normalize() {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
}

// Offset returns the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}
