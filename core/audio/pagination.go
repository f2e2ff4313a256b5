package audio

// Pagination defaults and caps.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest is an offset/limit page selector.
type PageRequest struct {
	Page  int
	Limit int
}

// normalize clamps the request to sane values.
func (p *PageRequest) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives the pagination envelope from a page request and
// the total match count. TotalPages is ceil(total/limit).
func NewPagination(req PageRequest, total int64) Pagination {
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}
