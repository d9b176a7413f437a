package models

// Page is a window over an ordered article sequence
type Page struct {
	Content       []Article `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// NewPage builds a page envelope from a window of content
func NewPage(content []Article, req PageRequest, total int) *Page {
	if content == nil {
		content = []Article{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = (total + req.Size - 1) / req.Size
	}

	return &Page{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// PageRequest identifies a page window. Page indexes are 0-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to sane bounds
func (r PageRequest) Normalize(defaultSize, maxSize int) PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size < 1 {
		r.Size = defaultSize
	}
	if r.Size > maxSize {
		r.Size = maxSize
	}
	return r
}

// Offset returns the element offset of the window start
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}
