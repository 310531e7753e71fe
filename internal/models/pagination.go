package models

// Page is the pagination envelope returned by every list endpoint.
type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}

// NewPage builds a Page envelope. count is the number of items on this
// page, total the number of matching rows overall.
func NewPage(data interface{}, page, perPage, count, total int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	from := 0
	to := 0
	if count > 0 {
		from = (page-1)*perPage + 1
		to = from + count - 1
	}

	return Page{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		From:        from,
		To:          to,
	}
}
