package listing

import "strconv"

// compactThreshold is the largest page count rendered without ellipses.
const compactThreshold = 5

// EllipsisPosition tells presentation code which gap an ellipsis token fills.
type EllipsisPosition int

const (
	// NotEllipsis marks a page-number token.
	NotEllipsis EllipsisPosition = iota
	// EllipsisStart is the gap between page 1 and the window.
	EllipsisStart
	// EllipsisEnd is the gap between the window and the last page.
	EllipsisEnd
)

// Token is one entry of a page strip: either a page number or an ellipsis.
type Token struct {
	page     int
	ellipsis EllipsisPosition
}

// PageToken returns a page-number token.
func PageToken(page int) Token {
	return Token{page: page}
}

// Ellipsis returns an ellipsis token for the given gap.
func Ellipsis(pos EllipsisPosition) Token {
	return Token{ellipsis: pos}
}

// IsEllipsis reports whether the token is an ellipsis marker.
func (t Token) IsEllipsis() bool {
	return t.ellipsis != NotEllipsis
}

// Page returns the page number, or 0 for an ellipsis.
func (t Token) Page() int {
	return t.page
}

// Position returns the ellipsis gap, or NotEllipsis for page tokens.
func (t Token) Position() EllipsisPosition {
	return t.ellipsis
}

// String renders the token as the page number or "ellipsis".
func (t Token) String() string {
	if t.IsEllipsis() {
		return "ellipsis"
	}
	return strconv.Itoa(t.page)
}

// MarshalText renders a token for JSON/YAML encoders so a strip serializes as
// a mix of numbers-as-strings and "ellipsis".
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TotalPages returns ceil(totalItems / pageSize). A non-positive page size
// yields 0 pages.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		pages++
	}
	return pages
}

// ClampPage moves page into [1, totalPages]. With no pages at all it returns 1.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PlanStrip computes the compressed page-number strip for a list.
//
// With five pages or fewer every page is listed. Otherwise the strip always
// starts with page 1 and ends with the last page, shows a window of up to three
// pages around currentPage, and marks skipped ranges with ellipsis tokens:
//
//	PlanStrip(130, 10, 7) // [1 … 6 7 8 … 13]
//	PlanStrip(130, 10, 2) // [1 2 3 4 … 13]
//	PlanStrip(130, 10, 12) // [1 … 10 11 12 13]
//
// An empty list produces an empty strip; callers should not render a control.
func PlanStrip(totalItems, pageSize, currentPage int) []Token {
	totalPages := TotalPages(totalItems, pageSize)
	if totalPages == 0 {
		return []Token{}
	}

	if totalPages <= compactThreshold {
		tokens := make([]Token, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			tokens = append(tokens, PageToken(i))
		}
		return tokens
	}

	tokens := []Token{PageToken(1)}
	if currentPage > 3 {
		tokens = append(tokens, Ellipsis(EllipsisStart))
	}

	startPage := max(2, currentPage-1)
	endPage := min(totalPages-1, currentPage+1)
	if currentPage <= 3 {
		startPage = 2
		endPage = min(totalPages-1, 4)
	} else if currentPage >= totalPages-2 {
		startPage = max(2, totalPages-3)
		endPage = totalPages - 1
	}

	for i := startPage; i <= endPage; i++ {
		tokens = append(tokens, PageToken(i))
	}

	if currentPage < totalPages-2 && endPage < totalPages-1 {
		tokens = append(tokens, Ellipsis(EllipsisEnd))
	}

	if totalPages > 1 {
		tokens = append(tokens, PageToken(totalPages))
	}

	return tokens
}
