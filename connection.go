package listing

import "github.com/friendsofgo/errors"

// Connection is the render model for one page of a list: the rows (Nodes),
// the same rows paired with a cursor and a 1-based row number (Edges), and the
// page metadata.
//
// Type parameter T is the row type handed to presentation code.
type Connection[T any] struct {
	// Edges pairs each row with its cursor and row number.
	// Tables that show a "#" column or select rows by position use these.
	Edges []Edge[T] `json:"edges"`

	// Nodes provides direct access to the rows.
	Nodes []T `json:"nodes"`

	// PageInfo contains pagination metadata (current page, tokens, etc.)
	PageInfo PageInfo `json:"-"`
}

// Edge is a row plus its position in the filtered list.
type Edge[T any] struct {
	// Cursor is an opaque string that marks this row's position in the list.
	Cursor string `json:"cursor"`

	// RowNumber is the 1-based position of the row across all pages.
	RowNumber int `json:"rowNumber"`

	// Node is the row itself.
	Node T `json:"node"`
}

// BuildConnection creates a Connection from a slice of source records.
// It maps records to rows and generates a cursor for each.
//
// Type parameters:
//   - From: Source type (e.g., dashboard.Quiz)
//   - To: Target type (e.g., a table row view model)
//
// Parameters:
//   - items: Records on the current page
//   - pageInfo: Pagination metadata
//   - firstRow: Row number of items[0] (1-based)
//   - cursorEncoder: Function that generates a cursor for each record
//   - transform: Function that converts From -> To (can return error)
//
// Example usage:
//
//	conn, err := listing.BuildConnection(
//	    page.Nodes,
//	    *page.PageInfo,
//	    startOffset+1,
//	    func(i int, q dashboard.Quiz) string {
//	        return *offset.EncodeCursor(startOffset + i)
//	    },
//	    toQuizRow,
//	)
func BuildConnection[From any, To any](
	items []From,
	pageInfo PageInfo,
	firstRow int,
	cursorEncoder func(index int, item From) string,
	transform func(From) (To, error),
) (*Connection[To], error) {
	conn := &Connection[To]{
		Nodes:    make([]To, 0, len(items)),
		Edges:    make([]Edge[To], 0, len(items)),
		PageInfo: pageInfo,
	}

	for i, item := range items {
		transformed, err := transform(item)
		if err != nil {
			return nil, errors.Wrapf(err, "transform item at index %d", i)
		}

		conn.Nodes = append(conn.Nodes, transformed)
		conn.Edges = append(conn.Edges, Edge[To]{
			Cursor:    cursorEncoder(i, item),
			RowNumber: firstRow + i,
			Node:      transformed,
		})
	}

	return conn, nil
}
