package reading

import "strconv"

// DefaultPreviewLimit is how many pages a book exposes to readers
// without full access.
const DefaultPreviewLimit = 3

// CanAccess decides whether one page is viewable. Pure; callers
// guarantee pageIndex >= 0.
func CanAccess(hasFullAccess bool, pageIndex, previewLimit int) bool {
	return hasFullAccess || pageIndex < previewLimit
}

// ParsePageParam parses the optional ?page= query value. Only a
// non-negative base-10 integer counts; anything else means "not given".
func ParsePageParam(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// StartIndex picks where the reader opens: an explicit page parameter
// wins, else the stored resume position, else the first page. The
// stored position is clamped into the book's current page range since
// a book may have been shortened after the session was written.
func StartIndex(pageParam string, session *Session, pageCount int) int {
	if n, ok := ParsePageParam(pageParam); ok {
		return n
	}
	if session != nil {
		return clampIndex(session.CurrentPageIndex, pageCount)
	}
	return 0
}

func clampIndex(idx, pageCount int) int {
	if idx < 0 {
		return 0
	}
	if pageCount > 0 && idx >= pageCount {
		return pageCount - 1
	}
	if pageCount <= 0 {
		return 0
	}
	return idx
}
