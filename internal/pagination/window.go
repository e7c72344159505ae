// Package pagination computes the page-number buttons shown under a list.
package pagination

// WindowSize is the number of page buttons shown at once
const WindowSize = 5

// Window is the sliding range of page buttons centered on the current page
type Window struct {
	Current int
	Total   int
	Start   int
	End     int
	Pages   []int
	// ShowFirst renders the jump-to-first button followed by an ellipsis
	ShowFirst bool
	// ShowLast renders an ellipsis followed by the jump-to-last button
	ShowLast bool
}

// Compute returns the window for the current page out of total pages.
// Out-of-range inputs are clamped to [1, total].
func Compute(current, total int) Window {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	half := WindowSize / 2
	var start, end int
	switch {
	case total <= WindowSize:
		start, end = 1, total
	case current <= half+1:
		start, end = 1, WindowSize
	case current >= total-half:
		start, end = total-WindowSize+1, total
	default:
		start, end = current-half, current+half
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		Current:   current,
		Total:     total,
		Start:     start,
		End:       end,
		Pages:     pages,
		ShowFirst: total > WindowSize && start > 1,
		ShowLast:  total > WindowSize && end < total,
	}
}
