package keyboard

import (
	"fmt"
	"sort"
)

// Pager glyphs. First/prev/next/last carry their target page number the way
// Telegram pagination keyboards conventionally do; the gap button stands in
// for an elided run of pages and targets its midpoint, so it still navigates
// somewhere useful instead of being dead.
const (
	symbolFirst   = "« %d"
	symbolPrev    = "‹ %d"
	symbolCurrent = "· %d ·"
	symbolNext    = "%d ›"
	symbolLast    = "%d »"
	symbolGap     = "…"
)

// fullPagerThreshold is the largest page count rendered without a window:
// every page gets its own button and no wrapper buttons are added.
const fullPagerThreshold = 5

// MaxPagerButtons bounds the pager row length for any page count:
// first + prev + {1, gap, current-1, current, current+1, gap, last} + next + last.
const MaxPagerButtons = 11

// ComputePager builds the single navigation row for a paginated view.
//
// For totalPages <= 5 every page gets a button and the current page is marked
// with the · n · variant (still actionable). Beyond that the row shows a fixed
// window around the current page with gap buttons bridging elided ranges, and
// is wrapped with first/prev/next/last jump buttons. The row length is bounded
// by MaxPagerButtons regardless of totalPages.
//
// It is a pure function: validation failures return a PaginationError and no
// partial row, identical inputs yield identical rows.
func ComputePager(totalPages, currentPage int, tpl *CallbackTemplate) (Row, error) {
	if totalPages < 1 {
		return nil, &PaginationError{Param: "total_pages", Value: totalPages, Reason: "must be at least 1"}
	}
	if currentPage < 1 || currentPage > totalPages {
		return nil, &PaginationError{
			Param:  "current_page",
			Value:  currentPage,
			Reason: fmt.Sprintf("must be between 1 and %d", totalPages),
		}
	}
	if tpl == nil {
		return nil, &PaginationError{Param: "callback_pattern", Value: nil, Reason: "template is nil"}
	}

	if totalPages <= fullPagerThreshold {
		row := make(Row, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			row = append(row, pageButton(p, currentPage, tpl))
		}
		return row, nil
	}

	window := pagerWindow(totalPages, currentPage)

	row := make(Row, 0, MaxPagerButtons)
	row = append(row,
		Btn(fmt.Sprintf(symbolFirst, 1), tpl.Render(1)),
		Btn(fmt.Sprintf(symbolPrev, max(currentPage-1, 1)), tpl.Render(max(currentPage-1, 1))),
	)
	for i, p := range window {
		if i > 0 && p > window[i-1]+1 {
			mid := (window[i-1] + p) / 2
			row = append(row, Btn(symbolGap, tpl.Render(mid)))
		}
		row = append(row, pageButton(p, currentPage, tpl))
	}
	row = append(row,
		Btn(fmt.Sprintf(symbolNext, min(currentPage+1, totalPages)), tpl.Render(min(currentPage+1, totalPages))),
		Btn(fmt.Sprintf(symbolLast, totalPages), tpl.Render(totalPages)),
	)
	return row, nil
}

// pagerWindow returns the displayed page numbers, ascending and deduplicated:
// {1, currentPage-1, currentPage, currentPage+1, totalPages} clipped to range.
func pagerWindow(totalPages, currentPage int) []int {
	candidates := [...]int{1, currentPage - 1, currentPage, currentPage + 1, totalPages}
	window := make([]int, 0, len(candidates))
	for _, p := range candidates {
		if p < 1 || p > totalPages {
			continue
		}
		window = append(window, p)
	}
	sort.Ints(window)
	out := window[:0]
	for i, p := range window {
		if i > 0 && p == window[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func pageButton(page, currentPage int, tpl *CallbackTemplate) Button {
	label := fmt.Sprintf("%d", page)
	if page == currentPage {
		label = fmt.Sprintf(symbolCurrent, page)
	}
	return Btn(label, tpl.Render(page))
}

// Paginate validates the request, computes the pager row, consults the
// attached duplicate guard (if any), and appends the row to the keyboard.
//
// Invalid arguments fail with a PaginationError before the guard runs, so
// input errors always take precedence over PaginationUnchangedError. When the
// guard reports the row as unchanged, nothing is appended.
func (k *InlineKeyboard) Paginate(totalPages, currentPage int, pattern string, opts ...PaginateOption) error {
	var o paginateOpts
	for _, opt := range opts {
		opt(&o)
	}

	tpl, err := NewCallbackTemplate(pattern)
	if err != nil {
		return err
	}
	row, err := ComputePager(totalPages, currentPage, tpl)
	if err != nil {
		return err
	}
	if k.guard != nil {
		if err := k.guard.CheckAndRecord(pattern, totalPages, currentPage, o.source); err != nil {
			return err
		}
	}

	k.totalPages = totalPages
	k.currentPage = currentPage
	k.callbackPattern = pattern
	k.rows = append(k.rows, row)
	return nil
}

type paginateOpts struct {
	source string
}

// PaginateOption tweaks a single Paginate call.
type PaginateOption func(*paginateOpts)

// WithSource partitions duplicate detection by an isolation key (chat ID,
// client name). Calls with different sources never suppress each other.
func WithSource(source string) PaginateOption {
	return func(o *paginateOpts) { o.source = source }
}
