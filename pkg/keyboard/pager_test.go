package keyboard

import (
	"errors"
	"reflect"
	"testing"
)

func mustTemplate(t *testing.T, pattern string) *CallbackTemplate {
	t.Helper()
	tpl, err := NewCallbackTemplate(pattern)
	if err != nil {
		t.Fatalf("NewCallbackTemplate(%q): %v", pattern, err)
	}
	return tpl
}

func TestComputePagerSmallTier(t *testing.T) {
	tpl := mustTemplate(t, "p:{number}")

	row, err := ComputePager(3, 2, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}

	want := Row{
		Btn("1", "p:1"),
		Btn("· 2 ·", "p:2"),
		Btn("3", "p:3"),
	}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("row = %+v, want %+v", row, want)
	}
}

func TestComputePagerSmallTierCounts(t *testing.T) {
	tpl := mustTemplate(t, "p:{number}")
	for total := 1; total <= 5; total++ {
		for current := 1; current <= total; current++ {
			row, err := ComputePager(total, current, tpl)
			if err != nil {
				t.Fatalf("ComputePager(%d, %d): %v", total, current, err)
			}
			if len(row) != total {
				t.Fatalf("ComputePager(%d, %d) row length = %d, want %d", total, current, len(row), total)
			}
			for _, b := range row {
				if b.Text == symbolGap {
					t.Fatalf("ComputePager(%d, %d) produced a gap button", total, current)
				}
			}
		}
	}
}

func TestComputePagerMiddleWindow(t *testing.T) {
	tpl := mustTemplate(t, "page:{number}")

	row, err := ComputePager(25, 12, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}

	want := Row{
		Btn("« 1", "page:1"),
		Btn("‹ 11", "page:11"),
		Btn("1", "page:1"),
		Btn("…", "page:6"),
		Btn("11", "page:11"),
		Btn("· 12 ·", "page:12"),
		Btn("13", "page:13"),
		Btn("…", "page:19"),
		Btn("25", "page:25"),
		Btn("13 ›", "page:13"),
		Btn("25 »", "page:25"),
	}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("row = %+v, want %+v", row, want)
	}
}

func TestComputePagerBoundedLength(t *testing.T) {
	tpl := mustTemplate(t, "page:{number}")

	for _, total := range []int{6, 10, 100, 10_000, 1_000_000} {
		for _, current := range []int{1, 2, total / 2, total - 1, total} {
			if current < 1 {
				continue
			}
			row, err := ComputePager(total, current, tpl)
			if err != nil {
				t.Fatalf("ComputePager(%d, %d): %v", total, current, err)
			}
			if len(row) > MaxPagerButtons {
				t.Fatalf("ComputePager(%d, %d) row length = %d, exceeds %d", total, current, len(row), MaxPagerButtons)
			}
		}
	}
}

func TestComputePagerExtremities(t *testing.T) {
	tpl := mustTemplate(t, "p:{number}")

	// First page: prev clamps to 1, single gap to the last page.
	row, err := ComputePager(10, 1, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}
	if row[0].Data != "p:1" || row[1].Data != "p:1" {
		t.Fatalf("first/prev should target page 1, got %q / %q", row[0].Data, row[1].Data)
	}
	if last := row[len(row)-1]; last.Data != "p:10" {
		t.Fatalf("last should target page 10, got %q", last.Data)
	}

	// Last page: next clamps to totalPages.
	row, err = ComputePager(10, 10, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}
	if next := row[len(row)-2]; next.Data != "p:10" {
		t.Fatalf("next should clamp to page 10, got %q", next.Data)
	}
}

func TestComputePagerGapTargetsMidpoint(t *testing.T) {
	tpl := mustTemplate(t, "p:{number}")

	row, err := ComputePager(100, 50, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}

	var gaps []string
	for _, b := range row {
		if b.Text == symbolGap {
			gaps = append(gaps, b.Data)
		}
	}
	// Elided ranges are 2..48 and 52..99; midpoints of the displayed
	// neighbors (1,49) and (51,100).
	want := []string{"p:25", "p:75"}
	if !reflect.DeepEqual(gaps, want) {
		t.Fatalf("gap targets = %v, want %v", gaps, want)
	}
}

func TestComputePagerPure(t *testing.T) {
	tpl := mustTemplate(t, "p:{number}")

	a, err := ComputePager(40, 7, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}
	b, err := ComputePager(40, 7, tpl)
	if err != nil {
		t.Fatalf("ComputePager: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different rows:\n%+v\n%+v", a, b)
	}
}

func TestComputePagerRejections(t *testing.T) {
	tpl := mustTemplate(t, "page:{number}")

	cases := []struct {
		name      string
		total     int
		current   int
		wantParam string
	}{
		{"zero total", 0, 1, "total_pages"},
		{"negative total", -3, 1, "total_pages"},
		{"current too high", 5, 6, "current_page"},
		{"current zero", 5, 0, "current_page"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputePager(tc.total, tc.current, tpl)
			var pe *PaginationError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *PaginationError", err)
			}
			if pe.Param != tc.wantParam {
				t.Fatalf("param = %q, want %q", pe.Param, tc.wantParam)
			}
		})
	}
}

func TestPaginateMissingPlaceholder(t *testing.T) {
	k := NewInline()
	err := k.Paginate(5, 1, "page_number")
	var pe *PaginationError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PaginationError", err)
	}
	if pe.Param != "callback_pattern" {
		t.Fatalf("param = %q, want callback_pattern", pe.Param)
	}
	if len(k.Rows()) != 0 {
		t.Fatalf("no row should be appended on failure")
	}
}

func TestPaginateValidationBeatsGuard(t *testing.T) {
	g := NewGuard()
	k := NewInline().WithGuard(g)

	if err := k.Paginate(5, 3, "p:{number}"); err != nil {
		t.Fatalf("first paginate: %v", err)
	}
	// Same request but invalid current page: must fail as input error, not
	// as unchanged, and must not touch the guard.
	err := k.Paginate(5, 9, "p:{number}")
	if IsUnchanged(err) {
		t.Fatalf("invalid input reported as unchanged")
	}
	var pe *PaginationError
	if !errors.As(err, &pe) || pe.Param != "current_page" {
		t.Fatalf("err = %v, want *PaginationError for current_page", err)
	}
}

func TestPaginateAppendsSingleRow(t *testing.T) {
	k := NewInline()
	if err := k.Paginate(25, 12, "page:{number}"); err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(k.Rows()) != 1 {
		t.Fatalf("rows = %d, want 1", len(k.Rows()))
	}

	s := k.Snapshot()
	if s.Pagination == nil || s.Pagination.TotalPages != 25 || s.Pagination.CurrentPage != 12 {
		t.Fatalf("snapshot pagination = %+v", s.Pagination)
	}
}
