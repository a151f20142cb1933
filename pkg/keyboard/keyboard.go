package keyboard

import (
	tele "gopkg.in/telebot.v4"
)

// DefaultRowWidth is the grid width used by Add when none is configured.
const DefaultRowWidth = 3

// InlineKeyboard accumulates rows of inline buttons and renders them into a
// telebot ReplyMarkup. The zero value is not ready; use NewInline.
type InlineKeyboard struct {
	rowWidth int
	rows     []Row
	guard    *Guard

	// registered on top of the builtin locale table
	customLocales map[string]string

	// last successful Paginate call, kept for snapshots
	totalPages      int
	currentPage     int
	callbackPattern string
}

// NewInline creates an empty inline keyboard with the default row width.
func NewInline() *InlineKeyboard {
	return &InlineKeyboard{rowWidth: DefaultRowWidth}
}

// SetRowWidth changes the grid width used by Add.
func (k *InlineKeyboard) SetRowWidth(n int) error {
	if n < 1 {
		return &ConfigurationError{Setting: "row_width", Value: n, Reason: "must be a positive integer"}
	}
	k.rowWidth = n
	return nil
}

// RowWidth returns the current grid width.
func (k *InlineKeyboard) RowWidth() int { return k.rowWidth }

// WithGuard attaches a duplicate guard consulted by Paginate.
func (k *InlineKeyboard) WithGuard(g *Guard) *InlineKeyboard {
	k.guard = g
	return k
}

// Add appends buttons split into rows of the configured width.
func (k *InlineKeyboard) Add(btns ...Button) {
	k.rows = append(k.rows, splitRows(k.rowWidth, btns)...)
}

// Row appends a single literal row.
func (k *InlineKeyboard) Row(btns ...Button) {
	k.rows = append(k.rows, Row(btns))
}

// Rows returns the accumulated rows. The slice is shared, not copied.
func (k *InlineKeyboard) Rows() []Row { return k.rows }

// ButtonCount returns the total number of buttons across all rows.
func (k *InlineKeyboard) ButtonCount() int {
	n := 0
	for _, r := range k.rows {
		n += len(r)
	}
	return n
}

// Markup renders the keyboard into a telebot ReplyMarkup.
func (k *InlineKeyboard) Markup() *tele.ReplyMarkup {
	rm := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(k.rows))
	for _, r := range k.rows {
		tr := make(tele.Row, 0, len(r))
		for _, b := range r {
			tr = append(tr, b.telebot())
		}
		rows = append(rows, tr)
	}
	rm.Inline(rows...)
	return rm
}

func splitRows(width int, btns []Button) []Row {
	if width < 1 {
		width = DefaultRowWidth
	}
	rows := make([]Row, 0, (len(btns)+width-1)/width)
	for len(btns) > 0 {
		n := min(width, len(btns))
		rows = append(rows, Row(btns[:n]))
		btns = btns[n:]
	}
	return rows
}

// ReplyKeyboard accumulates rows of reply buttons plus the markup flags
// Telegram understands for reply keyboards.
type ReplyKeyboard struct {
	rowWidth int
	rows     [][]ReplyButton

	Resize      bool
	OneTime     bool
	Selective   bool
	Persistent  bool
	Placeholder string
}

// NewReply creates an empty reply keyboard with the default row width.
func NewReply() *ReplyKeyboard {
	return &ReplyKeyboard{rowWidth: DefaultRowWidth}
}

// SetRowWidth changes the grid width used by Add.
func (k *ReplyKeyboard) SetRowWidth(n int) error {
	if n < 1 {
		return &ConfigurationError{Setting: "row_width", Value: n, Reason: "must be a positive integer"}
	}
	k.rowWidth = n
	return nil
}

// Add appends buttons split into rows of the configured width.
func (k *ReplyKeyboard) Add(btns ...ReplyButton) {
	width := k.rowWidth
	if width < 1 {
		width = DefaultRowWidth
	}
	for len(btns) > 0 {
		n := min(width, len(btns))
		k.rows = append(k.rows, btns[:n])
		btns = btns[n:]
	}
}

// Row appends a single literal row.
func (k *ReplyKeyboard) Row(btns ...ReplyButton) {
	k.rows = append(k.rows, btns)
}

// Rows returns the accumulated rows.
func (k *ReplyKeyboard) Rows() [][]ReplyButton { return k.rows }

// Markup renders the keyboard into a telebot ReplyMarkup.
func (k *ReplyKeyboard) Markup() *tele.ReplyMarkup {
	rm := &tele.ReplyMarkup{
		ResizeKeyboard:  k.Resize,
		OneTimeKeyboard: k.OneTime,
		Selective:       k.Selective,
		IsPersistent:    k.Persistent,
		Placeholder:     k.Placeholder,
	}
	rows := make([]tele.Row, 0, len(k.rows))
	for _, r := range k.rows {
		tr := make(tele.Row, 0, len(r))
		for _, b := range r {
			tr = append(tr, b.telebot())
		}
		rows = append(rows, tr)
	}
	rm.Reply(rows...)
	return rm
}
