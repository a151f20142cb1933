package keyboard

// Builder is a fluent constructor for inline keyboards. Errors stick: the
// first failure is remembered and returned by Build, so chains stay clean.
type Builder struct {
	kb  *InlineKeyboard
	row Row
	err error
}

// NewBuilder starts an empty inline keyboard chain.
func NewBuilder() *Builder {
	return &Builder{kb: NewInline()}
}

// RowWidth sets the grid width used by Buttons.
func (b *Builder) RowWidth(n int) *Builder {
	if b.err == nil {
		b.err = b.kb.SetRowWidth(n)
	}
	return b
}

// Guard attaches a duplicate guard to the keyboard under construction.
func (b *Builder) Guard(g *Guard) *Builder {
	b.kb.WithGuard(g)
	return b
}

// Button appends a callback button to the current row.
func (b *Builder) Button(text, data string) *Builder {
	b.row = append(b.row, Btn(text, data))
	return b
}

// URLButton appends a URL button to the current row.
func (b *Builder) URLButton(text, url string) *Builder {
	b.row = append(b.row, URLBtn(text, url))
	return b
}

// NewRow closes the current row. An empty current row is a no-op.
func (b *Builder) NewRow() *Builder {
	if len(b.row) > 0 {
		b.kb.Row(b.row...)
		b.row = nil
	}
	return b
}

// Buttons appends buttons grid-split by the configured row width, after
// closing any open row.
func (b *Builder) Buttons(btns ...Button) *Builder {
	b.NewRow()
	b.kb.Add(btns...)
	return b
}

// Paginate closes any open row and appends a pagination row.
func (b *Builder) Paginate(totalPages, currentPage int, pattern string, opts ...PaginateOption) *Builder {
	b.NewRow()
	if b.err == nil {
		b.err = b.kb.Paginate(totalPages, currentPage, pattern, opts...)
	}
	return b
}

// Languages closes any open row and appends a locale picker.
func (b *Builder) Languages(pattern string, locales []string, rowWidth int) *Builder {
	b.NewRow()
	if b.err == nil {
		b.err = b.kb.Languages(pattern, locales, rowWidth)
	}
	return b
}

// Build closes any open row and returns the keyboard, or the first error
// recorded along the chain.
func (b *Builder) Build() (*InlineKeyboard, error) {
	b.NewRow()
	if b.err != nil {
		return nil, b.err
	}
	return b.kb, nil
}

// Confirm builds a one-row yes/no keyboard.
func Confirm(yes, no Button) *InlineKeyboard {
	k := NewInline()
	k.Row(yes, no)
	return k
}

// Grid splits buttons into cols columns. cols below 1 defaults to 2.
func Grid(cols int, btns ...Button) *InlineKeyboard {
	if cols < 1 {
		cols = 2
	}
	k := NewInline()
	k.rows = append(k.rows, splitRows(cols, btns)...)
	return k
}

// ReplyGrid splits reply buttons into cols columns. cols below 1 defaults to 2.
func ReplyGrid(cols int, btns ...ReplyButton) *ReplyKeyboard {
	if cols < 1 {
		cols = 2
	}
	k := NewReply()
	_ = k.SetRowWidth(cols)
	k.Add(btns...)
	return k
}
