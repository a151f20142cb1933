package keyboard

import (
	"encoding/json"
	"fmt"

	yaml "go.yaml.in/yaml/v3"

	"keyboardkit/internal/yamlx"
)

// Keyboard kinds in snapshots.
const (
	SnapshotInline = "inline"
	SnapshotReply  = "reply"
)

// ButtonSnapshot is the serialized form of one button. Reply buttons use only
// Text plus the request flags.
type ButtonSnapshot struct {
	Text            string `json:"text"`
	Data            string `json:"data,omitempty"`
	URL             string `json:"url,omitempty"`
	InlineQuery     string `json:"inline_query,omitempty"`
	InlineQueryChat string `json:"inline_query_chat,omitempty"`
	WebApp          string `json:"web_app,omitempty"`
	RequestContact  bool   `json:"request_contact,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

// PaginationSnapshot preserves the last Paginate call.
type PaginationSnapshot struct {
	TotalPages      int    `json:"total_pages"`
	CurrentPage     int    `json:"current_page"`
	CallbackPattern string `json:"callback_pattern"`
}

// ReplySnapshot preserves reply keyboard flags.
type ReplySnapshot struct {
	Resize      bool   `json:"resize,omitempty"`
	OneTime     bool   `json:"one_time,omitempty"`
	Selective   bool   `json:"selective,omitempty"`
	Persistent  bool   `json:"persistent,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Snapshot is a serializable picture of a keyboard, round-trippable through
// JSON and YAML.
type Snapshot struct {
	Type       string              `json:"type"`
	RowWidth   int                 `json:"row_width"`
	Rows       [][]ButtonSnapshot  `json:"rows"`
	Pagination *PaginationSnapshot `json:"pagination,omitempty"`
	Reply      *ReplySnapshot      `json:"reply,omitempty"`
}

// Snapshot captures the keyboard's rows, width, and pagination state.
func (k *InlineKeyboard) Snapshot() Snapshot {
	s := Snapshot{Type: SnapshotInline, RowWidth: k.rowWidth, Rows: make([][]ButtonSnapshot, 0, len(k.rows))}
	for _, row := range k.rows {
		sr := make([]ButtonSnapshot, 0, len(row))
		for _, b := range row {
			sr = append(sr, ButtonSnapshot{
				Text:            b.Text,
				Data:            b.Data,
				URL:             b.URL,
				InlineQuery:     b.InlineQuery,
				InlineQueryChat: b.InlineQueryChat,
				WebApp:          b.WebApp,
			})
		}
		s.Rows = append(s.Rows, sr)
	}
	if k.totalPages > 0 {
		s.Pagination = &PaginationSnapshot{
			TotalPages:      k.totalPages,
			CurrentPage:     k.currentPage,
			CallbackPattern: k.callbackPattern,
		}
	}
	return s
}

// Snapshot captures the reply keyboard's rows, width, and flags.
func (k *ReplyKeyboard) Snapshot() Snapshot {
	s := Snapshot{
		Type:     SnapshotReply,
		RowWidth: k.rowWidth,
		Rows:     make([][]ButtonSnapshot, 0, len(k.rows)),
		Reply: &ReplySnapshot{
			Resize:      k.Resize,
			OneTime:     k.OneTime,
			Selective:   k.Selective,
			Persistent:  k.Persistent,
			Placeholder: k.Placeholder,
		},
	}
	for _, row := range k.rows {
		sr := make([]ButtonSnapshot, 0, len(row))
		for _, b := range row {
			sr = append(sr, ButtonSnapshot{
				Text:            b.Text,
				RequestContact:  b.RequestContact,
				RequestLocation: b.RequestLocation,
			})
		}
		s.Rows = append(s.Rows, sr)
	}
	return s
}

// ExportJSON serializes the inline keyboard as indented JSON.
func (k *InlineKeyboard) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(k.Snapshot(), "", "  ")
}

// ExportYAML serializes the inline keyboard as YAML.
func (k *InlineKeyboard) ExportYAML() ([]byte, error) {
	return yaml.Marshal(snapshotToAny(k.Snapshot()))
}

// ExportJSON serializes the reply keyboard as indented JSON.
func (k *ReplyKeyboard) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(k.Snapshot(), "", "  ")
}

// ExportYAML serializes the reply keyboard as YAML.
func (k *ReplyKeyboard) ExportYAML() ([]byte, error) {
	return yaml.Marshal(snapshotToAny(k.Snapshot()))
}

// ImportJSON rebuilds an inline keyboard from a JSON snapshot.
func ImportJSON(data []byte) (*InlineKeyboard, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("keyboard: decode snapshot: %w", err)
	}
	return fromSnapshot(s)
}

// ImportYAML rebuilds an inline keyboard from a YAML snapshot. YAML is
// normalized through JSON so both formats share one strict decode path.
func ImportYAML(data []byte) (*InlineKeyboard, error) {
	jb, err := yamlx.JSONBytes(data)
	if err != nil {
		return nil, fmt.Errorf("keyboard: decode yaml snapshot: %w", err)
	}
	return ImportJSON(jb)
}

func fromSnapshot(s Snapshot) (*InlineKeyboard, error) {
	if s.Type != SnapshotInline {
		return nil, &ValidationError{
			Field:    "type",
			Value:    s.Type,
			Expected: fmt.Sprintf("%q", SnapshotInline),
			Reason:   "unsupported keyboard type",
		}
	}
	k := NewInline()
	if s.RowWidth >= 1 {
		k.rowWidth = s.RowWidth
	}
	for _, row := range s.Rows {
		r := make(Row, 0, len(row))
		for _, b := range row {
			r = append(r, Button{
				Text:            b.Text,
				Data:            b.Data,
				URL:             b.URL,
				InlineQuery:     b.InlineQuery,
				InlineQueryChat: b.InlineQueryChat,
				WebApp:          b.WebApp,
			})
		}
		k.rows = append(k.rows, r)
	}
	if p := s.Pagination; p != nil {
		k.totalPages = p.TotalPages
		k.currentPage = p.CurrentPage
		k.callbackPattern = p.CallbackPattern
	}
	return k, nil
}

// snapshotToAny routes the snapshot through JSON so YAML output uses the
// json tag names instead of Go field names.
func snapshotToAny(s Snapshot) any {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return s
	}
	return v
}
