package keyboard

import (
	tele "gopkg.in/telebot.v4"
)

// Button is an inline keyboard button. Exactly one action field (Data, URL,
// InlineQuery, InlineQueryChat, WebApp) should be set; the validator enforces
// this, the model itself does not.
type Button struct {
	Text            string
	Data            string
	URL             string
	InlineQuery     string
	InlineQueryChat string
	WebApp          string
}

// Btn creates a callback button with raw callback_data (no encoding applied).
func Btn(text, data string) Button {
	return Button{Text: text, Data: data}
}

// URLBtn creates a URL button.
func URLBtn(text, url string) Button {
	return Button{Text: text, URL: url}
}

func (b Button) telebot() tele.Btn {
	tb := tele.Btn{
		Text:            b.Text,
		Data:            b.Data,
		URL:             b.URL,
		InlineQuery:     b.InlineQuery,
		InlineQueryChat: b.InlineQueryChat,
	}
	if b.WebApp != "" {
		tb.WebApp = &tele.WebApp{URL: b.WebApp}
	}
	return tb
}

// Row is one horizontal line of inline buttons.
type Row []Button

// ReplyButton is a button on a reply (non-inline) keyboard.
type ReplyButton struct {
	Text            string
	RequestContact  bool
	RequestLocation bool
}

// TextBtn creates a plain reply button.
func TextBtn(text string) ReplyButton {
	return ReplyButton{Text: text}
}

func (b ReplyButton) telebot() tele.Btn {
	return tele.Btn{
		Text:     b.Text,
		Contact:  b.RequestContact,
		Location: b.RequestLocation,
	}
}
