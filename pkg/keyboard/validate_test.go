package keyboard

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatorDefaults(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateButton(Btn("OK", "cb:ok")); err != nil {
		t.Fatalf("valid button rejected: %v", err)
	}

	cases := []struct {
		name      string
		btn       Button
		wantField string
	}{
		{"empty text", Btn("", "cb:x"), "text"},
		{"long data", Btn("x", strings.Repeat("a", MaxCallbackDataLen+1)), "data"},
		{"no action", Button{Text: "x"}, "action"},
		{"two actions", Button{Text: "x", Data: "d", URL: "https://example.org"}, "action"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateButton(tc.btn)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestValidatorCustomRule(t *testing.T) {
	v := NewValidator()
	v.AddRule("no-shouting", func(b Button) error {
		if b.Text == strings.ToUpper(b.Text) && b.Text != "" {
			return &ValidationError{Field: "text", Value: b.Text, Reason: "all-caps labels are not allowed"}
		}
		return nil
	})

	if err := v.ValidateButton(Btn("Ok", "cb:ok")); err != nil {
		t.Fatalf("mixed case rejected: %v", err)
	}
	if err := v.ValidateButton(Btn("STOP", "cb:stop")); err == nil {
		t.Fatalf("custom rule not applied")
	}
}

func TestValidateKeyboardLimits(t *testing.T) {
	v := NewValidator()

	k := NewInline()
	for i := 0; i < MaxKeyboardButtons+1; i++ {
		k.Row(Btn("x", "cb:x"))
	}
	err := v.ValidateKeyboard(k)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "keyboard" {
		t.Fatalf("err = %v, want keyboard-level *ValidationError", err)
	}
}

func TestValidateKeyboardWalksButtons(t *testing.T) {
	v := NewValidator()

	k := NewInline()
	k.Row(Btn("ok", "cb:ok"))
	k.Row(Btn("", "cb:bad"))
	err := v.ValidateKeyboard(k)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "text" {
		t.Fatalf("err = %v, want text *ValidationError", err)
	}
}

func TestHookManagerOrderAndAbort(t *testing.T) {
	m := NewHookManager()
	var order []string

	m.Add(func(k *InlineKeyboard) error {
		order = append(order, "first")
		return nil
	})
	m.Add(func(k *InlineKeyboard) error {
		order = append(order, "second")
		return errors.New("stop here")
	})
	m.Add(func(k *InlineKeyboard) error {
		order = append(order, "third")
		return nil
	})

	err := m.Run(NewInline())
	if err == nil || err.Error() != "stop here" {
		t.Fatalf("err = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("hook order = %v", order)
	}
}

func TestHookCanMutateKeyboard(t *testing.T) {
	m := NewHookManager()
	m.Add(func(k *InlineKeyboard) error {
		k.Row(Btn("Close", "close"))
		return nil
	})

	k := NewInline()
	k.Row(Btn("Hello", "hello"))
	if err := m.Run(k); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(k.Rows()) != 2 {
		t.Fatalf("hook mutation lost, rows = %d", len(k.Rows()))
	}
}
