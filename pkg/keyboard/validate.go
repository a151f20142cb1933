package keyboard

import (
	"fmt"
	"sync"
)

// Rule checks one button. Returning a non-nil error fails validation; rules
// should return *ValidationError so callers can inspect field and reason.
type Rule struct {
	Name  string
	Check func(Button) error
}

// DefaultRules returns the rules every Validator starts with: non-empty text,
// callback data within Telegram's byte limit, exactly one action per button.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "text",
			Check: func(b Button) error {
				if b.Text == "" {
					return &ValidationError{Field: "text", Reason: "must not be empty"}
				}
				return nil
			},
		},
		{
			Name: "data-length",
			Check: func(b Button) error {
				if len(b.Data) > MaxCallbackDataLen {
					return &ValidationError{
						Field:    "data",
						Value:    b.Data,
						Expected: fmt.Sprintf("at most %d bytes", MaxCallbackDataLen),
						Reason:   fmt.Sprintf("callback data is %d bytes, limit is %d", len(b.Data), MaxCallbackDataLen),
					}
				}
				return nil
			},
		},
		{
			Name: "single-action",
			Check: func(b Button) error {
				n := 0
				for _, set := range []bool{
					b.Data != "", b.URL != "", b.InlineQuery != "", b.InlineQueryChat != "", b.WebApp != "",
				} {
					if set {
						n++
					}
				}
				if n != 1 {
					return &ValidationError{
						Field:    "action",
						Value:    b,
						Expected: "exactly one of data/url/inline_query/web_app",
						Reason:   fmt.Sprintf("%d action fields set", n),
					}
				}
				return nil
			},
		},
	}
}

// Validator applies button rules and keyboard-level limits. Safe for
// concurrent use; rules can be added at runtime.
type Validator struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewValidator creates a validator preloaded with DefaultRules.
func NewValidator() *Validator {
	return &Validator{rules: DefaultRules()}
}

// AddRule appends a named rule.
func (v *Validator) AddRule(name string, check func(Button) error) {
	v.mu.Lock()
	v.rules = append(v.rules, Rule{Name: name, Check: check})
	v.mu.Unlock()
}

// ValidateButton runs all rules against one button, returning the first failure.
func (v *Validator) ValidateButton(b Button) error {
	v.mu.RLock()
	rules := v.rules
	v.mu.RUnlock()

	for _, r := range rules {
		if err := r.Check(b); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKeyboard checks keyboard-level limits, then every button.
func (v *Validator) ValidateKeyboard(k *InlineKeyboard) error {
	if n := k.ButtonCount(); n > MaxKeyboardButtons {
		return &ValidationError{
			Field:    "keyboard",
			Value:    n,
			Expected: fmt.Sprintf("at most %d buttons", MaxKeyboardButtons),
			Reason:   fmt.Sprintf("keyboard has %d buttons, limit is %d", n, MaxKeyboardButtons),
		}
	}
	for _, row := range k.Rows() {
		for _, b := range row {
			if err := v.ValidateButton(b); err != nil {
				return err
			}
		}
	}
	return nil
}

// Hook observes a finished keyboard before it is rendered. Hooks may mutate
// the keyboard; a non-nil error aborts Finalize.
type Hook func(*InlineKeyboard) error

// HookManager is an ordered, concurrency-safe hook list.
type HookManager struct {
	mu    sync.RWMutex
	hooks []Hook
}

// NewHookManager creates an empty hook list.
func NewHookManager() *HookManager { return &HookManager{} }

// Add appends a hook.
func (m *HookManager) Add(h Hook) {
	if h == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, h)
	m.mu.Unlock()
}

// Run executes hooks in registration order, stopping at the first error.
func (m *HookManager) Run(k *InlineKeyboard) error {
	m.mu.RLock()
	hooks := m.hooks
	m.mu.RUnlock()

	for _, h := range hooks {
		if err := h(k); err != nil {
			return err
		}
	}
	return nil
}
