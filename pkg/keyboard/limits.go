package keyboard

// Telegram hard limits enforced by the validator.
const (
	// MaxCallbackDataLen is Telegram's callback_data size limit in bytes.
	MaxCallbackDataLen = 64

	// MaxKeyboardButtons is the most buttons Telegram accepts per keyboard.
	MaxKeyboardButtons = 100
)
