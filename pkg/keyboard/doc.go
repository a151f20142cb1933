// Package keyboard builds inline and reply keyboards for Telegram bots:
//   - Grid and row builders over a small Button model, rendered to telebot
//     markup at the boundary
//   - A windowed pagination row (« 1 ‹ … 11 ·12· 13 … N »-style) whose length
//     stays constant no matter how many pages exist
//   - A duplicate guard that turns repeated identical pagination requests
//     into a recoverable PaginationUnchangedError instead of a redundant edit
//   - Locale pickers, a fluent Builder, validation rules, and JSON/YAML
//     keyboard snapshots
//
// Design goals:
//   - No package-global state: guards are constructed and owned explicitly
//   - Callback patterns are validated templates, rejected at parse time
//   - Errors carry the offending parameter for programmatic handling
package keyboard
