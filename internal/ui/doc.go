// Package ui contains the Bubble Tea program that displays the loom server's
// pattern and sends the operator's commands.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Socket frames arrive as socketEventMsg values produced by a wait command
//     over transport.Client.Events. Each frame is folded into the state.Client
//     view model by dispatcher.Apply; the returned flags decide what to redraw.
//   - Key presses go to the focused area: the pattern view, the pattern menu
//     (navigation.go), the jump form (forms.go) or the upload prompt
//     (prompt.go).
//
// State ownership:
//   - state.Client holds everything learned from the server. Only the
//     dispatcher replaces it, apart from LastSent and the lost-connection
//     flag which the model sets itself.
//   - The pattern menu lives in internal/ui/state.Level, which tracks items,
//     filtering and viewport.
//   - Outgoing commands run through internal/ui/command so writes happen off
//     the Update goroutine. While an upload batch is in flight every other
//     command is refused.
//
// Backend interactions:
//   - An optional backend.Watcher reports pattern files dropped into a
//     directory; each batch is uploaded as if typed at the upload prompt.
package ui
