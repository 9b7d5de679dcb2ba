// Package ui contains the Bubble Tea program that draws a menu.Builder in the
// terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function: key presses, terminal resizes and ViewChangedMsg.
//   - Navigation helpers (navigation.go) move the cursor, open the entry under
//     it through Builder.NavigateTo and mark the opened view active. Filter
//     helpers (input.go) keep text entry isolated from the event loop.
//   - After every message the entry snapshot is re-read from the builder, so
//     changes made elsewhere (an HTTP navigation, a rebuild) show up on the
//     next frame.
//
// State ownership:
//   - The builder owns entries, selection, the active entry, the title and the
//     collapsed-menu flag. The model never mutates entries directly.
//   - internal/ui/state.List owns what only the terminal needs: the quick
//     filter, the cursor and the scroll offset.
//
// Layout:
//   - View walks Builder.Components top to bottom. The header, toggle and
//     entry parts are drawn by the model; any other component, such as the
//     secondary component, is drawn with its own Render.
//   - Below a configurable width the entries collapse behind the toggle line
//     and tab opens them; opening a view closes them again.
package ui
