// Package ui contains the Bubble Tea program that draws the menu screens.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Every handled key produces one interaction frame: each button of the
//     visible screen reports Idle, Hovered or Pressed and the frame is handed
//     to the dispatcher, which is the only code that mutates the navigator.
//   - Terminals do not report key releases. A press stays held until no
//     press key has arrived for the configured release delay, so key repeat
//     produces a single activation.
//
// State ownership:
//   - The Presenter keeps every realized screen, its visibility, its cursor
//     and the last feedback reported for its buttons.
//   - The navigation.Navigator owns the stack of handles; the Model only
//     reads it to draw the breadcrumb.
package ui
