// Package viz provides the terminal front end of a cube browser.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: plots side by side above a focusable slider form
//   - [Frame]: a static rendering for one-shot output
//   - [ProfileChart]: asciigraph chart of a plot mean along a slider
//
// # Key Bindings
//
//	Tab/J/K - Move slider focus
//	H/L     - Step the focused slider
//	[ ]     - Step by five
//	Home/End - Jump to the slider ends
//	P       - Toggle the profile chart
//	?       - Show help overlay
//	Q       - Quit
package viz
