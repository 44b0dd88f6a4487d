// Package ui holds the terminal styling shared by ledmon's commands: the
// color palette, status symbols, the doctor report layout, and the sparkline
// and bar helpers used by the live preview.
//
// Colors are ANSI codes so output degrades cleanly on basic terminals. Call
// DisableColors for --no-color.
package ui
