// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with color when the terminal supports it, and fall back
// to plain decorations (backticks, quotes, parentheses) when NO_COLOR is set
// or color is otherwise disabled.
//
//	ui.Code.Sprint("fragment device register")
//	ui.Highlight.Sprint(keyID)
//	ui.Success.Sprint(ui.SuccessMark) + " Device key stored"
//	ui.Field("API URL", 10, url)
package ui
