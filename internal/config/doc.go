// Package config loads keyview's settings.
//
// Settings come from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← applied by cmd/keyview
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← KEYVIEW_LOG_LEVEL, KEYVIEW_LOG_FILE
//	├─────────────────────────────┤
//	│  1. Config File             │  ← ~/.config/keyview/config.toml
//	├─────────────────────────────┤
//	│  0. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file is TOML:
//
//	[log]
//	level = "debug"
//	file = "/tmp/keyview.log"
//
//	[theme]
//	mode_fg = "#000000"
//	mode_bg = "#B890F3"
//	file_fg = "#FFFFFF"
//	file_bg = "#3C4659"
//	left_separator = "\uE0B0"
//	right_separator = "\uE0B2"
//
// A missing file is not an error. Unknown keys are.
package config
