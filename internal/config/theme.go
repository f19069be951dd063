package config

import (
	"github.com/dshills/keyview/internal/renderer/core"
	"github.com/dshills/keyview/internal/renderer/statusline"
)

// StatusTheme converts the configured colors into a status line theme.
// The position segment shares the mode segment's colors.
func (t ThemeConfig) StatusTheme() (statusline.Theme, error) {
	colors := []struct{ path, value string }{
		{"theme.mode_fg", t.ModeFG},
		{"theme.mode_bg", t.ModeBG},
		{"theme.file_fg", t.FileFG},
		{"theme.file_bg", t.FileBG},
	}

	parsed := make([]core.Color, len(colors))
	for i, c := range colors {
		color, err := core.ColorFromHex(c.value)
		if err != nil {
			return statusline.Theme{}, &ValidationError{Path: c.path, Value: c.value, Message: err.Error()}
		}
		parsed[i] = color
	}
	modeFG, modeBG, fileFG, fileBG := parsed[0], parsed[1], parsed[2], parsed[3]

	for _, sep := range []struct{ path, value string }{
		{"theme.left_separator", t.LeftSeparator},
		{"theme.right_separator", t.RightSeparator},
	} {
		if core.StringWidth(sep.value) > 2 {
			return statusline.Theme{}, &ValidationError{Path: sep.path, Value: sep.value, Message: "separator wider than two cells"}
		}
	}

	return statusline.Theme{
		Mode:           core.DefaultStyle().WithForeground(modeFG).WithBackground(modeBG),
		File:           core.DefaultStyle().WithForeground(fileFG).WithBackground(fileBG).Bold(),
		Position:       core.DefaultStyle().WithForeground(modeFG).WithBackground(modeBG).Bold(),
		LeftSeparator:  t.LeftSeparator,
		RightSeparator: t.RightSeparator,
	}, nil
}
