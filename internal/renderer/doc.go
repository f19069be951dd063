// Package renderer provides the drawing primitives the editor builds its
// frames from.
//
// A frame is drawn in two passes onto a backend.Backend: the viewport body,
// one row per visible buffer line, and then the status line (see the
// statusline subpackage). Every draw call here overwrites the full span it
// is given so a shorter line never leaves characters of a longer one behind.
//
// Layering:
//
//	┌─────────────────────────────────────────┐
//	│      editor (clamp, render, input)      │
//	├─────────────────────────────────────────┤
//	│  renderer.DrawText │ statusline         │
//	├─────────────────────────────────────────┤
//	│     core (Cell, Style, Color)           │
//	├─────────────────────────────────────────┤
//	│  backend: Terminal (tcell) │ Null       │
//	└─────────────────────────────────────────┘
package renderer
