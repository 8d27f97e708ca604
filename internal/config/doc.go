// Package config loads the carousel configuration file.
//
// # Overview
//
// Configuration lives in ~/.config/carousel/config.toml unless a path is given
// with --config. A missing file is not an error: every field has a default.
//
// # File Format
//
//	slides_to_scroll = 1        # slides per step on a wide terminal
//	slides_visible = 1          # slides shown side by side on a wide terminal
//	loop = false                # wrap around at either end
//	compact_below = 800         # pixels; narrower terminals show one slide
//	cell_width = 8              # pixels per terminal column
//	cell_height = 16            # pixels per terminal row
//	transition_frames = 6       # 0 disables slide animation
//	markdown_style = "dark"     # glamour style, or "plain"
//	log_file = "~/.local/state/carousel/carousel.log"
//	log_level = "info"
//
// # Pixels in a Terminal
//
// The carousel reasons in pixels so that its compact breakpoint and drag
// threshold mean the same thing on any terminal. cell_width and cell_height
// convert terminal cells to pixels; with the defaults a 100 column terminal is
// exactly 800 pixels wide.
//
// # Defaults and Validation
//
// Blank strings and non-positive geometry fall back to defaults. Slide counts
// are different: an explicit zero or negative count is kept so that Validate
// can reject it at startup rather than silently laying out something else.
//
// # Error Handling
//
// Load returns wrapped errors prefixed with the failing step ("open config",
// "read config", "parse config") so the CLI can print them as is.
package config
