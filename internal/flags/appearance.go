package flags

import "strings"

// NoDataPlaceholder is shown in reports when a value is unavailable.
const NoDataPlaceholder = "NA"

// Appearance describes how a flag is displayed in reports.
type Appearance struct {
	// Class is the CSS class for the element showing the flag.
	Class string
	// Label is the human-readable status label.
	Label string
}

// classSuffix and label per flag; Class templates take the element kind
// as a prefix ("table" -> "table-success", "btn btn" -> "btn btn-success").
var appearanceTemplates = map[Flag]Appearance{
	Completed: {Class: "{type}-success", Label: "Completed"},
	Running:   {Class: "{type}-primary", Label: "Running"},
	Failed:    {Class: "{type}-danger", Label: "Failed"},
	Partial:   {Class: "{type}-warning", Label: "Partial"},
	Waiting:   {Class: "{type}-info", Label: "Waiting"},
}

// AppearanceFor returns the display appearance of a flag for the given
// element kind, e.g. AppearanceFor(Completed, "table") has class
// "table-success".
func AppearanceFor(f Flag, kind string) Appearance {
	a, ok := appearanceTemplates[f]
	if !ok {
		return Appearance{Class: kind, Label: NoDataPlaceholder}
	}
	a.Class = strings.ReplaceAll(a.Class, "{type}", kind)
	return a
}

// TableAppearance returns the appearance of a flag in an HTML table cell.
func TableAppearance(f Flag) Appearance { return AppearanceFor(f, "table") }

// ButtonAppearance returns the appearance of a flag as an HTML button.
func ButtonAppearance(f Flag) Appearance { return AppearanceFor(f, "btn btn") }
