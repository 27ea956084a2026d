package core

// Variant names a rendering of a collection view
type Variant string

const (
	VariantTable   Variant = "table"
	VariantCards   Variant = "cards"
	VariantCompact Variant = "compact"
)

// LayoutPreference is the user's stored layout choice
type LayoutPreference string

const (
	PrefAuto  LayoutPreference = ""
	PrefTable LayoutPreference = "table"
	PrefCards LayoutPreference = "cards"
)

// DefaultBreakpoint is the width below which every view renders compact
const DefaultBreakpoint = 768

// ViewSelector picks the variant to render. Selection is a pure function
// of width, tab and preference: the same inputs always yield the same
// variant, and nothing is cached between calls.
type ViewSelector struct {
	Breakpoint int
}

// NewViewSelector returns a selector with the given breakpoint, falling
// back to DefaultBreakpoint when it is not positive.
func NewViewSelector(breakpoint int) ViewSelector {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return ViewSelector{Breakpoint: breakpoint}
}

// Select returns the variant for one render pass. A width below the
// breakpoint forces compact regardless of preference; a width of zero or
// less means the width is unknown and only the preference counts.
func (s ViewSelector) Select(width int, tab ViewModelType, pref LayoutPreference) Variant {
	if width > 0 && width < s.Breakpoint {
		return VariantCompact
	}
	switch pref {
	case PrefTable:
		return VariantTable
	case PrefCards:
		return VariantCards
	}
	return defaultVariant(tab)
}

// defaultVariant is the per-tab choice used when no preference is stored
func defaultVariant(tab ViewModelType) Variant {
	switch tab {
	case VMDashboard, VMInventory:
		return VariantCards
	default:
		return VariantTable
	}
}
