package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Severity Severity
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/liveroute/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Live route used outside a router",
		Detail:   "A live route was evaluated without a RouterContext. Routes must be mounted by a Host (or another router) that supplies history and location on every evaluation.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryPattern,
		Message:  "Invalid path pattern",
		Detail:   "The path or live path pattern could not be compiled. Custom parameter groups must be valid regular expressions.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The liveroute.json file could not be read or is not valid JSON.",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "The configuration was parsed but contains invalid values.",
		DocURL:   docBase + "E104",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid forceUnmount expression",
		Detail:   "The forceUnmount expression could not be compiled.",
		DocURL:   docBase + "E105",
	},

	// ============================================
	// Usage Warnings (W201-W299)
	// ============================================

	"W201": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Component and Render used in the same route",
		Detail:   "Route.Component takes priority; Route.Render will be ignored.",
		DocURL:   docBase + "W201",
	},
	"W202": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Component and Children used in the same route",
		Detail:   "Route.Component takes priority; Route.Children will be ignored.",
		DocURL:   docBase + "W202",
	},
	"W203": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Render and Children used in the same route",
		Detail:   "Route.Render takes priority; Route.Children will be ignored.",
		DocURL:   docBase + "W203",
	},
	"W204": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Route changed from uncontrolled to controlled",
		Detail:   "The route initially had no Location and then received one on a later evaluation.",
		DocURL:   docBase + "W204",
	},
	"W205": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Route changed from controlled to uncontrolled",
		Detail:   "The route initially had a Location and then omitted it on a later evaluation.",
		DocURL:   docBase + "W205",
	},
	"W206": {
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Message:  "Children function returned nothing",
		Detail:   "Route.ChildrenFunc returned nil; return a node or leave ChildrenFunc unset.",
		DocURL:   docBase + "W206",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
