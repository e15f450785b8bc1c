package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No toaster.json, toaster.toml or toaster.yaml was found.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config syntax",
		Detail:   "The config file could not be parsed.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid toast limit",
		Detail:   "The toast limit must be at least 1.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations use Go syntax (e.g. \"5s\", \"1m30s\") and must not be negative.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Unknown ID generator",
		Detail:   "Supported ID generators are \"counter\" and \"uuid\".",
		DocURL:   "https://vango.dev/docs/toaster/errors/E104",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Supported log levels are debug, info, warn and error.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E105",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   "Supported log formats are text and json.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E106",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .json, .toml, .yaml or .yml.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E107",
	},
	"E108": {
		Category: CategoryConfig,
		Message:  "Config write failed",
		Detail:   "The configuration could not be encoded or written to disk.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E108",
	},
	"E109": {
		Category: CategoryConfig,
		Message:  "Config file already exists",
		Detail:   "Refusing to overwrite an existing config file.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E109",
	},

	// ============================================
	// CLI Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryCLI,
		Message:  "Invalid command line",
		Detail:   "A command, argument or flag value cannot be used.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E120",
	},
	"E121": {
		Category: CategoryCLI,
		Message:  "Metrics export failed",
		Detail:   "Collected metrics could not be gathered or encoded.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E121",
	},
	"E122": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "The code is not in the toaster error registry.",
		DocURL:   "https://vango.dev/docs/toaster/errors/E122",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
