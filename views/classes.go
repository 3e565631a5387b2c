// ABOUTME: Variant class builders for buttons and inputs
// ABOUTME: Unknown variants or sizes fall back to the defaults

package views

import "strings"

const buttonBase = "inline-flex items-center justify-center rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-offset-2 disabled:opacity-50 disabled:pointer-events-none"

var buttonVariants = map[string]string{
	"default":     "btn-primary",
	"destructive": "btn-destructive",
	"outline":     "btn-outline",
	"ghost":       "btn-ghost",
	"link":        "btn-link underline-offset-4 hover:underline",
}

var buttonSizes = map[string]string{
	"sm": "h-8 px-3 text-xs",
	"md": "h-10 px-4 py-2",
	"lg": "h-12 px-8 text-base",
}

const inputBase = "block rounded-md border bg-white shadow-sm focus:outline-none focus:ring-2 disabled:cursor-not-allowed disabled:opacity-50"

var inputVariants = map[string]string{
	"default": "input-default",
	"error":   "input-error",
	"success": "input-success",
}

var inputSizes = map[string]string{
	"sm": "h-8 px-2 text-xs",
	"md": "h-10 px-3 text-sm",
	"lg": "h-12 px-4 text-base",
}

// ButtonClass returns the class list for a button
func ButtonClass(variant, size string, fullWidth bool) string {
	return joinClasses(
		buttonBase,
		pick(buttonVariants, variant, "default"),
		pick(buttonSizes, size, "md"),
		fullWidthClass(fullWidth),
	)
}

// InputClass returns the class list for a text input. hasError forces the
// error variant.
func InputClass(size, variant string, hasError, fullWidth bool) string {
	if hasError {
		variant = "error"
	}
	return joinClasses(
		inputBase,
		pick(inputVariants, variant, "default"),
		pick(inputSizes, size, "md"),
		fullWidthClass(fullWidth),
	)
}

func pick(options map[string]string, key, fallback string) string {
	if v, ok := options[key]; ok {
		return v
	}
	return options[fallback]
}

func fullWidthClass(fullWidth bool) string {
	if fullWidth {
		return "w-full"
	}
	return ""
}

func joinClasses(classes ...string) string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
