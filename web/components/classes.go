// Package components holds the form controls used by the pages.
package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

const inputClass = "mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 text-sm shadow-sm focus:border-indigo-500 focus:outline-none focus:ring-1 focus:ring-indigo-500"

func wrapperClass(extra string) string {
	return twmerge.Merge("space-y-1", extra)
}

func (p FieldProps) inputType() string {
	if p.Type == "" {
		return "text"
	}
	return p.Type
}

func (p FieldProps) controlClass() string {
	if p.inputType() == "color" {
		return twmerge.Merge(inputClass, "h-10 p-1")
	}
	return inputClass
}

var buttonVariants = map[string]string{
	"primary":   "bg-indigo-600 text-white hover:bg-indigo-500",
	"secondary": "bg-white text-gray-900 ring-1 ring-inset ring-gray-300 hover:bg-gray-50",
}

func (p ButtonProps) class() string {
	variant, ok := buttonVariants[p.Variant]
	if !ok {
		variant = buttonVariants["primary"]
	}
	return twmerge.Merge("rounded-md px-4 py-2 text-sm font-semibold shadow-sm disabled:opacity-50", variant, p.Class)
}
