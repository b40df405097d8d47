// Package catalog maps model variant identifiers (the --which flag) to GGUF
// weight files discovered on disk. It owns the registry of known
// Mistral-family variants and the scan/resolve logic that turns an
// identifier into a loadable Model.
package catalog

import (
	"regexp"
	"strings"
)

// Model represents a discoverable or loadable LLM model on disk.
type Model struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	Quant  string `json:"quant"`
	Family string `json:"family,omitempty"`
}

// Variant is one entry of the known-model registry. Match/exclude tokens are
// lowercase substrings checked against scanned file names.
type Variant struct {
	ID     string
	Name   string
	Family string

	match   []string
	exclude []string
}

// Variants returns the registry of supported model identifiers, in the order
// they should be listed to the user.
func Variants() []Variant {
	return variants
}

var variants = []Variant{
	{ID: "7b-v0.1", Name: "Mistral-7B-v0.1", Family: "mistral",
		match: []string{"7b", "v0.1"}, exclude: []string{"instruct", "mathstral", "nemo"}},
	{ID: "7b-v0.2", Name: "Mistral-7B-v0.2", Family: "mistral",
		match: []string{"7b", "v0.2"}, exclude: []string{"instruct", "mathstral", "nemo"}},
	{ID: "7b-instruct-v0.1", Name: "Mistral-7B-Instruct-v0.1", Family: "mistral",
		match: []string{"7b", "instruct", "v0.1"}, exclude: []string{"mathstral", "nemo"}},
	{ID: "7b-instruct-v0.2", Name: "Mistral-7B-Instruct-v0.2", Family: "mistral",
		match: []string{"7b", "instruct", "v0.2"}, exclude: []string{"mathstral", "nemo"}},
	{ID: "7b-maths-v0.1", Name: "Mathstral-7B-v0.1", Family: "mistral",
		match: []string{"mathstral"}},
	{ID: "nemo-2407", Name: "Mistral-Nemo-Base-2407", Family: "mistral",
		match: []string{"nemo", "2407"}, exclude: []string{"instruct"}},
	{ID: "nemo-instruct-2407", Name: "Mistral-Nemo-Instruct-2407", Family: "mistral",
		match: []string{"nemo", "instruct", "2407"}},
}

// Lookup returns the variant for the given identifier.
func Lookup(id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantIDs returns the supported identifiers, for error messages and help text.
func VariantIDs() []string {
	ids := make([]string, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	return ids
}

// Matches reports whether a GGUF file name looks like this variant.
func (v Variant) Matches(filename string) bool {
	name := strings.ToLower(filename)
	for _, tok := range v.match {
		if !strings.Contains(name, tok) {
			return false
		}
	}
	for _, tok := range v.exclude {
		if strings.Contains(name, tok) {
			return false
		}
	}
	return true
}

// quantRe picks quantization tags like Q4_K_M or q8_0 out of a file name.
var quantRe = regexp.MustCompile(`(?i)(?:^|[._-])(q\d\w*)`)

// QuantFromName extracts the quantization variant from a GGUF file name,
// or "" when none is present.
func QuantFromName(name string) string {
	m := quantRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}
