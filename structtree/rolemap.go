package structtree

import "github.com/tsawler/sigil/core"

// StandardRoles is the closed standard structure type vocabulary. H1 through
// H6 are accepted on input but collapse to H through the role map.
var StandardRoles = []string{
	"P", "H1", "H2", "H3", "H4", "H5", "H6", "H",
	"L", "LI", "Lbl", "LBody",
	"Table", "TR", "TH", "TD",
	"Span", "Quote", "Note", "Reference", "BibEntry", "Code",
	"Figure", "Formula", "Form",
	"Document", "Part", "Div", "Sect", "Art",
	"BlockQuote", "Caption", "TOC", "TOCI", "Index",
	"NonStruct", "Private", "Link", "Annot",
}

var standardRoleSet = func() map[string]bool {
	set := make(map[string]bool, len(StandardRoles))
	for _, role := range StandardRoles {
		set[role] = true
	}
	return set
}()

// IsStandardRole reports whether tag belongs to the standard vocabulary.
func IsStandardRole(tag string) bool {
	return standardRoleSet[tag]
}

// standardRoleTarget returns the standard tag a vocabulary entry maps to.
func standardRoleTarget(tag string) string {
	switch tag {
	case "H1", "H2", "H3", "H4", "H5", "H6":
		return "H"
	default:
		return tag
	}
}

// StandardRoleMap builds the full standard role map as a PDF dictionary:
// every vocabulary tag mapped to its standard target, heading levels
// collapsed to H.
func StandardRoleMap() core.Dict {
	m := make(core.Dict, len(StandardRoles))
	for _, role := range StandardRoles {
		m[role] = core.Name(standardRoleTarget(role))
	}
	return m
}

// resolveRole follows roleMap from tag to a standard role. It returns the
// resolved standard tag, or "" when the tag neither is standard nor reaches
// a standard tag through the map.
func resolveRole(roleMap core.Dict, tag string) string {
	seen := make(map[string]bool)
	for tag != "" && !seen[tag] {
		if IsStandardRole(tag) {
			return standardRoleTarget(tag)
		}
		seen[tag] = true
		mapped, ok := roleMap.GetName(tag)
		if !ok {
			return ""
		}
		tag = string(mapped)
	}
	return ""
}
