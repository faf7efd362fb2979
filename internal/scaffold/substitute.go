package scaffold

import (
	"strings"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
	"github.com/pkgsmith-labs/pkgsmith/internal/textcase"
)

// Substitution pairs a literal placeholder token with its replacement.
type Substitution struct {
	Token string
	Value string
}

// Substitutions returns the ordered replacement list for a profile.
// Replacement is one literal, case-sensitive pass per token, in this
// order, so a token that prefixes another token (Skeleton prefixes
// SkeletonClass) must come after it. Tokens must be chosen so that no
// token occurs in another token's replacement value; this is a naming
// constraint on the skeleton, not a runtime check.
func Substitutions(p *profile.Profile) []Substitution {
	return []Substitution{
		{":author_name", p.AuthorName},
		{":author_email", p.AuthorEmail},
		{":author_username", p.AuthorUsername},
		{":vendor_name", p.VendorName},
		{":vendor_slug", p.VendorSlug},
		{":package_description", p.Description},
		{":package_slug", p.PackageSlug},
		{":php_version", p.PHPVersion},
		{":laravel_version", p.LaravelVersion},
		{":testing_library", p.Testing.Label()},
		{":year", textcase.Year()},
		{"VendorNamespace", p.VendorNamespace()},
		{"SkeletonClass", p.ClassName},
		{"Skeleton", p.PackageNamespace()},
		{"skeleton", p.PackageSlug},
	}
}

// applyAll runs every substitution over the content in order.
func applyAll(content string, subs []Substitution) string {
	for _, s := range subs {
		content = strings.ReplaceAll(content, s.Token, s.Value)
	}
	return content
}
