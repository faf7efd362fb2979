package profile

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	classPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// ValidateAuthorName requires a non-empty name.
func ValidateAuthorName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("author name must not be empty")
	}
	return nil
}

// ValidateEmail requires a bare RFC 5322 address without a display name.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email must not be empty")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return fmt.Errorf("invalid email address: %v", err)
	}
	if addr.Name != "" || addr.Address != s {
		return errors.New("email must be a bare address without a display name")
	}
	return nil
}

// ValidateSlug requires a lowercase hyphenated identifier such as
// "my-cool-tool".
func ValidateSlug(s string) error {
	if !slugPattern.MatchString(s) {
		return errors.New("must be lowercase words separated by single hyphens")
	}
	return nil
}

// ValidateUsername requires a slug-shaped VCS username.
func ValidateUsername(s string) error {
	if err := ValidateSlug(s); err != nil {
		return fmt.Errorf("username %v", err)
	}
	return nil
}

// ValidateVendorName requires a non-empty name starting with an uppercase
// letter.
func ValidateVendorName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("vendor name must not be empty")
	}
	first := []rune(s)[0]
	if !unicode.IsUpper(first) {
		return errors.New("vendor name must start with an uppercase letter")
	}
	return nil
}

// ValidateClassName requires a PascalCase class identifier.
func ValidateClassName(s string) error {
	if !classPattern.MatchString(s) {
		return errors.New("class name must be PascalCase letters and digits")
	}
	return nil
}

// ValidateDescription requires a non-empty description.
func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("description must not be empty")
	}
	return nil
}

// Finalize normalizes derived fields and validates the whole profile.
// Field errors name the offending field so interactive callers can
// re-prompt and non-interactive callers can report precisely.
func (p *Profile) Finalize() error {
	p.AuthorName = strings.TrimSpace(p.AuthorName)
	p.AuthorEmail = strings.TrimSpace(p.AuthorEmail)
	p.AuthorUsername = strings.TrimSpace(p.AuthorUsername)
	p.VendorName = strings.TrimSpace(p.VendorName)
	p.PackageSlug = strings.TrimSpace(p.PackageSlug)
	p.Description = strings.TrimSpace(p.Description)
	p.ClassName = strings.TrimSpace(p.ClassName)

	// The vendor slug is always derived, never entered directly.
	p.VendorSlug = DefaultUsername(p.VendorName)
	if p.ClassName == "" {
		p.ClassName = DefaultClassName(p.PackageSlug)
	}
	if p.Features == nil {
		p.Features = FeatureSet{}
	}

	if err := ValidateAuthorName(p.AuthorName); err != nil {
		return fmt.Errorf("author name: %w", err)
	}
	if err := ValidateEmail(p.AuthorEmail); err != nil {
		return fmt.Errorf("author email: %w", err)
	}
	if err := ValidateUsername(p.AuthorUsername); err != nil {
		return fmt.Errorf("author username: %w", err)
	}
	if err := ValidateVendorName(p.VendorName); err != nil {
		return fmt.Errorf("vendor name: %w", err)
	}
	if err := ValidateSlug(p.VendorSlug); err != nil {
		return fmt.Errorf("vendor slug %q: %w", p.VendorSlug, err)
	}
	if err := ValidateSlug(p.PackageSlug); err != nil {
		return fmt.Errorf("package name %q: %w", p.PackageSlug, err)
	}
	if err := ValidateDescription(p.Description); err != nil {
		return fmt.Errorf("package description: %w", err)
	}
	if err := ValidateClassName(p.ClassName); err != nil {
		return fmt.Errorf("class name %q: %w", p.ClassName, err)
	}

	if !containsVersion(PHPVersions(), p.PHPVersion) {
		return fmt.Errorf("php version %q: not a supported release", p.PHPVersion)
	}
	if !containsVersion(LaravelVersions(), p.LaravelVersion) {
		return fmt.Errorf("laravel version %q: not a supported release", p.LaravelVersion)
	}
	ok, err := Compatible(p.PHPVersion, p.LaravelVersion)
	if err != nil {
		return fmt.Errorf("checking version compatibility: %w", err)
	}
	if !ok {
		return fmt.Errorf("php %s is below the minimum for laravel %s", p.PHPVersion, p.LaravelVersion)
	}

	if _, err := ParseTestingFramework(string(p.Testing)); err != nil {
		return err
	}
	for f := range p.Features {
		if _, err := ParseFeature(string(f)); err != nil {
			return err
		}
	}
	return nil
}

func containsVersion(versions []string, v string) bool {
	for _, candidate := range versions {
		if candidate == v {
			return true
		}
	}
	return false
}
