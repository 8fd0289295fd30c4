// Package catalog implements the pure query engine behind the storefront
// search bar and filter sidebar: free-text matching across locales, facet
// extraction, predicate filtering, and locale-aware sorting. Nothing in this
// package performs I/O or mutates the collection it is given.
package catalog

import (
	"strings"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// Matches reports whether the product matches the free-text term in the
// context of the given display locale. An empty or whitespace-only term
// always matches. Matching is case-insensitive substring containment over a
// single haystack built from every searchable field.
func Matches(p *domain.Product, term, locale string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(haystack(p, locale), term)
}

// haystack concatenates the product's searchable fields in a fixed order:
// name in the requested locale, name in all other locales, description in
// all locales, brand, SKU, and tags. Missing fields contribute nothing.
func haystack(p *domain.Product, locale string) string {
	var b strings.Builder

	for _, code := range p.Name.Locales(locale) {
		b.WriteString(p.Name[code])
		b.WriteByte(' ')
	}
	for _, code := range p.Description.Locales(locale) {
		b.WriteString(p.Description[code])
		b.WriteByte(' ')
	}
	b.WriteString(p.Brand)
	b.WriteByte(' ')
	b.WriteString(p.SKU)
	for _, tag := range p.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}

	return strings.ToLower(b.String())
}

// MatchesAdvanced reports whether the product satisfies every per-field term
// supplied on the query. Name and description terms are checked across all
// locales, so a French term matches even when the active locale is Arabic.
// Empty terms are skipped; all supplied terms must match.
func MatchesAdvanced(p *domain.Product, q *domain.Query) bool {
	if t := normalizeTerm(q.NameTerm); t != "" && !localizedContains(p.Name, t) {
		return false
	}
	if t := normalizeTerm(q.DescriptionTerm); t != "" && !localizedContains(p.Description, t) {
		return false
	}
	if t := normalizeTerm(q.BrandTerm); t != "" && !strings.Contains(strings.ToLower(p.Brand), t) {
		return false
	}
	if t := normalizeTerm(q.SKUTerm); t != "" && !strings.Contains(strings.ToLower(p.SKU), t) {
		return false
	}
	return true
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// localizedContains reports whether any translation contains the lowercase term.
func localizedContains(text domain.LocalizedText, term string) bool {
	for _, v := range text {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
