package services

import (
	"regexp"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// SPDX operators only count when surrounded by whitespace
var (
	anyOperatorPattern  = regexp.MustCompile(`(?i)\s+(?:AND|OR|WITH|\+)\s+`)
	andOrWithPattern    = regexp.MustCompile(`(?i)\s+(?:AND|WITH)\s+`)
	orPattern           = regexp.MustCompile(`(?i)\s+OR\s+`)
	withPattern         = regexp.MustCompile(`(?i)\s+WITH\s+`)
	operatorOnlyPattern = regexp.MustCompile(`(?i)^(?:AND|OR|WITH|\+)$`)
	trailingPlusPattern = regexp.MustCompile(`\++$`)
	parensPattern       = regexp.MustCompile(`[()]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// ExpressionAnalyzer classifies and decomposes SPDX license expressions.
// Identifiers listed in the policy tiers count as known when deciding
// whether a WITH exception is relevant.
type ExpressionAnalyzer struct {
	configured map[string]struct{}
}

// NewExpressionAnalyzer creates an analyzer bound to a policy categorization
func NewExpressionAnalyzer(categorization entities.Categorization) *ExpressionAnalyzer {
	configured := make(map[string]struct{})
	for _, id := range categorization.All() {
		configured[strings.ToLower(id)] = struct{}{}
	}
	return &ExpressionAnalyzer{configured: configured}
}

// IsSingleID reports whether expr is a lone identifier without operators or parentheses
func (a *ExpressionAnalyzer) IsSingleID(expr string) bool {
	trimmed := strings.TrimSpace(expr)
	if anyOperatorPattern.MatchString(trimmed) {
		return false
	}
	if strings.ContainsAny(trimmed, "()") {
		return false
	}
	return trimmed != ""
}

// HasAndOrWith reports whether expr combines licenses with AND or WITH.
// OR alone does not qualify.
func (a *ExpressionAnalyzer) HasAndOrWith(expr string) bool {
	return andOrWithPattern.MatchString(expr)
}

// ExtractIDs returns the identifiers an AND/WITH expression brings in.
// Pure OR expressions are never expanded and yield an empty set.
func (a *ExpressionAnalyzer) ExtractIDs(expr string, known stringset.Set) stringset.Set {
	ids := stringset.New()
	if !a.HasAndOrWith(expr) {
		return ids
	}
	if c, ok := parseChoice(expr); ok {
		return a.extractChoice(c, known, ids)
	}

	for _, token := range tokenize(expr) {
		ids.Add(token.id)
	}
	return ids
}

// KnownAlternatives returns the plain alternatives of a WITH-bearing choice
// that ExtractIDs leaves out because known already holds them, spelled as
// they appear in known.
func (a *ExpressionAnalyzer) KnownAlternatives(expr string, known stringset.Set) []string {
	if !a.HasAndOrWith(expr) {
		return nil
	}
	c, ok := parseChoice(expr)
	if !ok {
		return nil
	}
	var ids []string
	for _, alt := range c.alternatives {
		if id, found := lookupFold(known, alt); found {
			ids = append(ids, id)
		}
	}
	return ids
}

// choice is a top-level OR expression with at least one WITH branch
type choice struct {
	alternatives []string      // identifiers of the branches without WITH
	guarded      [][]exprToken // tokens of the branches carrying WITH
}

func parseChoice(expr string) (choice, bool) {
	branches := splitTopLevelOR(expr)
	if len(branches) < 2 || !withPattern.MatchString(expr) {
		return choice{}, false
	}
	var c choice
	for _, branch := range branches {
		tokens := tokenize(branch)
		if withPattern.MatchString(branch) {
			c.guarded = append(c.guarded, tokens)
			continue
		}
		for _, token := range tokens {
			c.alternatives = append(c.alternatives, token.id)
		}
	}
	return c, true
}

// extractChoice keeps an exception clause only when none of the plain
// alternatives is known.
func (a *ExpressionAnalyzer) extractChoice(c choice, known stringset.Set, ids stringset.Set) stringset.Set {
	knownAlternative := false
	for _, alt := range c.alternatives {
		if a.isKnown(alt, known) {
			knownAlternative = true
			break
		}
	}

	for _, alt := range c.alternatives {
		if _, found := lookupFold(known, alt); !found {
			ids.Add(alt)
		}
	}

	for _, tokens := range c.guarded {
		for _, token := range tokens {
			if token.exception && knownAlternative {
				continue
			}
			ids.Add(token.id)
		}
	}
	return ids
}

func (a *ExpressionAnalyzer) isKnown(id string, known stringset.Set) bool {
	if id == "" {
		return false
	}
	if _, ok := a.configured[strings.ToLower(id)]; ok {
		return true
	}
	_, found := lookupFold(known, id)
	return found
}

// lookupFold finds id in set, falling back to a case-insensitive match in
// sorted order.
func lookupFold(set stringset.Set, id string) (string, bool) {
	if set.Contains(id) {
		return id, true
	}
	for _, candidate := range set.Elements() {
		if strings.EqualFold(candidate, id) {
			return candidate, true
		}
	}
	return "", false
}

// splitTopLevelOR splits expr on the OR operators outside any parentheses
func splitTopLevelOR(expr string) []string {
	var branches []string
	start := 0
	for _, loc := range orPattern.FindAllStringIndex(expr, -1) {
		if parenDepth(expr[:loc[0]]) != 0 {
			continue
		}
		branches = append(branches, expr[start:loc[0]])
		start = loc[1]
	}
	return append(branches, expr[start:])
}

func parenDepth(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

// exprToken is an identifier of an expression; exception marks the
// operand right after WITH.
type exprToken struct {
	id        string
	exception bool
}

// tokenize drops every parenthesis and splits on the AND, OR, WITH and +
// operators, keeping only clean identifiers.
func tokenize(expr string) []exprToken {
	normalized := parensPattern.ReplaceAllString(expr, " ")
	normalized = strings.TrimSpace(whitespacePattern.ReplaceAllString(normalized, " "))

	var tokens []exprToken
	exception := false
	emit := func(part string) {
		if id := cleanToken(part); id != "" {
			tokens = append(tokens, exprToken{id: id, exception: exception})
		}
	}
	start := 0
	for _, loc := range anyOperatorPattern.FindAllStringIndex(normalized, -1) {
		emit(normalized[start:loc[0]])
		exception = strings.EqualFold(strings.TrimSpace(normalized[loc[0]:loc[1]]), "WITH")
		start = loc[1]
	}
	emit(normalized[start:])
	return tokens
}

// cleanToken trims a split part down to a bare identifier, dropping
// operator-only tokens and the trailing "+" or-later marker. Anything still
// holding a parenthesis or whitespace is not an identifier.
func cleanToken(part string) string {
	token := strings.TrimSpace(part)
	if token == "" || operatorOnlyPattern.MatchString(token) {
		return ""
	}
	if strings.ContainsAny(token, "() \t\r\n") {
		return ""
	}
	return trailingPlusPattern.ReplaceAllString(token, "")
}
