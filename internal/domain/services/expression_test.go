package services

import (
	"reflect"
	"testing"

	"bitbucket.org/creachadair/stringset"

	"github.com/ochairo/licensure/internal/domain/entities"
)

func TestIsSingleID(t *testing.T) {
	analyzer := NewExpressionAnalyzer(entities.Categorization{})

	tests := []struct {
		expr string
		want bool
	}{
		{"MIT", true},
		{"  Apache-2.0  ", true},
		{"GPL-2.0+", true},
		{"MIT OR Apache-2.0", false},
		{"MIT or Apache-2.0", false},
		{"MIT AND ISC", false},
		{"GPL-2.0 + MIT", false},
		{"(MIT)", false},
		{"MIT)", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := analyzer.IsSingleID(tt.expr); got != tt.want {
				t.Errorf("IsSingleID(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestHasAndOrWith(t *testing.T) {
	analyzer := NewExpressionAnalyzer(entities.Categorization{})

	tests := []struct {
		expr string
		want bool
	}{
		{"MIT AND ISC", true},
		{"Apache-2.0 with LLVM-exception", true},
		{"MIT OR (GPL-2.0 WITH Classpath-exception-2.0)", true},
		{"MIT OR Apache-2.0", false},
		{"MIT ANDROID", false},
		{"MIT", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := analyzer.HasAndOrWith(tt.expr); got != tt.want {
				t.Errorf("HasAndOrWith(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExtractIDs(t *testing.T) {
	plain := NewExpressionAnalyzer(entities.Categorization{})
	withPolicy := NewExpressionAnalyzer(entities.Categorization{Allow: []string{"mit"}})

	tests := []struct {
		name     string
		analyzer *ExpressionAnalyzer
		expr     string
		known    stringset.Set
		want     []string
	}{
		{
			name:     "with exception",
			analyzer: plain,
			expr:     "Apache-2.0 WITH LLVM-exception",
			known:    stringset.New(),
			want:     []string{"Apache-2.0", "LLVM-exception"},
		},
		{
			name:     "known alternative drops exception",
			analyzer: plain,
			expr:     "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New("MIT"),
			want:     []string{"GPL-2.0"},
		},
		{
			name:     "known alternative matched case-insensitively",
			analyzer: plain,
			expr:     "mit OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New("MIT"),
			want:     []string{"GPL-2.0"},
		},
		{
			name:     "no known alternative keeps exception",
			analyzer: plain,
			expr:     "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New(),
			want:     []string{"Classpath-exception-2.0", "GPL-2.0", "MIT"},
		},
		{
			name:     "policy listed alternative counts as known",
			analyzer: withPolicy,
			expr:     "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New(),
			want:     []string{"GPL-2.0", "MIT"},
		},
		{
			name:     "and inside or branch",
			analyzer: plain,
			expr:     "(MIT AND ISC) OR GPL-2.0+ WITH Bison-exception-2.2",
			known:    stringset.New(),
			want:     []string{"Bison-exception-2.2", "GPL-2.0", "ISC", "MIT"},
		},
		{
			name:     "pure or never expands",
			analyzer: plain,
			expr:     "MIT OR Apache-2.0",
			known:    stringset.New("MIT"),
			want:     []string{},
		},
		{
			name:     "parentheses and or-later marker",
			analyzer: plain,
			expr:     "(MIT AND BSD-3-Clause+)",
			known:    stringset.New(),
			want:     []string{"BSD-3-Clause", "MIT"},
		},
		{
			name:     "plus variants collapse",
			analyzer: plain,
			expr:     "MIT+ AND MIT",
			known:    stringset.New(),
			want:     []string{"MIT"},
		},
		{
			name:     "and with or but no with splits everything",
			analyzer: plain,
			expr:     "MIT AND (ISC OR Apache-2.0)",
			known:    stringset.New(),
			want:     []string{"Apache-2.0", "ISC", "MIT"},
		},
		{
			name:     "lowercase operators",
			analyzer: plain,
			expr:     "LGPL-2.1 + MIT and ISC",
			known:    stringset.New(),
			want:     []string{"ISC", "LGPL-2.1", "MIT"},
		},
		{
			name:     "or nested inside and is not a choice",
			analyzer: plain,
			expr:     "(MIT OR Apache-2.0) AND (GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New(),
			want:     []string{"Apache-2.0", "Classpath-exception-2.0", "GPL-2.0", "MIT"},
		},
		{
			name:     "nested or inside with branch",
			analyzer: plain,
			expr:     "MIT OR ((ISC OR BSD-2-Clause) AND GPL-2.0 WITH Classpath-exception-2.0)",
			known:    stringset.New("MIT"),
			want:     []string{"BSD-2-Clause", "GPL-2.0", "ISC"},
		},
		{
			name:     "multi word operand is not an identifier",
			analyzer: plain,
			expr:     "BSD 3 Clause AND MIT",
			known:    stringset.New(),
			want:     []string{"MIT"},
		},
		{
			name:     "no operators",
			analyzer: plain,
			expr:     "MIT",
			known:    stringset.New(),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.analyzer.ExtractIDs(tt.expr, tt.known).Elements()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractIDs(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExtractIDs_DoesNotMutateKnown(t *testing.T) {
	analyzer := NewExpressionAnalyzer(entities.Categorization{})
	known := stringset.New("MIT")

	_ = analyzer.ExtractIDs("ISC AND Apache-2.0", known)

	if known.Len() != 1 || !known.Contains("MIT") {
		t.Errorf("known set was modified: %v", known.Elements())
	}
}

func TestKnownAlternatives(t *testing.T) {
	analyzer := NewExpressionAnalyzer(entities.Categorization{Allow: []string{"ISC"}})

	tests := []struct {
		name  string
		expr  string
		known stringset.Set
		want  []string
	}{
		{
			name:  "known alternative in known spelling",
			expr:  "mit OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known: stringset.New("MIT"),
			want:  []string{"MIT"},
		},
		{
			name:  "policy only alternative is not in known",
			expr:  "ISC OR (GPL-2.0 WITH Classpath-exception-2.0)",
			known: stringset.New(),
		},
		{
			name:  "no top level choice",
			expr:  "(MIT OR Apache-2.0) AND (GPL-2.0 WITH Classpath-exception-2.0)",
			known: stringset.New("MIT"),
		},
		{
			name:  "pure or",
			expr:  "MIT OR Apache-2.0",
			known: stringset.New("MIT"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.KnownAlternatives(tt.expr, tt.known)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KnownAlternatives(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSplitTopLevelOR(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"MIT OR Apache-2.0", []string{"MIT", "Apache-2.0"}},
		{"(MIT OR Apache-2.0) AND ISC", []string{"(MIT OR Apache-2.0) AND ISC"}},
		{"MIT or (ISC OR GPL-2.0 WITH X)", []string{"MIT", "(ISC OR GPL-2.0 WITH X)"}},
		{"MIT", []string{"MIT"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := splitTopLevelOR(tt.expr); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTopLevelOR(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}
