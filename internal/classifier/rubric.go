// Package classifier scores business documents and tables against
// hand-authored keyword rubrics.
package classifier

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bizdoc/internal/domain"
)

//go:embed rubrics.yaml
var defaultRubricYAML []byte

// DocumentTypeRule is the evidence profile of one document type.
type DocumentTypeRule struct {
	Name      string   `mapstructure:"name"`
	Keywords  []string `mapstructure:"keywords"`
	Sections  []string `mapstructure:"sections"`
	MaxLength int      `mapstructure:"max_length"`
	HasTables bool     `mapstructure:"has_tables"`
}

// IndustryRule is the keyword profile of one industry.
type IndustryRule struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// Rubric is the immutable classification configuration. It is loaded once at
// startup and shared by pointer; nothing mutates it afterwards.
type Rubric struct {
	DefaultDocumentType  string             `mapstructure:"default_document_type"`
	DefaultIndustry      string             `mapstructure:"default_industry"`
	MinFinancialKeywords int                `mapstructure:"min_financial_keywords"`
	DocumentTypes        []DocumentTypeRule `mapstructure:"document_types"`
	Industries           []IndustryRule     `mapstructure:"industries"`
	FinancialKeywords    []string           `mapstructure:"financial_keywords"`
	RevenueKeywords      []string           `mapstructure:"revenue_keywords"`
	GrowthKeywords       []string           `mapstructure:"growth_keywords"`
	TeamKeywords         []string           `mapstructure:"team_keywords"`
}

// DefaultRubric returns the built-in rubric.
func DefaultRubric() *Rubric {
	r, err := LoadRubric("")
	if err != nil {
		// The embedded rubric is validated by tests.
		panic(fmt.Sprintf("classifier: built-in rubric: %v", err))
	}
	return r
}

// LoadRubric reads the built-in rubric and merges the file at path over it.
// Top-level keys present in the file replace the built-in values wholesale.
func LoadRubric(path string) (*Rubric, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultRubricYAML)); err != nil {
		return nil, fmt.Errorf("reading built-in rubric: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading rubric file %s: %w", path, err)
		}
	}

	r := &Rubric{}
	if err := v.Unmarshal(r); err != nil {
		return nil, fmt.Errorf("decoding rubric: %w", err)
	}
	r.normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate reports whether the rubric can classify anything.
func (r *Rubric) Validate() error {
	if len(r.DocumentTypes) == 0 {
		return fmt.Errorf("%w: no document types", domain.ErrInvalidRubric)
	}
	if len(r.Industries) == 0 {
		return fmt.Errorf("%w: no industries", domain.ErrInvalidRubric)
	}
	for i, dt := range r.DocumentTypes {
		if dt.Name == "" {
			return fmt.Errorf("%w: document type %d has no name", domain.ErrInvalidRubric, i)
		}
	}
	for i, ind := range r.Industries {
		if ind.Name == "" {
			return fmt.Errorf("%w: industry %d has no name", domain.ErrInvalidRubric, i)
		}
	}
	if len(r.FinancialKeywords) < r.MinFinancialKeywords {
		return fmt.Errorf("%w: %d financial keywords cannot satisfy a minimum of %d",
			domain.ErrInvalidRubric, len(r.FinancialKeywords), r.MinFinancialKeywords)
	}
	return nil
}

// normalize lowercases every keyword so matching can run against lowercased text.
func (r *Rubric) normalize() {
	if r.DefaultDocumentType == "" {
		r.DefaultDocumentType = domain.DefaultDocumentType
	}
	if r.DefaultIndustry == "" {
		r.DefaultIndustry = domain.DefaultIndustry
	}
	if r.MinFinancialKeywords <= 0 {
		r.MinFinancialKeywords = 2
	}
	for i := range r.DocumentTypes {
		r.DocumentTypes[i].Keywords = lowerAll(r.DocumentTypes[i].Keywords)
		r.DocumentTypes[i].Sections = lowerAll(r.DocumentTypes[i].Sections)
	}
	for i := range r.Industries {
		r.Industries[i].Keywords = lowerAll(r.Industries[i].Keywords)
	}
	r.FinancialKeywords = lowerAll(r.FinancialKeywords)
	r.RevenueKeywords = lowerAll(r.RevenueKeywords)
	r.GrowthKeywords = lowerAll(r.GrowthKeywords)
	r.TeamKeywords = lowerAll(r.TeamKeywords)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// countPresent returns how many of keywords occur in text.
func countPresent(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
