// Package protocols provides protocol-based sample selection.
//
// Protocol names are compared after canonicalization: case-insensitive and
// punctuation-insensitive, so "ATAC-Seq", "atacseq" and "ATAC_SEQ" all name
// the same protocol. The fuzziness is intentional; protocol labels are
// inconsistent across labs and datasets.
package protocols

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seqkit/loopr/internal/errors"
	"github.com/seqkit/loopr/internal/project"
)

// Canonical normalizes a protocol name for fuzzy equality comparison:
// uppercase, then drop every rune that is not a letter or digit.
// Canonical is idempotent.
func Canonical(name string) string {
	upper := cases.Upper(language.Und).String(name)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Spec is a set of protocol names used as an inclusion or exclusion
// criterion. A nil or empty Spec means "no criterion".
type Spec []string

// NewSpec builds a Spec from one or more protocol names.
func NewSpec(names ...string) Spec { return Spec(names) }

// canonicalSet returns the canonical forms of the spec's names.
// Names that canonicalize to the empty string carry no information and
// are dropped.
func (s Spec) canonicalSet() map[string]bool {
	set := make(map[string]bool, len(s))
	for _, name := range s {
		if c := Canonical(name); c != "" {
			set[c] = true
		}
	}
	return set
}

// FetchSamples selects the subset of samples to process.
//
// At most one of inclusion and exclusion may be non-empty; supplying both
// returns ErrInvalidArgument. With neither, all samples are returned in
// their original order. Under inclusion, a sample is retained iff its
// canonical protocol is a member of the canonicalized inclusion set; samples
// lacking a protocol are dropped, since "no protocol" cannot satisfy a
// positive membership test. Under exclusion, a sample is retained iff its
// canonical protocol is not a member of the canonicalized exclusion set;
// samples lacking a protocol are always retained.
//
// FetchSamples is pure: it never mutates samples and the returned slice
// shares the input's elements.
func FetchSamples(samples []*project.Sample, inclusion, exclusion Spec) ([]*project.Sample, error) {
	include := inclusion.canonicalSet()
	exclude := exclusion.canonicalSet()

	if len(include) > 0 && len(exclude) > 0 {
		return nil, errors.Wrap(errors.ErrInvalidArgument,
			"choose either an inclusion or an exclusion of protocols, not both")
	}

	if len(include) == 0 && len(exclude) == 0 {
		return samples, nil
	}

	keep := func(s *project.Sample) bool {
		proto, ok := s.Protocol()
		if len(include) > 0 {
			return ok && include[Canonical(proto)]
		}
		return !ok || !exclude[Canonical(proto)]
	}

	var selected []*project.Sample
	for _, s := range samples {
		if keep(s) {
			selected = append(selected, s)
		}
	}
	return selected, nil
}
