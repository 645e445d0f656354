package skill

import (
	"regexp"
	"sort"
	"strings"
)

// Match quality scores, best first. Query terms are scored individually
// and summed, so multi-term queries favor skills hitting several terms.
const (
	scoreExactName    = 100
	scoreNamePrefix   = 75
	scoreNameContains = 50
	scoreKeyword      = 35
	scoreDescription  = 25
)

var (
	headingRe = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	wordRe    = regexp.MustCompile(`[a-zA-Z]{3,}`)
	fenceRe   = regexp.MustCompile("```([a-zA-Z0-9_+-]+)")
)

// extractKeywords derives search keywords from a skill: its name, words
// of three or more letters in markdown headings, and code-fence language
// tags. All lowercased.
func extractKeywords(name, body string) []string {
	var words []string
	words = append(words, strings.ToLower(name))

	for _, m := range headingRe.FindAllStringSubmatch(body, -1) {
		for _, w := range wordRe.FindAllString(m[1], -1) {
			words = append(words, strings.ToLower(w))
		}
	}
	for _, m := range fenceRe.FindAllStringSubmatch(body, -1) {
		words = append(words, strings.ToLower(m[1]))
	}

	return words
}

// mergeKeywords combines keyword lists, lowercasing and deduplicating
// while preserving first-seen order.
func mergeKeywords(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, kw := range list {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// Match pairs a skill with its search score.
type Match struct {
	Skill *Skill
	Score int
}

// SearchScored returns matches for the query ordered by match quality,
// truncated to limit (limit <= 0 means no limit). Matching is
// case-insensitive; an empty query matches nothing.
func (l *Library) SearchScored(query string, limit int) []Match {
	terms := wordsOf(query)
	if len(terms) == 0 {
		return nil
	}

	var results []Match
	for _, s := range l.List() {
		if score := scoreSkill(s, terms); score > 0 {
			results = append(results, Match{Skill: s, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Skill.Name < results[j].Skill.Name
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Search is SearchScored without the scores.
func (l *Library) Search(query string, limit int) []*Skill {
	var out []*Skill
	for _, m := range l.SearchScored(query, limit) {
		out = append(out, m.Skill)
	}
	return out
}

// wordsOf splits a query into lowercase terms.
func wordsOf(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// scoreSkill sums per-term match scores for one skill.
func scoreSkill(s *Skill, terms []string) int {
	name := strings.ToLower(s.Name)
	desc := strings.ToLower(s.Description)

	total := 0
	for _, term := range terms {
		switch {
		case name == term:
			total += scoreExactName
		case strings.HasPrefix(name, term):
			total += scoreNamePrefix
		case strings.Contains(name, term):
			total += scoreNameContains
		case hasKeyword(s.Keywords, term):
			total += scoreKeyword
		case strings.Contains(desc, term):
			total += scoreDescription
		}
	}
	return total
}

func hasKeyword(keywords []string, term string) bool {
	for _, kw := range keywords {
		if kw == term {
			return true
		}
	}
	return false
}
