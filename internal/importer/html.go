package importer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/portfolio-site/backend/internal/model"
)

var (
	questionsArray = regexp.MustCompile(`const\s+questions\s*=\s*\[([\s\S]*?)\];`)
	questionObject = regexp.MustCompile(`\{[^{}]*q\s*:\s*"([^"]+)"[^{}]*opts\s*:\s*\[((?:[^\[\]]*|\[[^\[\]]*\])*)\][^{}]*ans\s*:\s*(\d+)[^{}]*\}`)
	quotedString   = regexp.MustCompile(`"([^"]+)"`)
	titleTag       = regexp.MustCompile(`<title>([^<]+)</title>`)
	headingTag     = regexp.MustCompile(`<h1[^>]*>([^<]+)</h1>`)
)

// ParseHTML extracts questions from a self-contained quiz page that embeds
//
//	const questions = [{q:"Question text", opts:["A) 1","B) 2"], ans:0}, ...];
//
// The title comes from the first <h1>, or <title> when there is none.
// Header values other than the title keep their defaults. Options and
// answer indexes are kept as the page has them; call Draft.Validate before
// storing the result.
func ParseHTML(html string) (*Draft, error) {
	m := questionsArray.FindStringSubmatch(html)
	if m == nil {
		return nil, &ParseError{Reason: "could not find a questions array, expected: const questions = [...]"}
	}

	d := newDraft()
	for _, qm := range questionObject.FindAllStringSubmatch(m[1], -1) {
		opts := quotedString.FindAllStringSubmatch(qm[2], -1)
		if len(opts) == 0 {
			continue
		}
		ans, err := strconv.Atoi(qm[3])
		if err != nil {
			continue
		}

		q := model.Question{
			Text:               qm[1],
			Options:            make([]string, len(opts)),
			CorrectOptionIndex: ans,
		}
		for i, o := range opts {
			q.Options[i] = o[1]
		}
		d.Questions = append(d.Questions, q)
	}

	if len(d.Questions) == 0 {
		return nil, &ParseError{Reason: "could not parse any questions from the page, check the format"}
	}

	if h := headingTag.FindStringSubmatch(html); h != nil {
		d.Title = strings.TrimSpace(h[1])
	} else if t := titleTag.FindStringSubmatch(html); t != nil {
		d.Title = strings.TrimSpace(t[1])
	}
	return d, nil
}
