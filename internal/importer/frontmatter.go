package importer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

const frontMatterDelim = "---"

// FrontMatter is the YAML header of a markdown post.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Public *bool  `yaml:"public"`
}

// SplitFrontMatter separates a "---" delimited YAML header from the markdown
// body. Documents without a header return a zero FrontMatter and the input
// unchanged.
func SplitFrontMatter(doc string) (FrontMatter, string, error) {
	var fm FrontMatter

	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	if !strings.HasPrefix(doc, frontMatterDelim+"\n") {
		return fm, doc, nil
	}

	rest := doc[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return fm, doc, &ParseError{Reason: "unterminated front matter"}
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, doc, &ParseError{Reason: fmt.Sprintf("invalid front matter: %v", err)}
	}

	body := rest[end+1+len(frontMatterDelim):]
	return fm, strings.TrimLeft(body, "\n"), nil
}
