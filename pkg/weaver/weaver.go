// Package weaver rewrites HTML documents in place, turning the first
// whole-word occurrence of known terms inside paragraph and list item
// blocks into anchor elements.
package weaver

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMaxLinks caps insertions when the caller passes a non-positive limit.
const DefaultMaxLinks = 10

// Text inside these elements is never linked.
var skipTags = map[string]bool{
	"a":    true,
	"code": true,
	"pre":  true,
	"h1":   true,
	"h2":   true,
	"h3":   true,
}

// Insertion records one anchor added to the document.
type Insertion struct {
	Term     string `yaml:"term" json:"term"`
	URL      string `yaml:"url" json:"url"`
	Priority bool   `yaml:"priority" json:"priority"`
	Context  string `yaml:"context" json:"context"`
}

// PriorityTerm pins a term to a URL ahead of the automatic term map.
type PriorityTerm struct {
	Term string
	URL  string
}

type pattern struct {
	term     string
	url      string
	priority bool
	re       *regexp.Regexp
}

// Interlink parses doc, links the first whole-word occurrence of each term in
// termToURL inside <p> and <li> blocks, and renders the result. Matching is
// case-insensitive, longer terms take priority over shorter ones, and at most
// maxLinks anchors are inserted. Returns the rewritten document and a record
// of every anchor added.
func Interlink(doc string, termToURL map[string]string, maxLinks int) (string, []Insertion, error) {
	return InterlinkWithPriority(doc, termToURL, nil, maxLinks)
}

// InterlinkWithPriority behaves like Interlink but tries the priority terms
// before anything in termToURL, regardless of length.
func InterlinkWithPriority(doc string, termToURL map[string]string, priority []PriorityTerm, maxLinks int) (string, []Insertion, error) {
	if (len(termToURL) == 0 && len(priority) == 0) || strings.TrimSpace(doc) == "" {
		return doc, nil, nil
	}
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", nil, err
	}

	patterns := compilePatterns(termToURL, priority)
	linked := make(map[string]bool, len(patterns))
	var inserted []Insertion

	for _, block := range collectBlocks(root) {
		if len(inserted) >= maxLinks {
			break
		}
		context := strings.TrimSpace(textContent(block))
		// Snapshot the text nodes up front: linking splits nodes in place
		// and the freshly created tail text must not be rescanned.
		for _, textNode := range collectTextNodes(block) {
			if len(inserted) >= maxLinks {
				break
			}
			if insideSkippedTag(textNode) {
				continue
			}
			if ins, ok := linkFirstMatch(textNode, patterns, linked); ok {
				ins.Context = context
				inserted = append(inserted, ins)
			}
		}
	}

	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return "", nil, err
	}
	return sb.String(), inserted, nil
}

// compilePatterns orders priority terms ahead of the automatic map, each
// group sorted longest first so a short term cannot claim a span inside a
// longer phrase.
func compilePatterns(termToURL map[string]string, priority []PriorityTerm) []pattern {
	patterns := make([]pattern, 0, len(termToURL)+len(priority))
	claimed := make(map[string]bool, len(priority))

	pinned := make([]PriorityTerm, 0, len(priority))
	for _, p := range priority {
		key := strings.ToLower(strings.TrimSpace(p.Term))
		if key == "" || p.URL == "" || claimed[key] {
			continue
		}
		claimed[key] = true
		pinned = append(pinned, p)
	}
	sort.Slice(pinned, func(i, j int) bool {
		if len(pinned[i].Term) != len(pinned[j].Term) {
			return len(pinned[i].Term) > len(pinned[j].Term)
		}
		return pinned[i].Term < pinned[j].Term
	})
	for _, p := range pinned {
		patterns = append(patterns, pattern{
			term:     p.Term,
			url:      p.URL,
			priority: true,
			re:       regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.Term)),
		})
	}

	terms := make([]string, 0, len(termToURL))
	for term, url := range termToURL {
		if strings.TrimSpace(term) == "" || url == "" || claimed[strings.ToLower(term)] {
			continue
		}
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	for _, term := range terms {
		patterns = append(patterns, pattern{
			term: term,
			url:  termToURL[term],
			re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term)),
		})
	}
	return patterns
}

// linkFirstMatch replaces the first whole-word match of any unused pattern in
// the node with an anchor element. At most one anchor is inserted per node.
func linkFirstMatch(node *html.Node, patterns []pattern, linked map[string]bool) (Insertion, bool) {
	for _, pat := range patterns {
		key := strings.ToLower(pat.term)
		if linked[key] {
			continue
		}
		start, end, ok := wholeWordMatch(pat.re, node.Data)
		if !ok {
			continue
		}

		parent := node.Parent
		matched := node.Data[start:end]
		tail := node.Data[end:]
		node.Data = node.Data[:start]

		anchor := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.A,
			Data:     "a",
			Attr:     []html.Attribute{{Key: "href", Val: pat.url}},
		}
		anchor.AppendChild(&html.Node{Type: html.TextNode, Data: matched})
		parent.InsertBefore(anchor, node.NextSibling)
		if tail != "" {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: tail}, anchor.NextSibling)
		}

		linked[key] = true
		return Insertion{Term: pat.term, URL: pat.url, Priority: pat.priority}, true
	}
	return Insertion{}, false
}

// wholeWordMatch returns the first match of re in text whose surrounding
// bytes are not word characters.
func wholeWordMatch(re *regexp.Regexp, text string) (int, int, bool) {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isWordByte(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isWordByte(text[loc[1]]) {
			continue
		}
		return loc[0], loc[1], true
	}
	return 0, 0, false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// collectBlocks returns all <p> and <li> elements in document order.
func collectBlocks(root *html.Node) []*html.Node {
	var blocks []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "li") {
			blocks = append(blocks, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}

// collectTextNodes returns the text node descendants of n in document order.
func collectTextNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for _, t := range collectTextNodes(n) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}

// insideSkippedTag walks the parent chain looking for tags whose text must
// stay untouched, such as existing anchors and code blocks.
func insideSkippedTag(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && skipTags[strings.ToLower(p.Data)] {
			return true
		}
	}
	return false
}
