package fbref

import (
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// The site ships most secondary tables inside HTML comments so that they are
// rendered client side. Those comments are replaced by their parsed content
// before any table lookup.

func containsTableMarkup(text string) bool {
	return strings.Contains(text, "<table") || strings.Contains(text, "<thead")
}

// UnwrapComments rewrites markup so that every comment holding table markup
// is replaced by the nodes it contains. Other comments are left untouched.
func UnwrapComments(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	if err := unwrapCommentNodes(doc); err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := html.Render(buf, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func unwrapCommentNodes(root *html.Node) error {
	var comments []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode && containsTableMarkup(c.Data) {
				comments = append(comments, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)

	for _, comment := range comments {
		parent := comment.Parent
		if parent == nil {
			continue
		}
		nodes, err := html.ParseFragment(strings.NewReader(comment.Data), &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
		})
		if err != nil {
			return fmt.Errorf("parse commented markup: %w", err)
		}
		for _, n := range nodes {
			parent.InsertBefore(n, comment)
		}
		parent.RemoveChild(comment)
	}
	return nil
}
