package fetcher

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// nonContentSelectors lists elements stripped before extracting body text.
const nonContentSelectors = "script, style, nav, aside, header, footer, form, noscript, iframe, figure"

// contentSelectors lists containers tried in order for the article body
// before falling back to the whole document.
var contentSelectors = []string{
	"article",
	"[itemprop='articleBody']",
	"main",
}

// ExtractText reduces an HTML page to the plain text of its article body.
// Paragraphs are joined with newlines and runs of whitespace collapsed.
func ExtractText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", eris.Wrap(err, "fetcher: parse html")
	}

	doc.Find(nonContentSelectors).Remove()

	root := doc.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			root = s
			break
		}
	}

	var paras []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := collapseWhitespace(p.Text()); t != "" {
			paras = append(paras, t)
		}
	})
	if len(paras) > 0 {
		return strings.Join(paras, "\n"), nil
	}

	// Pages without paragraph markup fall back to the container's text.
	return collapseWhitespace(root.Text()), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
