package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PrefersArticle(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Title</title><style>p{color:red}</style></head>
<body>
<nav><p>Home | Business | Markets</p></nav>
<article>
<p>Acme Cement will invest ₹1,000 crore in a new plant.</p>
<p>The unit will come up near   Nagpur.</p>
</article>
<footer><p>Copyright 2025</p></footer>
</body></html>`

	got, err := ExtractText([]byte(page))

	require.NoError(t, err)
	assert.Equal(t, "Acme Cement will invest ₹1,000 crore in a new plant.\nThe unit will come up near Nagpur.", got)
}

func TestExtractText_ItempropFallback(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<div class="sidebar"><p>Trending now</p></div>
<div itemprop="articleBody">
<p>The MoU was signed on Monday.</p>
</div>
</body></html>`

	got, err := ExtractText([]byte(page))

	require.NoError(t, err)
	// Without an <article> container the sidebar paragraph would leak in;
	// the itemprop container wins first.
	assert.Equal(t, "The MoU was signed on Monday.", got)
}

func TestExtractText_StripsScriptsAndWidgets(t *testing.T) {
	t.Parallel()

	page := `<html><body><article>
<script>window.track()</script>
<noscript>enable javascript</noscript>
<figure><figcaption>A rendering of the plant</figcaption></figure>
<p>Plant announced.</p>
<aside><p>Related stories</p></aside>
</article></body></html>`

	got, err := ExtractText([]byte(page))

	require.NoError(t, err)
	assert.Equal(t, "Plant announced.", got)
}

func TestExtractText_NoParagraphMarkup(t *testing.T) {
	t.Parallel()

	page := `<html><body><div>Quick   note:
investment cleared.</div></body></html>`

	got, err := ExtractText([]byte(page))

	require.NoError(t, err)
	assert.Equal(t, "Quick note: investment cleared.", got)
}

func TestExtractText_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := ExtractText(nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b c", collapseWhitespace("  a\n\tb   c  "))
	assert.Equal(t, "", collapseWhitespace(" \n "))
}
