package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHTMLTitleAndContent(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><head><title> A Title </title></head>
		<body><p>hello world</p><script>ignored()</script><p>again</p></body></html>`)

	wp := ParseHTML("https://a.test/p", body)
	require.Equal(t, "https://a.test/p", wp.URL)
	require.Equal(t, "A Title", wp.Title)
	require.Contains(t, wp.Content, "hello world")
	require.Contains(t, wp.Content, "again")
	require.NotContains(t, wp.Content, "ignored")
	require.Equal(t, 3, wp.WordCount)
}

func TestParseHTMLEmptyPage(t *testing.T) {
	t.Parallel()

	wp := ParseHTML("https://a.test", []byte("<html></html>"))
	require.Empty(t, wp.Title)
	require.Empty(t, wp.Content)
	require.Zero(t, wp.WordCount)
}
