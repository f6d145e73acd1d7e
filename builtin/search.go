package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const maxSearchResults = 5

// SearchResult is one parsed web search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

func (e *Executor) search(ctx context.Context, args string) string {
	query := strings.TrimSpace(fieldOrRaw(args, "query"))
	if query == "" {
		return "Error: 'query' is required"
	}

	u, err := url.Parse(e.searchURL)
	if err != nil {
		return fmt.Sprintf("URL builder error: %s", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Sprintf("Search request failed: %s", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; chat)")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Search request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Search request failed: status %d", resp.StatusCode)
	}

	results, err := ParseSearchResults(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return fmt.Sprintf("Failed to read response text: %s", err)
	}
	return formatResults(query, results)
}

func formatResults(query string, results []SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Search returned %d results for '%s':\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return b.String()
}

// ParseSearchResults extracts up to five results from a DuckDuckGo HTML
// results page. Results are anchors with class result__a, each optionally
// followed by an element with class result__snippet.
func ParseSearchResults(r io.Reader) ([]SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				if len(results) < maxSearchResults {
					results = append(results, SearchResult{
						Title: textContent(n),
						URL:   resolveResultURL(attr(n, "href")),
					})
				}
				return
			case hasClass(n, "result__snippet"):
				if k := len(results); k > 0 && results[k-1].Snippet == "" {
					results[k-1].Snippet = textContent(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

// resolveResultURL unwraps DuckDuckGo redirect links of the form
// //duckduckgo.com/l/?uddg=<target>.
func resolveResultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
		return u.String()
	}
	return href
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
