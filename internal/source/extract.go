package source

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// urlPattern matches an http(s) link: the scheme followed by any run of
// characters that is neither whitespace nor a closing parenthesis. The
// parenthesis exclusion keeps links inside markdown and prose from
// swallowing the trailing ")". No further well-formedness is checked;
// junk candidates simply fail their reachability probe.
var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// ExtractURLs returns every candidate subscription URL found in text,
// duplicates included; callers deduplicate into a set. Besides the
// pattern scan, text containing anchor tags gets an HTML pass that
// collects absolute http(s) hrefs, so an exported bookmark file or a
// saved index page yields its links even when surrounding markup would
// confuse the raw pattern.
func ExtractURLs(text string) []string {
	urls := urlPattern.FindAllString(text, -1)

	if strings.Contains(text, "<a") {
		urls = append(urls, anchorURLs(text)...)
	}
	return urls
}

// anchorURLs extracts absolute http(s) href values from HTML anchor tags.
// The tokenizer tolerates arbitrarily malformed markup, which is exactly
// what gathered text blobs tend to be.
func anchorURLs(text string) []string {
	var urls []string

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return urls
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := tokenizer.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}
		for {
			key, val, more := tokenizer.TagAttr()
			if string(key) == "href" {
				href := string(val)
				if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
					urls = append(urls, href)
				}
			}
			if !more {
				break
			}
		}
	}
}
