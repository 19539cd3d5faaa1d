package parser

import "github.com/nao1215/subscan/internal/config"

// limitText caps a body to config.MaxTextSize bytes and then to
// config.MaxLines lines. Both caps truncate rather than reject; they bound
// the worst-case work of every parser on adversarial input.
func limitText(text string) string {
	if len(text) > config.MaxTextSize {
		text = text[:config.MaxTextSize]
	}

	// Cut at the newline that ends line MaxLines; everything after it is
	// dropped. Scanning bytes avoids materializing a line slice for the
	// common small-body case.
	lines := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines++
			if lines == config.MaxLines {
				return text[:i]
			}
		}
	}
	return text
}
