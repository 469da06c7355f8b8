// Package search turns raw query strings into structured history
// searches. It decouples what the user typed from the index engine.
package search

import (
	"strconv"
	"strings"
)

const DefaultLimit = 20

// Query is a parsed history search.
type Query struct {
	Terms  string
	Author string
	Limit  int
}

// Parse extracts command-line style flags from a raw query.
// Example: invoice friday --author alice --limit 5
func Parse(input string) Query {
	q := Query{Limit: DefaultLimit}

	parts := strings.Fields(input)
	var terms []string
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			value := parts[i+1]
			switch strings.TrimPrefix(part, "--") {
			case "author":
				q.Author = value
			case "limit":
				if n, err := strconv.Atoi(value); err == nil && n > 0 {
					q.Limit = n
				}
			}
			i++
			continue
		}
		terms = append(terms, part)
	}
	q.Terms = strings.Join(terms, " ")
	return q
}
