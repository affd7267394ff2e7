package app

import (
	"fmt"
	"regexp"
	"strings"
)

// Batched inserts carry one placeholder tuple per row and replace deletes one
// placeholder per key, so both are folded before a statement lands on a span.
const maxSpanStatementLength = 1024

var (
	valuesTupleList = regexp.MustCompile(`(?i)(VALUES\s*\([^()]*\))((?:\s*,\s*\([^()]*\))+)`)
	placeholderList = regexp.MustCompile(`\(((?:\?|\$\d+)(?:\s*,\s*(?:\?|\$\d+))+)\)`)
)

func spanStatement(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return query
	}

	query = valuesTupleList.ReplaceAllStringFunc(query, func(match string) string {
		parts := valuesTupleList.FindStringSubmatch(match)
		return fmt.Sprintf("%s /* +%d rows */", parts[1], strings.Count(parts[2], "("))
	})
	query = placeholderList.ReplaceAllStringFunc(query, func(match string) string {
		n := strings.Count(match, ",") + 1
		if n <= 3 {
			return match
		}
		return fmt.Sprintf("(%s, ... %d params)", match[1:strings.Index(match, ",")], n)
	})

	if len(query) > maxSpanStatementLength {
		query = query[:maxSpanStatementLength] + " [truncated]"
	}
	return query
}
