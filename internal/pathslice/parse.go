package pathslice

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed pattern string. Segment identifies
// the offending part.
type SyntaxError struct {
	Pattern string
	Segment string
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("pattern %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("pattern %q: segment %q: %s", e.Pattern, e.Segment, e.Reason)
}

// Parse tokenizes a path-slice pattern. It is purely syntactic: no
// hierarchy is consulted, and the same input always yields the same
// tokens. Empty segments from leading, trailing, or doubled separators
// are ignored. Directly adjacent "..." segments collapse into one,
// since zero-or-more composed with zero-or-more is the same thing.
func Parse(pattern string) (Pattern, error) {
	var toks Pattern
	for _, raw := range strings.Split(pattern, "/") {
		seg := strings.TrimSpace(raw)
		if seg == "" {
			continue
		}
		tok, err := parseSegment(pattern, seg)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEllipsis && len(toks) > 0 && toks[len(toks)-1].Kind == TokenEllipsis {
			continue
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 {
		return nil, &SyntaxError{Pattern: pattern, Reason: "empty pattern"}
	}
	return toks, nil
}

func parseSegment(pattern, seg string) (Token, error) {
	switch seg {
	case "...":
		return Token{Kind: TokenEllipsis}, nil
	case "*":
		return Token{Kind: TokenWildcard}, nil
	}

	if strings.HasSuffix(seg, "]") {
		open := strings.IndexByte(seg, '[')
		if open < 0 {
			return Token{}, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "unbalanced ']'"}
		}
		prefix := strings.TrimSpace(seg[:open])
		switch prefix {
		case "":
			return Token{}, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "selector without a family name"}
		case "*", "...":
			return Token{}, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "selector not allowed on " + prefix}
		}
		sel, err := parseSelector(pattern, seg, seg[open+1:len(seg)-1])
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenFamily, Name: prefix, Sel: sel}, nil
	}

	if strings.ContainsAny(seg, "[]") {
		return Token{}, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "unbalanced '['"}
	}
	return Token{Kind: TokenLiteral, Name: seg}, nil
}

func parseSelector(pattern, seg, text string) (Selector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "empty selector"}
	}

	// Explicit index list: [i1, i2, ...]
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "unbalanced '[' in index list"}
		}
		inner := strings.TrimSpace(text[1 : len(text)-1])
		if inner == "" {
			return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "empty index list"}
		}
		var list List
		for _, part := range strings.Split(inner, ",") {
			i, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: fmt.Sprintf("invalid index %q", strings.TrimSpace(part))}
			}
			list = append(list, i)
		}
		return list, nil
	}

	// Slice: [start]:[stop][:[step]]
	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		if len(parts) > 3 {
			return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "too many ':' in slice"}
		}
		var s Slice
		fields := []**int{&s.Start, &s.Stop, &s.Step}
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.Atoi(part)
			if err != nil {
				return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: fmt.Sprintf("invalid slice bound %q", part)}
			}
			*fields[i] = &v
		}
		if s.Step != nil && *s.Step == 0 {
			return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: "slice step cannot be zero"}
		}
		return s, nil
	}

	i, err := strconv.Atoi(text)
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Segment: seg, Reason: fmt.Sprintf("invalid index %q", text)}
	}
	return Index(i), nil
}
