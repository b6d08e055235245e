package pemcsv

import (
	"errors"
	"regexp"
)

// ErrNoXMLContent is returned when no XML fragment can be found in the
// decoded container content.
var ErrNoXMLContent = errors.New("no XML content found")

// XML search patterns, tried in order. The first is the only one with
// any real selectivity (an <?xml declaration through the last closing
// tag); the other two are loose tag-pair scans for payloads that omit
// the declaration. Matching is greedy so nested documents are captured
// through their final closing tag, and the first pattern that matches
// wins even when the input holds several top-level fragments.
var xmlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<\?xml.*</[^>]+>`),
	regexp.MustCompile(`(?s)<[^>]+>.*</[^>]+>`),
	regexp.MustCompile(`(?s)<\w+[^>]*>.*</\w+>`),
}

// LocateXML searches text for an XML document fragment and returns the
// full matched substring.
func LocateXML(text string) (string, error) {
	for _, re := range xmlPatterns {
		if m := re.FindString(text); m != "" {
			return m, nil
		}
	}
	return "", ErrNoXMLContent
}
