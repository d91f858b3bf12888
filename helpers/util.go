package helpers

import "net/url"

// AbsoluteURL resolves href against base, returning href unchanged when
// it is already absolute.
func AbsoluteURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	h, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(h).String(), nil
}
