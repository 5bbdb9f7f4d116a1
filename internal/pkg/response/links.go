package response

// Link is a HAL navigation entry.
type Link struct {
	Href string `json:"href"`
}

// SelfLinks builds a `_links` object holding only a self reference.
func SelfLinks(href string) map[string]Link {
	return map[string]Link{"self": {Href: href}}
}

// WithLink returns links extended by rel. The input map is not modified.
func WithLink(links map[string]Link, rel, href string) map[string]Link {
	out := make(map[string]Link, len(links)+1)
	for k, v := range links {
		out[k] = v
	}
	out[rel] = Link{Href: href}
	return out
}
