package cliconfig

import "strings"

// EndpointFor resolves an API path such as "api/rentals" against APIURL.
func (c *Config) EndpointFor(api string) string {
	base := c.APIURL
	if base == "" {
		base = DefaultAPIURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(api, "/")
}
