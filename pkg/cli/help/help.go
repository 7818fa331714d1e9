// Package help holds the guide topics printed by "rentdesk guide".
package help

import (
	"embed"
	"fmt"
	"io"
	"slices"
	"strings"
)

//go:embed topics/*.txt
var files embed.FS

// Topic is one guide page. Its text lives in topics/<Name>.txt.
type Topic struct {
	Name    string
	Aliases []string
	Summary string
}

var topics = []Topic{
	{Name: "config", Aliases: []string{"configuration", "contexts"}, Summary: "Configuration files, environment, contexts and precedence"},
	{Name: "filters", Aliases: []string{"where", "jsonpath"}, Summary: "Server-side criteria, --where expressions and --jsonpath"},
	{Name: "dates", Aliases: []string{"date"}, Summary: "Date format and defaults"},
	{Name: "rentals", Aliases: []string{"rental", "availability"}, Summary: "Renting, returning and availability"},
}

// Names returns the topic names in display order.
func Names() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a topic by name or alias, ignoring case and surrounding space.
func Lookup(name string) (Topic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range topics {
		if t.Name == name || slices.Contains(t.Aliases, name) {
			return t, nil
		}
	}
	var b strings.Builder
	WriteIndex(&b)
	return Topic{}, fmt.Errorf("unknown guide topic %q\n\nAvailable topics:\n%s", name, b.String())
}

// Text returns the topic's page.
func (t Topic) Text() (string, error) {
	data, err := files.ReadFile("topics/" + t.Name + ".txt")
	if err != nil {
		return "", fmt.Errorf("read topic %s: %w", t.Name, err)
	}
	return string(data), nil
}

// WriteIndex writes one line per topic with its summary.
func WriteIndex(w io.Writer) {
	for _, t := range topics {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", t.Name, t.Summary)
	}
}
