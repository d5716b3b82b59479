package scaffold

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/vaultsetup/internal/core"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

// SampleFileName returns the welcome post file name for a category slug.
func SampleFileName(slug string) string {
	return "welcome-to-" + slug + ".md"
}

// SampleDoc renders the welcome post for a category: YAML front matter
// followed by a short how-to body.
func SampleDoc(category, slug string, date time.Time) ([]byte, error) {
	title := core.TitleCase(category)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}
	add("title", quoted("Welcome to "+title))
	add("slug", quoted("welcome-to-"+slug))
	add("journalist", quoted("author"))
	add("category", quoted(slug))
	add("tags", &yaml.Node{
		Kind:    yaml.SequenceNode,
		Style:   yaml.FlowStyle,
		Content: []*yaml.Node{quoted("welcome"), quoted("sample")},
	})
	add("date", quoted(date.Format(DateLayout)))
	add("excerpt", quoted(fmt.Sprintf("This is a sample post in the %s category.", category)))
	add("status", quoted("published"))
	add("featured", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
	add("reading_time", quoted("2 min"))

	var fm bytes.Buffer
	enc := yaml.NewEncoder(&fm)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString("---\n")
	out.Write(fm.Bytes())
	out.WriteString("---\n")
	fmt.Fprintf(&out, sampleBody, title)
	return out.Bytes(), nil
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}
