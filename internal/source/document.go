package source

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatterBlock matches a leading "---" delimited block and captures the
// YAML and the remaining body.
var frontMatterBlock = regexp.MustCompile(`(?s)^---\r?\n(?:(.*?)\r?\n)?---(?:\r?\n|$)(.*)$`)

// FrontMatter holds the recognized front-matter fields. Zero values mean the
// field was absent or malformed.
type FrontMatter struct {
	Title         string
	Prerequisites []string
	Ignored       bool
}

// Document is one authored source file.
type Document struct {
	Location    string // Slash path of the source, including the content root
	Raw         string
	Body        string // Raw with the front-matter block removed
	HasBody     bool   // Body contains more than whitespace
	FrontMatter FrontMatter
}

// Parse splits raw into front-matter and body. Malformed front-matter is
// treated as absent; it never fails.
func Parse(location, raw string) Document {
	doc := Document{Location: location, Raw: raw, Body: raw}

	if m := frontMatterBlock.FindStringSubmatch(raw); m != nil {
		doc.Body = m[2]
		doc.FrontMatter = parseFrontMatter(m[1])
	}
	doc.HasBody = strings.TrimSpace(doc.Body) != ""

	return doc
}

// parseFrontMatter decodes each recognized field independently so one bad
// field does not discard the others.
func parseFrontMatter(block string) FrontMatter {
	var fm FrontMatter

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return fm
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fm
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return fm
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i].Value, mapping.Content[i+1]
		switch key {
		case "title":
			var title string
			if value.Kind == yaml.ScalarNode && value.Decode(&title) == nil {
				fm.Title = strings.TrimSpace(title)
			}
		case "prerequisites":
			var prereqs []string
			if value.Kind == yaml.SequenceNode && value.Decode(&prereqs) == nil {
				fm.Prerequisites = prereqs
			}
		case "ignored":
			var ignored bool
			if value.Decode(&ignored) == nil {
				fm.Ignored = ignored
			}
		}
	}

	return fm
}
