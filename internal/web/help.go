// ABOUTME: Help page rendered from embedded markdown topics
// ABOUTME: Topics are listed from docs/help and converted with goldmark

package web

import (
	"bytes"
	"html/template"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultHelpTopic = "getting-started"

// helpTopic is one entry in the help sidebar
type helpTopic struct {
	Slug   string
	Title  string
	Active bool
}

// helpTopicOrder puts the topics in reading order; unknown ones sort last.
var helpTopicOrder = map[string]int{
	"getting-started": 1,
	"customization":   2,
	"widgets":         3,
	"endpoints":       4,
}

var helpMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// listHelpTopics returns the embedded topics in display order.
func listHelpTopics(selected string) ([]helpTopic, error) {
	entries, err := helpDocsFS.ReadDir("docs/help")
	if err != nil {
		return nil, err
	}

	title := cases.Title(language.English)
	var topics []helpTopic
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		topics = append(topics, helpTopic{
			Slug:   slug,
			Title:  title.String(strings.ReplaceAll(slug, "-", " ")),
			Active: slug == selected,
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		orderI, okI := helpTopicOrder[topics[i].Slug]
		orderJ, okJ := helpTopicOrder[topics[j].Slug]
		if !okI {
			orderI = 100
		}
		if !okJ {
			orderJ = 100
		}
		if orderI != orderJ {
			return orderI < orderJ
		}
		return topics[i].Slug < topics[j].Slug
	})
	return topics, nil
}

// renderHelpTopic converts the topic's markdown to HTML. Unknown slugs
// render a not-found page rather than an error.
func renderHelpTopic(slug string, topics []helpTopic) (template.HTML, error) {
	md := []byte("# Not Found\n\nThis help topic could not be found.")
	for _, t := range topics {
		if t.Slug == slug {
			content, err := helpDocsFS.ReadFile(path.Join("docs/help", slug+".md"))
			if err != nil {
				return "", err
			}
			md = content
			break
		}
	}

	var buf bytes.Buffer
	if err := helpMarkdown.Convert(md, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// handleHelp renders the help page for ?topic= (default getting-started).
func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("topic")
	if selected == "" {
		selected = defaultHelpTopic
	}

	topics, err := listHelpTopics(selected)
	if err != nil {
		s.logger.Error("failed to read help docs", "error", err)
		http.Error(w, "Failed to load help", http.StatusInternalServerError)
		return
	}

	content, err := renderHelpTopic(selected, topics)
	if err != nil {
		s.logger.Error("failed to render help topic", "topic", selected, "error", err)
		content = template.HTML("<p>Failed to render help content.</p>")
	}

	st := s.settingsFor(w, r)
	data := struct {
		Topics    []helpTopic
		Content   template.HTML
		RootStyle template.CSS
		BodyClass string
	}{
		Topics:    topics,
		Content:   content,
		RootStyle: rootStyle(st),
		BodyClass: st.BodyClass(),
	}

	s.renderTemplate(w, "help.html", data)
}
