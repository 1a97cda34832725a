package templates

import (
	"strings"
	"testing"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
)

func TestTemplateLanguageSelection(t *testing.T) {
	testTemplate := messagingTypes.EmailTemplate{
		MessageType:     "test-type",
		DefaultLanguage: "pt-BR",
		Translations: []messagingTypes.LocalizedTemplate{
			{Lang: "pt-BR", Subject: "PT"},
			{Lang: "en", Subject: "EN"},
		},
	}

	t.Run("missing target language", func(t *testing.T) {
		translation := GetTemplateTranslation(testTemplate, "fr")
		if translation.Subject != "PT" {
			t.Errorf("unexpected translation found: %v", translation)
		}
	})

	t.Run("existing target language", func(t *testing.T) {
		translation := GetTemplateTranslation(testTemplate, "en")
		if translation.Subject != "EN" {
			t.Errorf("unexpected translation found: %v", translation)
		}
	})
}

func TestResolveTemplate(t *testing.T) {
	t.Run("empty template", func(t *testing.T) {
		_, err := ResolveTemplate("test", "  ", nil)
		if err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("simple payload", func(t *testing.T) {
		content, err := ResolveTemplate("test", "Hello {{.userName}}!", map[string]interface{}{
			"userName": "Ana",
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if content != "Hello Ana!" {
			t.Errorf("unexpected content: %s", content)
		}
	})

	t.Run("structured payload with range", func(t *testing.T) {
		content, err := ResolveTemplate("test",
			"{{range .responses}}{{.Question}}: {{.Answer}};{{end}}",
			map[string]interface{}{
				"responses": []map[string]interface{}{
					{"Question": "Blockers?", "Answer": "none"},
					{"Question": "Mood?", "Answer": "good"},
				},
			})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if !strings.Contains(content, "Blockers?: none;") || !strings.Contains(content, "Mood?: good;") {
			t.Errorf("unexpected content: %s", content)
		}
	})
}
