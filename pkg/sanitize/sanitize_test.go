package sanitize

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsCleanAcceptsPlainText(t *testing.T) {
	s := New()
	tests := []string{
		"Pine Hollow",
		"Shaded sites along the river, 25.50 per night",
		"no. 5 loop, sites 12 to 18",
	}
	for _, input := range tests {
		if !s.IsClean(input) {
			t.Fatalf("plain text rejected: %q", input)
		}
	}
}

func TestIsCleanRejectsMarkup(t *testing.T) {
	s := New()
	tests := []string{
		"<script>alert(1)</script>",
		"nice <b>camp</b>",
		`<img src="x" onerror="alert(1)">`,
	}
	for _, input := range tests {
		if s.IsClean(input) {
			t.Fatalf("markup accepted: %q", input)
		}
	}
}

func TestCleanStripsEveryTag(t *testing.T) {
	s := New()
	if got := s.Clean("<p>hello <b>world</b></p>"); got != "hello world" {
		t.Fatalf("Clean = %q", got)
	}
}

func TestNoHTMLTagFailsValidation(t *testing.T) {
	validate := validator.New()
	if err := New().RegisterNoHTML(validate); err != nil {
		t.Fatalf("RegisterNoHTML failed: %v", err)
	}

	payload := struct {
		Title string `validate:"required,nohtml"`
	}{Title: "<script>alert(1)</script>"}

	if err := validate.Struct(&payload); err == nil {
		t.Fatal("expected nohtml violation")
	}

	payload.Title = "Pine Hollow"
	if err := validate.Struct(&payload); err != nil {
		t.Fatalf("clean title rejected: %v", err)
	}
}
