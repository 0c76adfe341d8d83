package esic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHeadings(t *testing.T) {
	assert.Equal(t,
		Headings{Main: "ESIC", Sub: "Contribution History"},
		ExtractHeadings("  ESIC  \n Contribution History\nbody"),
	)
	assert.Equal(t, Headings{Main: "Only"}, ExtractHeadings("Only"))
	assert.Equal(t, Headings{}, ExtractHeadings(""))
}

func TestExtractFooter(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  Footer
	}{
		{
			name:  "all fields",
			pages: []string{"Page 1 of 4\nPrinted On: 12/3/2024\n09:05:59PM"},
			want:  Footer{TotalPages: "4", PrintedOn: "12/3/2024", PrintedTime: "09:05:59PM"},
		},
		{
			name:  "first page with metadata wins",
			pages: []string{"no footer", "", "1:02:03AM", "Page 2 of 9"},
			want:  Footer{TotalPages: "1", PrintedTime: "1:02:03AM"},
		},
		{
			name:  "nothing found",
			pages: []string{"plain", "text"},
			want:  Footer{TotalPages: "1"},
		},
		{
			name: "no pages",
			want: Footer{TotalPages: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFooter(tt.pages))
		})
	}
}
