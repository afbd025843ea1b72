package ident

import "testing"

func TestExtractDOI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"doi.org URL", "https://doi.org/10.1234/example", "10.1234/example"},
		{"dx.doi.org URL", "http://dx.doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"doi prefix", "doi:10.1101/2024.01.15.575664", "10.1101/2024.01.15.575664"},
		{"uppercase prefix", "DOI:10.1234/ABC.def", "10.1234/abc.def"},
		{"embedded in text", "see 10.1093/sysbio/syy032 for details", "10.1093/sysbio/syy032"},
		{"trailing punctuation", "https://doi.org/10.1234/example.", "10.1234/example"},
		{"publisher URL", "https://link.springer.com/article/10.1007/s00285-016-1034-0", "10.1007/s00285-016-1034-0"},
		{"no DOI", "https://example.com/random-page", ""},
		{"too short", "10.1/x", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDOI(tt.input)
			if got != tt.want {
				t.Errorf("ExtractDOI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://doi.org/10.1234/Example", "10.1234/example"},
		{"doi:10.1234/example", "10.1234/example"},
		{"  10.1234/example  ", "10.1234/example"},
	}

	for _, tt := range tests {
		if got := NormalizeDOI(tt.input); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"amazon dp URL", "https://www.amazon.de/Computational-Phylogenetics/dp/1138021016", "1138021016"},
		{"isbn path", "https://books.example.org/isbn/0-306-40615-2", "0306406152"},
		{"isbn prefix ISBN-13", "isbn: 978-0-306-40615-7", "9780306406157"},
		{"hyphenated ISBN-10 with X", "https://shop.example.com/dp/0-8044-2957-X", "080442957X"},
		{"bad checksum rejected", "https://www.amazon.com/dp/1138021017", ""},
		{"bad ISBN-13 checksum", "isbn:9780306406158", ""},
		{"wrong length", "https://example.com/dp/12345", ""},
		{"no marker", "https://example.com/1138021016", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractISBN(tt.input)
			if got != tt.want {
				t.Errorf("ExtractISBN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidISBN(t *testing.T) {
	valid := []string{"1138021016", "0306406152", "080442957X", "9780306406157"}
	for _, isbn := range valid {
		if !ValidISBN(isbn) {
			t.Errorf("ValidISBN(%q) = false, want true", isbn)
		}
	}

	invalid := []string{"1138021017", "9780306406158", "12345", "080442957Y", ""}
	for _, isbn := range invalid {
		if ValidISBN(isbn) {
			t.Errorf("ValidISBN(%q) = true, want false", isbn)
		}
	}
}

func TestExtractArXivID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"abs URL", "https://arxiv.org/abs/2301.00001", "2301.00001"},
		{"pdf URL", "https://arxiv.org/pdf/2301.12345v2", "2301.12345v2"},
		{"html URL", "https://arxiv.org/html/2506.02153v1", "2506.02153v1"},
		{"arxiv prefix", "arXiv:1308.0850", "1308.0850"},
		{"uppercase host", "https://ARXIV.ORG/abs/2301.00001", "2301.00001"},
		{"four digit suffix", "https://arxiv.org/abs/1203.1234", "1203.1234"},
		{"no id", "https://arxiv.org/list/cs.LG/recent", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractArXivID(tt.input)
			if got != tt.want {
				t.Errorf("ExtractArXivID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase host", "https://Example.COM/Page", "https://example.com/Page"},
		{"strip www", "https://www.example.com/page", "https://example.com/page"},
		{"strip trailing slash", "https://example.com/page/", "https://example.com/page"},
		{"http collapses to https", "http://example.com/page", "https://example.com/page"},
		{"strip tracking params", "https://example.com/page?utm_source=x&id=7", "https://example.com/page?id=7"},
		{"strip fragment", "https://example.com/page#section", "https://example.com/page"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Identical inputs must always normalize identically; matching depends on it.
func TestNormalizeURLDeterministic(t *testing.T) {
	input := "https://www.example.com/a/b/?utm_campaign=x&q=1&utm_source=y"
	first := NormalizeURL(input)
	for i := 0; i < 10; i++ {
		if got := NormalizeURL(input); got != first {
			t.Fatalf("NormalizeURL not deterministic: %q vs %q", got, first)
		}
	}
}
