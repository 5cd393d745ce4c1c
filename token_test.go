package arabica

import "testing"

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Fatalf("Tokenize(%q) = %v, want nil", "", got)
	}
}

func TestTokenizeClassification(t *testing.T) {
	tests := []struct {
		in    string
		texts []string
		types []TokenType
	}{
		{"salam", []string{"salam"}, []TokenType{Word}},
		{"mar7aba!", []string{"mar7aba", "!"}, []TokenType{Word, Punct}},
		{"kayf 7alek", []string{"kayf", " ", "7alek"}, []TokenType{Word, Space, Word}},
		{"ma'qoul", []string{"ma'qoul"}, []TokenType{Word}},
		{"madina_t", []string{"madina_t"}, []TokenType{Word}},
		{"al-shams", []string{"al", "-", "shams"}, []TokenType{Word, Punct, Word}},
		{"  ", []string{"  "}, []TokenType{Space}},
		{"a?!b", []string{"a", "?", "!", "b"}, []TokenType{Word, Punct, Punct, Word}},
		{"salam école", []string{"salam", " ", "école"}, []TokenType{Word, Space, Word}},
		{"ok \U0001F600", []string{"ok", " ", "\U0001F600"}, []TokenType{Word, Space, Punct}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.texts) {
			t.Errorf("Tokenize(%q): %d tokens, want %d: %v", tt.in, len(got), len(tt.texts), got)
			continue
		}
		for i, tok := range got {
			if tok.Text != tt.texts[i] || tok.Type != tt.types[i] {
				t.Errorf("Tokenize(%q)[%d] = %v, want %s(%q)", tt.in, i, tok, tt.types[i], tt.texts[i])
			}
		}
	}
}

func TestTokenizeReconstruction(t *testing.T) {
	inputs := []string{
		"mar7aba, kayf 7alek?",
		"wach kat3raf  bzaf!!",
		"madina_t al-maghrib",
		"café \U0001F600 3afak...",
		"\tleading and trailing\n",
	}

	for _, in := range inputs {
		var rebuilt string
		for _, tok := range Tokenize(in) {
			if in[tok.Start:tok.End] != tok.Text {
				t.Errorf("Tokenize(%q): offsets [%d:%d] yield %q, token text is %q",
					in, tok.Start, tok.End, in[tok.Start:tok.End], tok.Text)
			}
			rebuilt += tok.Text
		}
		if rebuilt != in {
			t.Errorf("Tokenize(%q): reconstruction = %q", in, rebuilt)
		}
	}
}

func TestTokenizeOffsetsContiguous(t *testing.T) {
	in := "salam, ça va?"
	prev := 0
	for _, tok := range Tokenize(in) {
		if tok.Start != prev {
			t.Fatalf("token %v starts at %d, want %d", tok, tok.Start, prev)
		}
		prev = tok.End
	}
	if prev != len(in) {
		t.Fatalf("last token ends at %d, want %d", prev, len(in))
	}
}
