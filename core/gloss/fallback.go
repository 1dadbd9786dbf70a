package gloss

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

// NormalizeKey reduces a Strong's number to its digit-only form: leading
// "G"/"g" and zeros are stripped, all remaining non-digits dropped.
// "G0746" -> "746", "3056" -> "3056".
func NormalizeKey(num string) string {
	s := strings.TrimSpace(num)
	s = strings.TrimLeft(s, "Gg ")
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}

// NormalizeGloss reduces a lexicon definition to a concise gloss: the
// first segment before a semicolon or line break, trimmed.
func NormalizeGloss(text string) string {
	t := strings.TrimSpace(text)
	for _, sep := range []string{";", "\r", "\n"} {
		if i := strings.Index(t, sep); i >= 0 {
			t = t[:i]
		}
	}
	return strings.TrimSpace(t)
}

// LoadFallbackMap loads the optional local Strong's gloss map from a JSON
// file ({"3056": "word, reason"}). Keys are normalized to digit-only form.
// Files ending in .xz are transparently decompressed. A missing file is
// not an error and yields a nil map.
func LoadFallbackMap(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &errors.ParseError{Format: "gloss map", Path: path, Message: "cannot open", Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, &errors.ParseError{Format: "gloss map", Path: path, Message: "bad xz stream", Err: err}
		}
		r = xr
	}

	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &errors.ParseError{Format: "gloss map", Path: path, Message: "malformed JSON mapping", Err: err}
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		key := NormalizeKey(k)
		if key == "" || v == "" {
			continue
		}
		out[key] = v
	}
	return out, nil
}
