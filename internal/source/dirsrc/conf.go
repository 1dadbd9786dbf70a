package dirsrc

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// confFile represents a parsed repository .conf file.
type confFile struct {
	Lines []confLine `parser:"@@*"`
}

// confLine represents a single meaningful line in a conf file.
type confLine struct {
	Section  string `parser:"  @Section"`
	Property string `parser:"| @Property"`
}

// confLexer defines tokens for repository .conf files using line-based
// patterns. Order matters: more specific patterns come first.
var confLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comment lines (full line starting with #)
	{Name: "Comment", Pattern: `#[^\r\n]*`},
	// Section header line: [ModuleID]
	{Name: "Section", Pattern: `\[[^\]\r\n]+\]`},
	// Property line: Key=Value (keys can contain letters, digits, underscores, dots)
	{Name: "Property", Pattern: `[a-zA-Z][a-zA-Z0-9_.]*=[^\r\n]*`},
	// Continuation lines: multi-line value tails we ignore
	{Name: "Continuation", Pattern: `\\[^\r\n]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `[\r\n]+`},
})

var confParser = participle.MustBuild[confFile](
	participle.Lexer(confLexer),
	participle.Elide("Comment", "Whitespace", "Newline", "Continuation"),
)

// ModuleInfo is the metadata a repository .conf file declares for one
// installed module.
type ModuleInfo struct {
	ID          string
	Description string
	Language    string
	Version     string
	Category    string
}

// parseConf parses one .conf file into its module metadata.
func parseConf(input []byte) (*ModuleInfo, error) {
	cf, err := confParser.ParseBytes("", input)
	if err != nil {
		return nil, err
	}

	info := &ModuleInfo{}
	for _, line := range cf.Lines {
		if line.Section != "" {
			name := strings.TrimPrefix(line.Section, "[")
			name = strings.TrimSuffix(name, "]")
			info.ID = name
			continue
		}
		if line.Property == "" {
			continue
		}
		idx := strings.Index(line.Property, "=")
		if idx < 0 {
			continue
		}
		key := line.Property[:idx]
		value := strings.TrimSpace(line.Property[idx+1:])
		switch key {
		case "Description":
			info.Description = value
		case "Lang":
			info.Language = value
		case "Version":
			info.Version = value
		case "Category":
			info.Category = value
		}
	}
	return info, nil
}
