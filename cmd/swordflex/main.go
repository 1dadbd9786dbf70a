// Command swordflex generates interlinear Greek New Testament data and
// FlexText interchange documents from installed text modules.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/SwordFlex/core/flextext"
	"github.com/FocuswithJustin/SwordFlex/core/gloss"
	"github.com/FocuswithJustin/SwordFlex/core/reference"
	"github.com/FocuswithJustin/SwordFlex/internal/api"
	"github.com/FocuswithJustin/SwordFlex/internal/export"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
	"github.com/FocuswithJustin/SwordFlex/internal/session"
	"github.com/FocuswithJustin/SwordFlex/internal/source"
)

const version = "0.1.0"

// CLI defines the command-line interface for swordflex.
var CLI struct {
	// Global flags
	Source          string `name:"source" short:"s" help:"Module database file or repository directory" default:"./modules" type:"path"`
	FallbackGlosses string `name:"fallback-glosses" help:"Local fallback gloss map (JSON, optionally xz-compressed)" type:"path"`
	Translation     string `name:"translation" short:"t" help:"Phrase translation module to select"`
	LogLevel        string `name:"log-level" help:"Log level" default:"warn" enum:"debug,info,warn,error"`
	LogFormat       string `name:"log-format" help:"Log format" default:"text" enum:"text,json"`

	Verse        VerseCmd          `cmd:"" help:"Print interlinear data for a single verse"`
	Passage      PassageCmd        `cmd:"" help:"Print interlinear data for a verse range"`
	Export       ExportGroup       `cmd:"" help:"Export documents (FlexText, book datasets)"`
	Lexicon      LexiconGroup      `cmd:"" help:"Lexicon dataset tools"`
	Translations TranslationsGroup `cmd:"" help:"Translation module operations"`
	Serve        ServeCmd          `cmd:"" help:"Start the REST API server"`
	Version      VersionCmd        `cmd:"" help:"Print version information"`
}

// ExportGroup contains export operations.
type ExportGroup struct {
	FlexText ExportFlexTextCmd `cmd:"" help:"Export a passage as a FlexText document"`
	Book     ExportBookCmd     `cmd:"" help:"Export a whole book as a compact JSON dataset"`
}

// LexiconGroup contains lexicon dataset operations.
type LexiconGroup struct {
	Convert LexiconConvertCmd `cmd:"" help:"Convert an open Strong's dataset to a fallback gloss map"`
}

// TranslationsGroup contains translation module operations.
type TranslationsGroup struct {
	List TranslationsListCmd `cmd:"" help:"List available translation modules"`
	Set  TranslationsSetCmd  `cmd:"" help:"Verify a translation module selection"`
}

// openSession opens the configured source and wires the gloss chain.
func openSession() (*session.Session, error) {
	src, err := source.Open(source.Config{Path: CLI.Source})
	if err != nil {
		return nil, err
	}
	sess, err := session.New(src, session.Options{
		FallbackGlossPath: CLI.FallbackGlosses,
	})
	if err != nil {
		src.Close()
		return nil, err
	}
	if CLI.Translation != "" {
		if err := sess.SetTranslation(CLI.Translation); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// VerseCmd prints one verse as interlinear JSON.
type VerseCmd struct {
	Ref string `arg:"" help:"Verse reference, e.g. 'John 1:1'"`
}

func (c *VerseCmd) Run() error {
	rng, err := reference.Parse(c.Ref)
	if err != nil {
		return err
	}
	if !rng.SingleVerse() {
		return fmt.Errorf("verse takes a single verse reference, got range %q (use 'passage')", c.Ref)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	v, err := sess.Verse(context.Background(), rng.Book, rng.StartChapter, rng.StartVerse)
	if err != nil {
		return err
	}
	return printJSON(v)
}

// PassageCmd prints a verse range as interlinear JSON.
type PassageCmd struct {
	Ref string `arg:"" help:"Passage reference, e.g. 'John 1:1-18' or 'John 1:1-5:14'"`
}

func (c *PassageCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.PassageByReference(context.Background(), c.Ref)
	if err != nil {
		return err
	}
	return printJSON(p)
}

// ExportFlexTextCmd exports a passage as a FlexText document.
type ExportFlexTextCmd struct {
	Ref            string `arg:"" help:"Passage reference to export"`
	Out            string `short:"o" help:"Output file or directory" default:"."`
	IncludeLiteral bool   `name:"include-literal" help:"Add literal translation items when present"`
}

func (c *ExportFlexTextCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	p, err := sess.PassageByReference(ctx, c.Ref)
	if err != nil {
		return err
	}
	doc, err := sess.BuildFlexText(ctx, p, flextext.FieldSelection{IncludeLiteral: c.IncludeLiteral})
	if err != nil {
		return err
	}

	res, err := export.WriteFlexText(c.Out, p.PassageRef, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s (%d verses) to %s\n", p.PassageRef, len(p.Verses), res.Path)
	fmt.Printf("BLAKE3: %s\n", res.Hash)
	return nil
}

// ExportBookCmd exports a whole book as a compact JSON dataset.
type ExportBookCmd struct {
	Book string `arg:"" help:"Book name, e.g. 'John'"`
	Out  string `short:"o" help:"Output JSON file" default:""`
}

func (c *ExportBookCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	out := c.Out
	if out == "" {
		out = strings.ReplaceAll(c.Book, " ", "_") + ".json"
	}

	ctx := context.Background()
	var translate export.TranslateFunc
	if id := sess.Translation(); id != "" {
		translate = func(book string, chapter, verse int) string {
			return sess.Source().PhraseTranslation(ctx, id, book, chapter, verse)
		}
	}

	res, err := export.ExportBook(ctx, sess, translate, c.Book, out)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s (%d bytes)\n", c.Book, res.Path, res.Bytes)
	return nil
}

// LexiconConvertCmd converts an open Strong's dataset into the fallback
// gloss map format.
type LexiconConvertCmd struct {
	Input     string `arg:"" help:"Dataset file (CSV, TSV, or JSON)" type:"existingfile"`
	Out       string `short:"o" help:"Output JSON file" default:"glosses.json"`
	Format    string `help:"Input format" enum:"auto,csv,tsv,json" default:"auto"`
	HasHeader bool   `name:"header" help:"First CSV/TSV row names the columns"`
	NumField  string `name:"num-field" help:"Column or key carrying the Strong's number"`
	GlossCol  string `name:"gloss-field" help:"Column or key carrying the gloss"`
}

func (c *LexiconConvertCmd) Run() error {
	format := c.Format
	if format == "auto" {
		switch {
		case strings.HasSuffix(c.Input, ".csv"):
			format = "csv"
		case strings.HasSuffix(c.Input, ".tsv"):
			format = "tsv"
		case strings.HasSuffix(c.Input, ".json"):
			format = "json"
		default:
			return fmt.Errorf("cannot infer format of %s, pass --format", c.Input)
		}
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := gloss.ConvertDataset(f, gloss.ConvertOptions{
		Format:     format,
		HasHeader:  c.HasHeader,
		NumField:   c.NumField,
		GlossField: c.GlossCol,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, append(out, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %d glosses to %s\n", len(entries), c.Out)
	return nil
}

// TranslationsListCmd lists translation modules the source carries.
type TranslationsListCmd struct{}

func (c *TranslationsListCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ids := sess.Translations()
	if len(ids) == 0 {
		fmt.Println("No translation modules available")
		return nil
	}
	selected := sess.Translation()
	for _, id := range ids {
		marker := " "
		if id == selected {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, id)
	}
	return nil
}

// TranslationsSetCmd verifies that a translation module exists in the
// source. The selection itself is per-invocation: pass --translation to
// the command that uses it.
type TranslationsSetCmd struct {
	ID string `arg:"" help:"Translation module ID"`
}

func (c *TranslationsSetCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.SetTranslation(c.ID); err != nil {
		return err
	}
	fmt.Printf("Translation module %s is available; pass --translation %s to use it\n", c.ID, c.ID)
	return nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port      int    `help:"HTTP server port" default:"8099"`
	ExportDir string `name:"export-dir" help:"Directory for server-side exports" default:"./exports" type:"path"`
}

func (c *ServeCmd) Run() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	srv := api.NewServer(sess, api.Config{Port: c.Port, ExportDir: c.ExportDir})
	return srv.Start()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("swordflex version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("swordflex"),
		kong.Description("Greek New Testament interlinear and FlexText generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
