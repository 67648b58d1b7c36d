// Command bgrep searches files (or stdin) for occurrences of one or more
// byteseek patterns, printing "path:offset" for every match when more than
// one file is searched, or the bare offset for a single file or stdin. It exercises
// the full pipeline — syntax parsing, compilation, searcher selection,
// windowed reading — end to end, the way the teacher's own cmd/sf/sf.go
// exercises siegfried's identification pipeline end to end.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/binaryforge/byteseek/automaton"
	"github.com/binaryforge/byteseek/compiler"
	"github.com/binaryforge/byteseek/config"
	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/search"
	"github.com/binaryforge/byteseek/sequence"
	"github.com/binaryforge/byteseek/syntax"
)

// patternList collects repeated -e flags into a multi-pattern search.
type patternList []string

func (p *patternList) String() string { return fmt.Sprint([]string(*p)) }
func (p *patternList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

var (
	patterns  patternList
	algo      = flag.String("algo", "auto", "search algorithm: horspool, sunday, sethorspool, wumanber, naive, auto")
	blockSize = flag.Int("block", 0, "Wu-Manber block size (0 selects config.DefaultWuManberBlockSize)")
)

func main() {
	flag.Var(&patterns, "e", "pattern to search for, in byteseek grammar; repeat for a multi-pattern search")
	flag.Parse()

	if len(patterns) == 0 {
		log.Fatal("bgrep: at least one -e pattern is required")
	}

	s, err := buildSearcher(patterns, *algo, *blockSize)
	if err != nil {
		log.Fatalf("bgrep: %v", err)
	}

	files := flag.Args()
	if len(files) == 0 {
		if err := grepStdin(s); err != nil {
			log.Fatalf("bgrep: %v", err)
		}
		return
	}
	status := 0
	for _, path := range files {
		if err := grepFile(s, path, len(files) > 1); err != nil {
			fmt.Fprintf(os.Stderr, "bgrep: %v\n", err)
			status = 1
		}
	}
	os.Exit(status)
}

func grepStdin(s search.Searcher) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	src := reader.NewBytesBuffer(data, 0, nil)
	return printMatches(s, src, "", false)
}

func grepFile(s search.Searcher, path string, prefix bool) error {
	src, err := reader.OpenMMap(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()
	return printMatches(s, src, path, prefix)
}

func printMatches(s search.Searcher, src reader.Source, path string, prefix bool) error {
	for p := range s.SearchAll(src, 0, src.Length()) {
		if prefix {
			fmt.Printf("%s:%d\n", path, p.Offset)
		} else {
			fmt.Printf("%d\n", p.Offset)
		}
	}
	return nil
}

// buildSearcher compiles every pattern and picks the Searcher
// implementation matching algo and the compiled matcher's kind, per
// spec.md §3's "parameterised by a matcher (sequence, multi-sequence, or
// automaton)".
func buildSearcher(patterns []string, algo string, blockSize int) (search.Searcher, error) {
	compiled := make([]any, len(patterns))
	for i, p := range patterns {
		n, err := syntax.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		out, err := compiler.Compile(n)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", p, err)
		}
		compiled[i] = out
	}

	if len(compiled) > 1 {
		seqs := make([]*sequence.Matcher, len(compiled))
		for i, c := range compiled {
			seq, ok := asSequence(c)
			if !ok {
				return nil, fmt.Errorf("pattern %q: multi-pattern search requires every pattern to be a fixed-length sequence", patterns[i])
			}
			seqs[i] = seq
		}
		trie := multiseq.New(seqs)
		switch algo {
		case "wumanber":
			b := blockSize
			if b < 1 {
				b = config.DefaultWuManberBlockSize()
			}
			return search.NewWuManber(trie, b), nil
		case "naive":
			return search.NewNaiveMulti(trie), nil
		case "sethorspool", "auto", "":
			return search.NewSetHorspool(trie), nil
		default:
			return nil, fmt.Errorf("unknown multi-pattern algorithm %q", algo)
		}
	}

	switch v := compiled[0].(type) {
	case *automaton.NFA:
		return search.NewAutomatonSearch(automaton.Determinize(v)), nil
	case *sequence.Matcher:
		return sequenceSearcher(v, algo)
	case pattern.Matcher:
		return sequenceSearcher(sequence.New([]pattern.Matcher{v}), algo)
	default:
		return nil, fmt.Errorf("pattern %q compiled to an unsupported matcher type", patterns[0])
	}
}

func sequenceSearcher(seq *sequence.Matcher, algo string) (search.Searcher, error) {
	switch algo {
	case "sunday":
		return search.NewSunday(seq), nil
	case "naive":
		return search.NewNaiveSequence(seq), nil
	case "horspool", "auto", "":
		return search.NewHorspool(seq), nil
	default:
		return nil, fmt.Errorf("unknown single-pattern algorithm %q", algo)
	}
}

// asSequence promotes a single-byte matcher to a length-1 sequence so it
// can take part in a multi-pattern trie alongside real sequences.
func asSequence(c any) (*sequence.Matcher, bool) {
	switch v := c.(type) {
	case *sequence.Matcher:
		return v, true
	case pattern.Matcher:
		return sequence.New([]pattern.Matcher{v}), true
	default:
		return nil, false
	}
}
