package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/infinitensor/tokeneer-go/tokenizer"
)

func die(err error) { fmt.Fprintln(os.Stderr, err); os.Exit(1) }

func main() {
	if len(os.Args) < 2 {
		fmt.Println("tokeneer [encode|decode|dump]")
		return
	}

	switch os.Args[1] {
	case "encode":
		fs := flag.NewFlagSet("encode", flag.ExitOnError)
		model := fs.String("model", "", "path to tokenizer.model")
		vocabsTxt := fs.String("vocab", "", "path to vocabs.txt (LPE mode)")
		useLPE := fs.Bool("lpe", false, "use LPE instead of BPE")
		_ = fs.Parse(os.Args[2:])

		tk, err := loadTokeneer(*model, *vocabsTxt, *useLPE)
		if err != nil {
			die(err)
		}
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			toks := tk.Encode(sc.Text())
			if err := json.NewEncoder(os.Stdout).Encode(toks); err != nil {
				die(err)
			}
		}
		if err := sc.Err(); err != nil {
			die(err)
		}

	case "decode":
		fs := flag.NewFlagSet("decode", flag.ExitOnError)
		model := fs.String("model", "", "path to tokenizer.model")
		vocabsTxt := fs.String("vocab", "", "path to vocabs.txt (LPE mode)")
		useLPE := fs.Bool("lpe", false, "use LPE instead of BPE")
		_ = fs.Parse(os.Args[2:])

		tk, err := loadTokeneer(*model, *vocabsTxt, *useLPE)
		if err != nil {
			die(err)
		}
		var toks []tokenizer.Token
		if err := json.NewDecoder(os.Stdin).Decode(&toks); err != nil {
			die(err)
		}
		text, err := tk.Decode(toks)
		if err != nil {
			die(err)
		}
		fmt.Println(text)

	case "dump":
		fs := flag.NewFlagSet("dump", flag.ExitOnError)
		model := fs.String("model", "", "path to tokenizer.model")
		_ = fs.Parse(os.Args[2:])
		if *model == "" {
			die(fmt.Errorf("dump requires -model"))
		}
		raw, err := os.ReadFile(*model)
		if err != nil {
			die(err)
		}
		bpe, err := tokenizer.NewBPEFromModel(raw)
		if err != nil {
			die(err)
		}
		tokenizer.DumpVocab(os.Stdout, bpe)

	default:
		die(fmt.Errorf("unknown command %q", os.Args[1]))
	}
}

func loadTokeneer(model, vocabsTxt string, useLPE bool) (*tokenizer.Tokeneer, error) {
	var method tokenizer.Method
	switch {
	case useLPE:
		if vocabsTxt == "" {
			return nil, fmt.Errorf("-lpe requires -vocab")
		}
		raw, err := os.ReadFile(vocabsTxt)
		if err != nil {
			return nil, err
		}
		lpe, err := tokenizer.NewLPEFromVocabsTxt(raw)
		if err != nil {
			return nil, err
		}
		method = lpe
	default:
		if model == "" {
			return nil, fmt.Errorf("encode/decode require -model (or -lpe -vocab)")
		}
		raw, err := os.ReadFile(model)
		if err != nil {
			return nil, err
		}
		bpe, err := tokenizer.NewBPEFromModel(raw)
		if err != nil {
			return nil, err
		}
		method = bpe
	}
	return tokenizer.NewTokeneer(method)
}
