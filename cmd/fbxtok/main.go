package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/reusee/dscope"
	"github.com/shatterblast/assimp-1/cmds"
	"github.com/shatterblast/assimp-1/configs"
	"github.com/shatterblast/assimp-1/fbx"
	"github.com/shatterblast/assimp-1/logs"
	"github.com/shatterblast/assimp-1/modes"
	"github.com/shatterblast/assimp-1/syncs"
	"github.com/shatterblast/assimp-1/vars"
)

type Module struct {
	dscope.Module
}

var (
	maxDump       = cmds.Var[int]("-max-dump")
	withPositions = cmds.Switch("-positions")
)

const configSchema = `
maxDump?: int
withPositions?: bool
`

// DumpOptions merges flags over the fbxtok.cue config file.
type DumpOptions struct {
	MaxDump       int
	WithPositions bool
}

func (Module) DumpOptions() DumpOptions {
	candidates := []string{"fbxtok.cue"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "fbxtok", "config.cue"))
	}
	var paths []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	loader := configs.NewLoader(paths, configSchema)

	return DumpOptions{
		MaxDump: vars.FirstNonZero(
			*maxDump,
			configs.First[int](loader, "maxDump"),
		),
		WithPositions: *withPositions ||
			vars.DerefOrZero(configs.First[*bool](loader, "withPositions")),
	}
}

func main() {
	var files []string
	cmds.GlobalExecutor.Fallback(func(arg string) {
		files = append(files, arg)
	})
	cmds.Execute(os.Args[1:])

	if len(files) == 0 {
		os.Stderr.WriteString("usage: fbxtok [flags] file.fbx ...\n")
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(-1)
	}

	dscope.New(
		new(Module),
		new(logs.Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		options DumpOptions,
	) {
		type result struct {
			output string
			err    error
		}
		results := make([]result, len(files))

		sem := syncs.NewSemaphore(4)
		var wg sync.WaitGroup
		for i, path := range files {
			wg.Add(1)
			sem.Acquire()
			go func() {
				defer wg.Done()
				defer sem.Release()
				ctx, _ := newSpan(context.Background(), "")
				output, err := dumpFile(ctx, logger, path, options)
				results[i] = result{
					output: output,
					err:    logs.WrapSpan(ctx, err),
				}
			}()
		}
		wg.Wait()

		failed := false
		for _, res := range results {
			os.Stdout.WriteString(res.output)
			if res.err != nil {
				failed = true
				os.Stderr.WriteString(res.err.Error())
				os.Stderr.WriteString("\n")
			}
		}
		if failed {
			os.Exit(-1)
		}
	})
}

func dumpFile(ctx context.Context, logger logs.Logger, path string, options DumpOptions) (string, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	t0 := time.Now()
	var tokens []*fbx.Token
	encoding := "text"
	if fbx.HasBinaryMagic(input) {
		encoding = "binary"
		tokens, err = fbx.TokenizeBinary(input)
	} else {
		tokens, err = fbx.Tokenize(input)
	}
	if err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "tokenized",
		"file", path,
		"encoding", encoding,
		"tokens", len(tokens),
		"duration", time.Since(t0),
	)

	var sb strings.Builder
	for i, token := range tokens {
		if options.MaxDump > 0 && i >= options.MaxDump {
			fmt.Fprintf(&sb, "... %d more tokens\n", len(tokens)-i)
			break
		}
		if options.WithPositions {
			fmt.Fprintf(&sb, "%s\t%s\n", token.Position(), token)
		} else {
			fmt.Fprintf(&sb, "%s\n", token)
		}
	}
	return sb.String(), nil
}
