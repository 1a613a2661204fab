// Command mpttrie loads a set of key=value pairs, inserts them into a
// trie backed by the configured store, and prints the resulting root
// hash.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sterliakov/merkle-patricia-trie/config"
	"github.com/sterliakov/merkle-patricia-trie/log"
	"github.com/sterliakov/merkle-patricia-trie/store"
	"github.com/sterliakov/merkle-patricia-trie/store/badgerstore"
	"github.com/sterliakov/merkle-patricia-trie/store/memstore"
	"github.com/sterliakov/merkle-patricia-trie/trie"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	inputPath := flag.String("input", "", "Path to a file of key=value lines (default: stdin)")
	rootFlag := flag.String("root", "", "Hex-encoded root hash to resume from (default: empty trie)")

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		flag.Set("config", v)
	}

	flag.Parse()

	logger := log.New(log.NewTerminalHandler(levelFromEnv())).With("component", "main")

	loader := config.NewLoader(logger)
	cfg, err := loader.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	s, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	var root []byte
	if *rootFlag != "" {
		root = decodeHexRoot(*rootFlag, logger)
	}
	tr := trie.New(s, root, logger)

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			logger.Error("failed to open input", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	count := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Warn("skipping malformed line", "line", line)
			continue
		}
		if err := tr.Update([]byte(key), []byte(value)); err != nil {
			logger.Error("failed to insert key", "key", key, "err", err)
			os.Exit(1)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		logger.Error("failed to read input", "err", err)
		os.Exit(1)
	}

	logger.Info("trie built", "entries", count, "root", tr.RootHash().Hex())
	fmt.Println(tr.RootHash().Hex())
}

func openStore(cfg *config.StoreConfig, logger log.Logger) (store.KeyValStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memstore.New(), func() {}, nil
	case config.BackendBadger:
		s, err := badgerstore.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("failed to close store", "err", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}

func decodeHexRoot(hexRoot string, logger log.Logger) []byte {
	b, err := hex.DecodeString(strings.TrimPrefix(hexRoot, "0x"))
	if err != nil {
		logger.Error("invalid root hash", "root", hexRoot, "err", err)
		os.Exit(2)
	}
	return b
}

func levelFromEnv() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
