package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"solitaire/internal/config"
	"solitaire/internal/model"
	"solitaire/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "deal":
		if err := cmdDeal(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "deal failed:", err)
			os.Exit(1)
		}
	case "simulate":
		if err := cmdSimulate(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "simulate failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdDeal(args []string) error {
	fs := flag.NewFlagSet("deal", flag.ContinueOnError)
	seed := fs.Int64("seed", 1, "shuffle seed")
	cfgPath := fs.String("config", "", "optional config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	s := ops.NewSeededSession(cfg, *seed, model.Easy, nil)
	return ops.RenderTable(os.Stdout, s.Snapshot())
}

func cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	seed := fs.Int64("seed", 1, "first shuffle seed")
	games := fs.Int("games", 1, "number of consecutive seeds to play")
	difficulty := fs.String("difficulty", "easy", "easy or hard")
	steps := fs.Int("steps", 1000, "click budget per game")
	cfgPath := fs.String("config", "", "optional config file")
	asJSON := fs.Bool("json", false, "print one JSON object per game")
	verbose := fs.Bool("v", false, "log every phase change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := model.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	log := zap.NewNop()
	if *verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	cleared := 0
	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < *games; i++ {
		s := ops.NewSeededSession(cfg, *seed+int64(i), d, log)
		res := ops.Simulate(s, *steps)
		res.Seed = *seed + int64(i)
		if res.Cleared {
			cleared++
		}
		if *asJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		fmt.Println(res)
	}
	if *games > 1 && !*asJSON {
		fmt.Printf("cleared %d/%d\n", cleared, *games)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv(config.Default()), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return config.FromEnv(cfg), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  ops deal [-seed N] [-config path]")
	fmt.Fprintln(os.Stderr, "  ops simulate [-seed N] [-games K] [-difficulty easy|hard] [-steps N] [-json] [-v]")
}
