// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/simon200418/songindex"
	"github.com/simon200418/songindex/ingest"
	"github.com/simon200418/songindex/query"
)

func main() {
	app := &cli.App{
		Name:  "songsearch",
		Usage: "Full-text search over a song catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Path to the index directory",
				Value:   "songindex-data",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build the index from a CSV song catalog",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Aliases:  []string{"c"},
						Usage:    "Path to the song catalog CSV file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent analysis workers (0 = auto)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the indexed catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "field",
						Aliases: []string{"f"},
						Usage:   "Field to search (repeatable; default title, artist, lyrics)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "all-terms",
						Usage: "Require every query term to match instead of any",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Suggest titles and artists matching a partial input",
				ArgsUsage: "<input>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions",
						Value:   10,
					},
				},
			},
			{
				Name:      "details",
				Usage:     "Show the full stored record of one song",
				ArgsUsage: "<song-id>",
				Action:    detailsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func indexCommand(c *cli.Context) error {
	records, err := ingest.LoadCSV(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	opts := []songindex.EngineOption{}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, songindex.WithPoolSize(size))
	}
	engine, err := songindex.Open(c.String("index"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer engine.Close()

	if err := engine.Rebuild(context.Background(), records); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d songs\n", engine.DocCount())
	return nil
}

func searchCommand(c *cli.Context) error {
	raw := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if raw == "" {
		return fmt.Errorf("query is required")
	}

	opts := []songindex.EngineOption{}
	if c.Bool("all-terms") {
		opts = append(opts, songindex.WithConjunction(query.All))
	}
	engine, err := songindex.Open(c.String("index"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer engine.Close()

	results, err := engine.SearchSongs(raw, c.StringSlice("field"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. %-40s %-25s %8.3f  [%s]\n", i+1, r.Title, r.Artist, r.Score, r.SongID)
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return fmt.Errorf("input is required")
	}

	engine, err := songindex.Open(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer engine.Close()

	for _, s := range engine.Suggestions(input, c.Int("limit")) {
		fmt.Println(s)
	}
	return nil
}

func detailsCommand(c *cli.Context) error {
	songID := c.Args().First()
	if songID == "" {
		return fmt.Errorf("song id is required")
	}

	engine, err := songindex.Open(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer engine.Close()

	record, err := engine.GetSongDetails(songID)
	if err != nil {
		return err
	}

	fmt.Printf("Song ID: %s\n", record.SongID)
	fmt.Printf("Title:   %s\n", record.Title)
	fmt.Printf("Artist:  %s\n", record.Artist)
	fmt.Printf("Lyrics:\n%s\n", record.Lyrics)
	return nil
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}
