// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mdhender/pkr"
	"github.com/mdhender/pkr/internal/config"
	"github.com/mdhender/pkr/internal/logger"
	"github.com/mdhender/pkr/parser"
	"github.com/mdhender/pkr/renderer"
	"github.com/mdhender/pkr/repository"
	store "github.com/mdhender/pkr/stores/sqlite"
	"github.com/mdhender/pkr/web/auth"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().String("config", "", "configuration file (default $XDG_CONFIG_HOME/pkr/config.yaml)")
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "pkr",
		Short: "personal notes command line utility",
		Long:  `Parse, list and serve a directory of personal notes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags || logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("pkr: version %q\n", pkr.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdTree())
	cmdRoot.AddCommand(cmdScan())
	cmdRoot.AddCommand(cmdNotes())
	cmdRoot.AddCommand(cmdServe())
	cmdRoot.AddCommand(cmdInitDB())
	cmdRoot.AddCommand(cmdCompactDB())
	cmdRoot.AddCommand(cmdHashPassword())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config. The debug, quiet and verbose flags override log_level.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := cfg.LogLevel
	switch {
	case debug:
		level = "debug"
	case quiet:
		level = "warn"
	case verbose:
		level = "info"
	}
	l, err := logger.New(os.Stderr, level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func cmdParse() *cobra.Command {
	stripCR := false
	asHTML := false
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&asHTML, "html", asHTML, "render HTML instead of the JSON tree")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save parse to file")
		cmd.Flags().BoolVar(&stripCR, "strip-cr", stripCR, "strip CR from end-of-lines")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "parse <note-file>",
		Short:        "parse a note and print its document tree",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1), // require path to note file
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []parser.Option
			options = append(options, parser.WithStripCR(stripCR))
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				l, err := logger.New(os.Stderr, "debug")
				if err != nil {
					return err
				}
				options = append(options, parser.WithLogger(l))
			}
			p, err := parser.New(args[0], options...)
			if err != nil {
				return err
			}
			doc, err := p.Parse()
			if err != nil {
				return err
			}

			var data []byte
			if asHTML {
				var sb strings.Builder
				if err := renderer.Node(doc.Root).Render(cmd.Context(), &sb); err != nil {
					return err
				}
				data = []byte(sb.String())
			} else if data, err = json.MarshalIndent(doc.Tree(), "", "  "); err != nil {
				return err
			}

			if outputFile == "" {
				fmt.Printf("%s\n", string(data))
			} else if err = os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			} else {
				log.Printf("%s: wrote %d bytes\n", outputFile, len(data))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdTree() *cobra.Command {
	stripCR := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&stripCR, "strip-cr", stripCR, "strip CR from end-of-lines")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "tree <note-file>",
		Short:        "print a note's document tree",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parser.New(args[0], parser.WithStripCR(stripCR))
			if err != nil {
				return err
			}
			doc, err := p.Parse()
			if err != nil {
				return err
			}
			kindColor := color.New(color.FgCyan, color.Bold)
			urlColor := color.New(color.FgBlue, color.Underline)
			pkr.Walk(doc.Root, func(n *pkr.Node, depth int) bool {
				fmt.Print(strings.Repeat("  ", depth))
				kindColor.Print(n.Kind())
				if n.Kind().IsTextual() {
					fmt.Printf(" %q", n.Content())
				}
				if url := n.Attr("url"); url != "" {
					fmt.Print(" ")
					urlColor.Print(url)
				}
				fmt.Println()
				return true
			})
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdScan() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "scan <note-file>",
		Short:        "list the lines the parser sees",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s := pkr.NewLineScanner(string(input))
			for line, ok := s.NextLine(); ok; line, ok = s.NextLine() {
				fmt.Printf("%-35s %q\n", fmt.Sprintf("%s:%d:", args[0], s.Line()), line)
			}
			return nil
		},
	}
	return cmd
}

func cmdNotes() *cobra.Command {
	var notesDir string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&notesDir, "notes", notesDir, "notes directory (overrides notes_dir)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "notes",
		Short:        "list the notes in the notes directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if notesDir != "" {
				cfg.NotesDir = notesDir
			}
			repo, err := repository.New(afero.NewOsFs(), cfg.NotesDir, repository.WithStripCR(cfg.StripCR), repository.WithLogger(l))
			if err != nil {
				return err
			}
			notes, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			private := color.New(color.FgYellow)
			for _, n := range notes {
				visibility := "public"
				if !n.Public {
					visibility = private.Sprint("private")
				}
				fmt.Printf("%-24s %-32q %-7s %-16s %s\n",
					n.Slug, n.Title, visibility, humanize.Time(n.ModTime), strings.Join(n.Tags, " "))
			}
			fmt.Printf("%s notes\n", humanize.Comma(int64(len(notes))))
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdInitDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "init-db <path>",
		Short:        "create a new note index database",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDatabase(args[0]); err != nil {
				return err
			}
			log.Printf("store: created %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func cmdCompactDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "compact-db <path>",
		Short:        "checkpoint and vacuum a note index database",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			if err := store.CompactDatabase(args[0]); err != nil {
				return err
			}
			if fi, err := os.Stat(args[0]); err == nil {
				log.Printf("store: compacted %s to %s in %v\n", args[0], humanize.Bytes(uint64(fi.Size())), time.Since(started))
			}
			return nil
		},
	}
	return cmd
}

func cmdHashPassword() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "hash-password <password>",
		Short:        "print a bcrypt hash for owner_password_hash",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(pkr.Version().String())
				return nil
			}
			fmt.Println(pkr.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
