package config

// This file implements CLI parsing: one app with global display/path flags
// and two commands, locale-dump (alias ld) and languages (alias langs).
// Flag defaults come from cfg, so env overrides applied earlier hold unless a
// flag is passed.

import (
	"os"
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"
)

const appDescription = `7 Days to Die utilities.

locale-dump collects every Localization.txt under the Mods directory, keeps one
language column (plus any extra columns), sorts the rows by key and writes a
single Localization-DUMP.txt. With --google-translate each value becomes a
GOOGLETRANSLATE formula ready to paste into Google Sheets.`

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
func ParseFlags(cfg *Config, version string) error {
	return ParseArgs(cfg, version, os.Args[1:])
}

// ParseArgs parses args into cfg and records the selected command.
func ParseArgs(cfg *Config, version string, args []string) error {
	app := kingpin.New("localedump", appDescription).Version(version)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('V')

	color := string(cfg.ColorMode)
	defineGlobalFlags(app, cfg, &color)
	defineDumpCommand(app, cfg)
	app.Command(CommandLanguages, "List the supported languages and their locale tags.").Alias("langs")

	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}
	cfg.Command = cmd
	cfg.ColorMode = ColorMode(color)
	return nil
}

// defineGlobalFlags registers --mods-dir, -o/--output, --color, -v/--verbose,
// --log and --no-progress.
func defineGlobalFlags(app *kingpin.Application, cfg *Config, color *string) {
	app.Flag("mods-dir", "Directory searched recursively for Localization.txt.").
		Default(cfg.ModsDir).StringVar(&cfg.ModsDir)
	app.Flag("output", "Dump file to write (overwritten).").Short('o').
		Default(cfg.OutputFile).StringVar(&cfg.OutputFile)
	app.Flag("color", "Colored logs: auto, always or never.").
		Default(*color).EnumVar(color, string(ColorAuto), string(ColorAlways), string(ColorNever))
	app.Flag("verbose", "Verbose output.").Short('v').BoolVar(&cfg.Verbose)
	app.Flag("log", "Append logs to file.").Default(cfg.LogFile).StringVar(&cfg.LogFile)
	app.Flag("no-progress", "Do not draw the progress bar.").BoolVar(&cfg.NoProgress)
}

// defineDumpCommand registers locale-dump and its flags.
func defineDumpCommand(app *kingpin.Application, cfg *Config) {
	cmd := app.Command(CommandDump, "Dump the game Localization data to ./Localization-DUMP.txt.").Alias("ld")
	cmd.Flag("language", "The language to dump.").Short('l').
		Default(cfg.Language).StringVar(&cfg.Language)
	cmd.Flag("keys", "Extra keys to dump (repeatable or comma-separated).").Short('k').
		StringsVar(&cfg.ExtraKeys)
	cmd.Flag("target-language", "The target language of the translation dump.").Short('t').
		StringVar(&cfg.TargetLanguage)
	cmd.Flag("ignore-language", "Skip files that already have a translation in this column.").Short('i').
		StringVar(&cfg.IgnoreLanguage)
	cmd.Flag("google-translate", "Write GOOGLETRANSLATE formulas for Google Sheets.").Short('g').
		BoolVar(&cfg.GoogleTranslate)
	cmd.Flag("xlsx", "Also write the dump as an .xlsx workbook.").StringVar(&cfg.XLSXFile)
	cmd.Flag("jobs", "Number of files parsed in parallel.").Short('j').
		Default(strconv.Itoa(cfg.Jobs)).IntVar(&cfg.Jobs)
}
