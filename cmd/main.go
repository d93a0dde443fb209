package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/jaxxstorm/vers"
)

// Version will be set by build process
var Version = "dev"

type CLI struct {
	Commitish string `arg:"" optional:"" help:"Git commitish to analyze or version string to convert (default: HEAD)"`
	Language  string `short:"l" default:"generic" enum:"generic,semver,python,javascript,js,node,dotnet,csharp,go,golang" help:"Output format"`
	Repo      string `short:"r" help:"Repository path (default: current directory)"`

	TagPrefix         string   `env:"VERS_TAG_PREFIX" help:"Prefix stripped from tag names before parsing (e.g. 'v')"`
	AutoIncrement     string   `env:"VERS_AUTO_INCREMENT" default:"patch" enum:"patch,minor,major" help:"Component bumped above a stable base"`
	DefaultPreRelease []string `env:"VERS_DEFAULT_PRE_RELEASE" help:"Pre-release identifiers appended above a stable base (default: alpha 0)" sep:","`
	MinimumMajorMinor string   `env:"VERS_MINIMUM_MAJOR_MINOR" help:"Floor the synthesized version at major.minor (e.g. '2.0')"`
	IgnoreHeight      bool     `env:"VERS_IGNORE_HEIGHT" help:"Treat commit height as zero"`
	BuildMetadata     []string `env:"VERS_BUILD_METADATA" help:"Build metadata appended to the final version" sep:","`

	JSON        bool `short:"j" help:"Output as JSON"`
	Verbose     bool `short:"v" help:"Print warnings and the base decision to stderr"`
	ShowVersion bool `help:"Show version information" name:"version"`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("vers"),
		kong.Description("Calculate semantic versions from Git repository state or convert version strings"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	err := cli.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *CLI) Run() error {
	if c.ShowVersion {
		return c.showVersion()
	}

	if c.Commitish != "" && isVersionString(c.Commitish) {
		return c.convertVersion()
	}

	return c.calculateVersion()
}

func (c *CLI) showVersion() error {
	versionInfo := map[string]string{
		"version": Version,
		"name":    "vers",
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(versionInfo)
	}

	fmt.Printf("vers version %s\n", Version)
	return nil
}

func (c *CLI) convertVersion() error {
	versions, err := vers.CalculateFromString(c.Commitish)
	if err != nil {
		return fmt.Errorf("converting version: %w", err)
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(versions)
	}

	fmt.Println(getVersionOutput(versions, c.Language))
	return nil
}

// configuration builds a Configuration from the CLI flags, starting from
// the library's defaults and overriding only what the user set.
func (c *CLI) configuration() (vers.Configuration, error) {
	cfg := vers.DefaultConfiguration()
	cfg.TagPrefix = c.TagPrefix
	cfg.IgnoreHeight = c.IgnoreHeight
	cfg.BuildMetadata = c.BuildMetadata

	increment, err := vers.ParseIncrement(c.AutoIncrement)
	if err != nil {
		return vers.Configuration{}, err
	}
	cfg.AutoIncrement = increment

	if len(c.DefaultPreRelease) > 0 {
		ids, err := vers.ParseIdentifiers(c.DefaultPreRelease)
		if err != nil {
			return vers.Configuration{}, err
		}
		cfg.DefaultPreReleaseIdentifiers = ids
	}

	if c.MinimumMajorMinor != "" {
		floor, err := parseMajorMinor(c.MinimumMajorMinor)
		if err != nil {
			return vers.Configuration{}, err
		}
		cfg.MinimumMajorMinor = floor
	}

	return cfg, cfg.Validate()
}

func (c *CLI) calculateVersion() error {
	commitish := "HEAD"
	if c.Commitish != "" {
		commitish = c.Commitish
	}

	repoPath := c.Repo
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	cfg, err := c.configuration()
	if err != nil {
		return err
	}

	// Try to open the repository, but degrade gracefully if it's not a
	// git repo at all: there is nothing to walk, so fall back.
	repo, err := vers.OpenRepository(repoPath)
	if err != nil {
		return c.printFallback()
	}

	opts := vers.Options{
		Repository:    repo,
		Commitish:     plumbing.Revision(commitish),
		Configuration: cfg,
	}

	result, err := vers.Calculate(opts)
	if err != nil {
		// A repository read failure (e.g. an unborn HEAD in a brand-new
		// repository with no commits) means there's no history to
		// describe, so fall back the same as a missing repository.
		// Anything else (a bad configuration, a synthesis bug) is a
		// real error and must not be hidden behind a plausible-looking
		// placeholder version.
		if errors.Is(err, vers.ErrRepositoryRead) {
			return c.printFallback()
		}
		return fmt.Errorf("calculating version: %w", err)
	}

	if c.Verbose {
		fmt.Fprintf(os.Stderr, "base: %s, height: %d, shallow: %t\n",
			result.Decision.Source, result.Decision.Height, result.Decision.Shallow)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Kind, w.Message)
		}
	}

	dirty, err := vers.WorkTreeIsDirty(repo)
	if err != nil {
		// A bare repository has no worktree to be dirty; that's expected
		// and not worth reporting. Anything else (a failed status read)
		// we can't verify, so say so rather than silently reporting clean.
		if !errors.Is(err, git.ErrIsBareRepository) {
			fmt.Fprintf(os.Stderr, "warning: could not determine worktree dirtiness: %v\n", err)
		}
		dirty = false
	}

	versions := vers.FormatLanguageVersions(result.Version, dirty)

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(versions)
	}

	fmt.Println(getVersionOutput(versions, c.Language))
	return nil
}

func (c *CLI) printFallback() error {
	versions := vers.FallbackVersion()

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(versions)
	}

	fmt.Println(getVersionOutput(versions, c.Language))
	return nil
}

// parseMajorMinor parses a "major.minor" floor, e.g. "2.0".
func parseMajorMinor(s string) (*vers.MajorMinor, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: minimum-major-minor must be \"major.minor\", got %q", vers.ErrInvalidConfiguration, s)
	}
	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid major in %q", vers.ErrInvalidConfiguration, s)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid minor in %q", vers.ErrInvalidConfiguration, s)
	}
	return &vers.MajorMinor{Major: major, Minor: minor}, nil
}

// isVersionString checks if the input looks like a version string rather than a git reference
func isVersionString(input string) bool {
	// Simple heuristic: if it contains dots and starts with a number or 'v', treat as version
	if strings.Contains(input, ".") {
		trimmed := strings.TrimPrefix(input, "v")
		if len(trimmed) > 0 && (trimmed[0] >= '0' && trimmed[0] <= '9') {
			// Check if it has at least 2 dots (x.y.z format)
			parts := strings.Split(trimmed, ".")
			return len(parts) >= 3
		}
	}
	return false
}

func getVersionOutput(versions *vers.LanguageVersions, language string) string {
	switch strings.ToLower(language) {
	case "generic", "semver":
		return versions.SemVer
	case "python":
		return versions.Python
	case "javascript", "js", "node":
		return versions.JavaScript
	case "dotnet", ".net", "csharp":
		return versions.DotNet
	case "go", "golang":
		return versions.Go
	default:
		return versions.SemVer
	}
}
