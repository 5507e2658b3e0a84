// Command suggest ranks the recipe catalog against a list of ingredients and prints the top matches.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/korjavin/smartpantry/pkg/app"
	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/metrics"
	"github.com/korjavin/smartpantry/pkg/profile"
	"github.com/korjavin/smartpantry/pkg/suggest"
)

func main() {
	var (
		ingredients = flag.String("ingredients", "", "comma-separated ingredients you have")
		profileName = flag.String("profile", "", "use the ingredients of this profile")
		top         = flag.Int("top", 0, "number of suggestions (default TOP_N)")
		catalogPath = flag.String("catalog", "", "recipe CSV file (default CATALOG_PATH, then the built-in sample)")
		tags        = flag.String("tags", "", "comma-separated tags every suggestion must carry")
	)
	flag.Parse()

	if err := run(*ingredients, *profileName, *top, *catalogPath, *tags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ingredients, profileName string, top int, catalogPath, tags string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	// keep stdout for the results
	if err := logger.Setup("warn", cfg.LogFormat); err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}

	a, err := app.New(cfg, app.Options{InMemory: true})
	if err != nil {
		return err
	}
	defer a.Close()

	items := catalog.ParseFreeText(ingredients)
	if profileName != "" {
		p, err := a.Profiles.GetByName(profileName)
		if errors.Is(err, profile.ErrNotFound) {
			return fmt.Errorf("no profile named %q", profileName)
		}
		if err != nil {
			return err
		}
		fmt.Println(messages.FormatProfile(*p))
		fmt.Println()
		items = append(items, p.Ingredients...)
	}
	if len(items) == 0 {
		return errors.New("no ingredients given: use -ingredients or -profile")
	}

	opts := suggest.Options{TopN: top, Source: metrics.SourceCLI}
	if tags != "" {
		opts.Tags = strings.Split(tags, ",")
	}
	results := a.Suggest.Suggest(items, opts)

	fmt.Println(messages.FormatPantry(items))
	fmt.Println()
	fmt.Println(messages.FormatMatches(results))
	if len(results) > 0 {
		fmt.Println(messages.AssistantTemplate(items, results[0].Title))
	}
	return nil
}
