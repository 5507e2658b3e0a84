package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/pkg/errors"
)

// Recipe CSV columns, located by header name
const (
	ColRecipeID    = "RecipeID"
	ColTitle       = "Title"
	ColIngredients = "Ingredients"
	ColSteps       = "Steps"
	ColCookingTime = "Cooking_Time"
	ColDifficulty  = "Difficulty"
	ColTags        = "Tags"
)

var recipeColumns = []string{ColRecipeID, ColTitle, ColIngredients, ColSteps, ColCookingTime, ColDifficulty, ColTags}

// ReadCSV reads a headed CSV table and returns its data rows with cells
// reordered to match columns. Every requested column must be present in the header.
func ReadCSV(r io.Reader, columns []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	positions := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := index[col]
		if !ok {
			return nil, errors.Errorf("csv header is missing column %q", col)
		}
		positions[i] = pos
	}

	var rows [][]string
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}

		row := make([]string, len(columns))
		for i, pos := range positions {
			row[i] = record[pos]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadCSV parses a recipe catalog. A malformed row or a duplicate recipe ID fails
// the whole load so that a partial catalog never reaches the matcher.
func LoadCSV(r io.Reader, sep string) ([]models.Recipe, error) {
	rows, err := ReadCSV(r, recipeColumns)
	if err != nil {
		return nil, errors.Wrap(err, "load recipes")
	}

	recipes := make([]models.Recipe, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for i, row := range rows {
		line := i + 2

		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid %s", line, ColRecipeID)
		}
		if seen[id] {
			return nil, errors.Errorf("line %d: duplicate recipe id %d", line, id)
		}
		seen[id] = true

		title := strings.TrimSpace(row[1])
		if title == "" {
			return nil, errors.Errorf("line %d: recipe %d has no title", line, id)
		}

		cookingTime := 0
		if raw := strings.TrimSpace(row[4]); raw != "" {
			cookingTime, err = strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid %s", line, ColCookingTime)
			}
		}

		recipes = append(recipes, models.Recipe{
			ID:          id,
			Title:       title,
			Ingredients: ParseIngredients(row[2], sep),
			Steps:       strings.TrimSpace(row[3]),
			CookingTime: cookingTime,
			Difficulty:  strings.TrimSpace(row[5]),
			Tags:        ParseTags(row[6]),
		})
	}

	if len(recipes) == 0 {
		return nil, ErrEmptyCatalog
	}
	return recipes, nil
}

// LoadFile loads a recipe catalog from a CSV file
func LoadFile(path, sep string) ([]models.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer f.Close()

	recipes, err := LoadCSV(f, sep)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return recipes, nil
}
