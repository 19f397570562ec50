package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// LoadFiles parses the vegetable list and the box definitions into a catalog.
func LoadFiles(itemsPath, boxesPath string) (*model.Catalog, error) {
	var items []model.CatalogEntry
	if err := withFile(itemsPath, func(r io.Reader) (err error) {
		items, err = ParseItems(r)
		return err
	}); err != nil {
		return nil, err
	}

	var boxes map[model.BoxSize]model.BoxTemplate
	if err := withFile(boxesPath, func(r io.Reader) (err error) {
		boxes, err = ParseBoxes(r)
		return err
	}); err != nil {
		return nil, err
	}

	return &model.Catalog{Items: items, Boxes: boxes}, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domainErrors.ErrConfigurationNotFound, path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ParseItems reads "[section]" headers and "name = price" lines. The section
// name selects the sales mode by containing "weight/kg", "unit" or "pack"; an
// item in any other section may carry the marker in its own name instead.
func ParseItems(r io.Reader) ([]model.CatalogEntry, error) {
	var (
		items   []model.CatalogEntry
		section string
		inside  bool
	)
	err := scanLines(r, func(lineNo int, line string) error {
		if name, ok := sectionName(line); ok {
			section, inside = name, true
			return nil
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || !inside {
			return nil
		}
		name := strings.TrimSpace(key)
		mode, ok := modeOf(section)
		if !ok {
			if mode, ok = modeOf(name); !ok {
				return nil
			}
		}
		if name == "" {
			return parseError(lineNo, "missing item name")
		}
		price, err := model.ParseMoney(value)
		if err != nil {
			return parseError(lineNo, fmt.Sprintf("malformed price %q", strings.TrimSpace(value)))
		}
		items = append(items, model.CatalogEntry{Name: name, Mode: mode, Price: price})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ParseBoxes reads one section per box size with a "price" key and any number
// of keys starting with "item" listing the default contents in order.
func ParseBoxes(r io.Reader) (map[model.BoxSize]model.BoxTemplate, error) {
	boxes := make(map[model.BoxSize]model.BoxTemplate)
	var (
		current model.BoxSize
		inside  bool
	)
	err := scanLines(r, func(lineNo int, line string) error {
		if name, ok := sectionName(line); ok {
			current, inside = model.ParseBoxSize(name)
			return nil
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || !inside {
			return nil
		}
		box := boxes[current]
		box.Size = current
		key = strings.ToLower(strings.TrimSpace(key))
		switch {
		case key == "price":
			price, err := model.ParseMoney(value)
			if err != nil {
				return parseError(lineNo, fmt.Sprintf("malformed box price %q", strings.TrimSpace(value)))
			}
			box.Price = price
		case strings.HasPrefix(key, "item"):
			box.Contents = append(box.Contents, strings.TrimSpace(value))
		default:
			return nil
		}
		boxes[current] = box
		return nil
	})
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func sectionName(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

func modeOf(s string) (model.SalesMode, bool) {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "weight/kg"):
		return model.SalesModeWeight, true
	case strings.Contains(s, "unit"):
		return model.SalesModeUnit, true
	case strings.Contains(s, "pack"):
		return model.SalesModePack, true
	}
	return "", false
}

func parseError(lineNo int, reason string) error {
	return fmt.Errorf("%w: line %d: %s", domainErrors.ErrConfigurationParse, lineNo, reason)
}
