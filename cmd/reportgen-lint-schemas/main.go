package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/frequency"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form schema documents for rendering problems.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/fixtures"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return lintFile(path)
	}

	var result []violation
	err = filepath.WalkDir(path, func(file string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSchemaFile(file) {
			return nil
		}
		linted, err := lintFile(file)
		if err != nil {
			return err
		}
		result = append(result, linted...)
		return nil
	})
	return result, err
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func lintFile(path string) ([]violation, error) {
	doc, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	var result []violation
	report := func(location, message string) {
		result = append(result, violation{file: path, location: location, message: message})
	}

	if strings.TrimSpace(doc.ID) == "" {
		report("schema", "missing id; the store cannot register it")
	}
	if len(doc.Sections) == 0 {
		report("schema", "has no sections")
	}

	seenFields := map[string]string{}
	for si, section := range doc.Sections {
		location := fmt.Sprintf("sections[%d]", si)
		if strings.TrimSpace(section.Title) == "" {
			report(location, "section has no title")
		}
		if section.ConditionalDisplay && len(section.RequiredFrequencies) == 0 {
			report(location, "conditionalDisplay set but requiredFrequencies is empty; section always renders")
		}
		for _, raw := range section.RequiredFrequencies {
			if _, ok := frequency.Canonical(raw); !ok {
				report(location, fmt.Sprintf("frequency %q is outside the known vocabulary", raw))
			}
		}

		lintFields(section.Fields, location, seenFields, report)
		for bi, sub := range section.Subsections {
			lintFields(sub.Fields, fmt.Sprintf("%s.subsections[%d]", location, bi), seenFields, report)
		}
	}
	return result, nil
}

func lintFields(fields []schema.Field, location string, seen map[string]string, report func(string, string)) {
	for fi, field := range fields {
		loc := fmt.Sprintf("%s.fields[%d]", location, fi)
		if strings.TrimSpace(field.ID) == "" {
			report(loc, "field has no id")
			continue
		}
		if prev, dup := seen[field.Key()]; dup {
			report(loc, fmt.Sprintf("data key %q already used at %s", field.Key(), prev))
		} else {
			seen[field.Key()] = loc
		}
		if field.Kind() == schema.FieldTypeUnknown {
			report(loc, fmt.Sprintf("unknown field type %q renders through the generic fallback", field.Type))
		}
		if field.Kind() == schema.FieldTypeTable && len(field.Columns) == 0 {
			report(loc, "table field declares no columns")
		}
		if field.Kind() == schema.FieldTypeRepeater {
			// Sub-field keys resolve per record, so they get their own scope.
			lintFields(field.Fields, loc, map[string]string{}, report)
		}
	}
}
