package geo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// TableFile is the YAML shape for alias-table overrides.
type TableFile struct {
	States []StateEntry `yaml:"states"`
}

// LoadTable reads a YAML alias-table override and merges it over the built-in
// defaults: entries naming a known state append their aliases and cities,
// unknown names become new entries. Pass "" to get the defaults unchanged.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: read alias table %s", path)
	}

	var file TableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "geo: parse alias table")
	}

	return newTable(mergeEntries(defaultStates, file.States)), nil
}

func mergeEntries(base, overrides []StateEntry) []StateEntry {
	merged := make([]StateEntry, len(base))
	index := make(map[string]int, len(base))
	for i, e := range base {
		merged[i] = StateEntry{
			Name:    e.Name,
			Aliases: append([]string(nil), e.Aliases...),
			Cities:  append([]string(nil), e.Cities...),
		}
		index[fold(e.Name)] = i
	}

	for _, o := range overrides {
		i, ok := index[fold(o.Name)]
		if !ok {
			merged = append(merged, o)
			index[fold(o.Name)] = len(merged) - 1
			continue
		}
		merged[i].Aliases = appendNew(merged[i].Aliases, o.Aliases)
		merged[i].Cities = appendNew(merged[i].Cities, o.Cities)
	}
	return merged
}

func appendNew(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[fold(v)] = true
	}
	for _, v := range src {
		if v == "" || seen[fold(v)] {
			continue
		}
		dst = append(dst, v)
		seen[fold(v)] = true
	}
	return dst
}
