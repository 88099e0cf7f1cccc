package variables

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tidwall/gjson"

	"sse-journal/model"
)

// Store persists variable names and parameters.
type Store struct {
	Path    string
	Version model.Version
	logger  *log.Logger
}

func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{Path: path, Version: model.Current, logger: logger}
}

type variableDoc struct {
	ID     int    `json:"id"`
	Source int    `json:"source"`
	Name   string `json:"name"`
	Params string `json:"params"`
}

type variablesDoc struct {
	Version struct {
		Major     int    `json:"major"`
		Minor     int    `json:"minor"`
		Patch     int    `json:"patch"`
		Timestamp string `json:"timestamp"`
	} `json:"version"`
	Variables []variableDoc `json:"variables"`
}

func (s *Store) Save(set *Set) error {
	var doc variablesDoc
	doc.Version.Major = s.Version.Major
	doc.Version.Minor = s.Version.Minor
	doc.Version.Patch = s.Version.Patch
	doc.Version.Timestamp = s.Version.Timestamp
	for _, v := range set.List() {
		doc.Variables = append(doc.Variables, variableDoc{
			ID:     v.ID,
			Source: v.Source,
			Name:   v.Name,
			Params: v.Params,
		})
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		s.logger.Printf("Unable to save variables: %v", err)
		return fmt.Errorf("%w: %v", model.ErrSerialization, err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		s.logger.Printf("Unable to open %s for writing.", s.Path)
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}

// Load merges the file into set. Variables already in set are matched by id
// and only take the stored name and parameters; other user variables are
// recreated. A missing
// file leaves set untouched.
func (s *Store) Load(set *Set) error {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.logger.Printf("Unable to open %s for reading.", s.Path)
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	if !gjson.ValidBytes(data) {
		s.logger.Printf("Unable to load variables: not a JSON document")
		return fmt.Errorf("%w: not a JSON document", model.ErrParse)
	}
	root := gjson.ParseBytes(data)

	major := root.Get("version.major")
	if major.Type != gjson.Number {
		return fmt.Errorf("%w: missing major version", model.ErrParse)
	}
	if !s.Version.Compatible(int(major.Int())) {
		s.logger.Printf("Incompatible variables file.")
		return fmt.Errorf("%w: variables major version %d", model.ErrVersionMismatch, major.Int())
	}

	for _, item := range root.Get("variables").Array() {
		id := int(item.Get("id").Int())
		name := item.Get("name").String()
		params := item.Get("params").String()

		if v := set.Get(id); v != nil {
			if v.Deletable && v.Source != int(item.Get("source").Int()) {
				s.logger.Printf("Skipping variable %d (%s): source changed.", id, name)
				continue
			}
			v.Name = name
			v.Params = params
			continue
		}
		if id < firstUserID {
			s.logger.Printf("Skipping unknown built-in variable %d (%s).", id, name)
			continue
		}
		if _, err := set.add(id, int(item.Get("source").Int()), name, params); err != nil {
			s.logger.Printf("Skipping variable %d (%s): %v", id, name, err)
		}
	}
	return nil
}
