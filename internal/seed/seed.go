// Package seed loads books from a YAML file into the catalog.
package seed

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/5w1tchy/book-catalog/internal/catalog"
)

// Entry is one book in a seed file. Year may be written as a number or text.
type Entry struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Genre  string `yaml:"genre"`
	Year   any    `yaml:"year"`
}

type File struct {
	Books []Entry `yaml:"books"`
}

// Parse decodes a seed file.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return File{}, fmt.Errorf("seed: decode: %w", err)
	}
	return f, nil
}

// Input converts the entry to the form a user would have submitted.
func (e Entry) Input() catalog.Input {
	in := catalog.Input{Title: &e.Title, Author: &e.Author}
	if e.Genre != "" {
		g := e.Genre
		in.Genre = &g
	}
	if y := yearText(e.Year); y != "" {
		in.Year = &y
	}
	return in
}

func yearText(v any) string {
	switch y := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(y)
	case string:
		return y
	default:
		return fmt.Sprint(y)
	}
}

// Report summarizes a seeding run.
type Report struct {
	Created int
	Skipped int
}

// Run creates every entry through svc so seeds obey the same rules as user
// input. Invalid entries are logged and skipped; a storage fault aborts.
func Run(ctx context.Context, svc *catalog.Service, f File, log *zap.Logger) (Report, error) {
	var rep Report
	for i, e := range f.Books {
		res, err := svc.Create(ctx, e.Input())
		if err != nil {
			return rep, fmt.Errorf("seed: entry %d: %w", i+1, err)
		}
		if res.Status == catalog.StatusInvalid {
			rep.Skipped++
			log.Warn("seed entry rejected",
				zap.Int("entry", i+1),
				zap.String("title", e.Title),
				zap.String("errors", res.Errors.Error()))
			continue
		}
		rep.Created++
		log.Debug("seed entry created", zap.Int64("id", res.ID), zap.String("title", e.Title))
	}
	return rep, nil
}
