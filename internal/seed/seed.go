// Package seed loads the reference data shipped with the binary.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/maplepath/api/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed industries.yaml
var industriesYAML []byte

type industriesFile struct {
	Industries []models.Industry `yaml:"industries"`
}

// Industries returns the embedded industry list in file order.
func Industries() ([]models.Industry, error) {
	return parseIndustries(industriesYAML)
}

func parseIndustries(b []byte) ([]models.Industry, error) {
	var f industriesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse industries: %w", err)
	}
	seen := map[string]struct{}{}
	for i := range f.Industries {
		in := &f.Industries[i]
		if in.Name == "" {
			return nil, fmt.Errorf("industry #%d has no name", i+1)
		}
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("duplicate industry %q", in.Name)
		}
		seen[in.Name] = struct{}{}
		in.IsActive = true
	}
	return f.Industries, nil
}

type IndustryUpserter interface {
	UpsertByName(ctx context.Context, in *models.Industry) error
}

// SeedIndustries upserts every embedded industry by name, so it is safe to rerun.
func SeedIndustries(ctx context.Context, repo IndustryUpserter, log logrus.FieldLogger) (int, error) {
	list, err := Industries()
	if err != nil {
		return 0, err
	}
	for i := range list {
		if err := repo.UpsertByName(ctx, &list[i]); err != nil {
			return i, fmt.Errorf("upsert industry %q: %w", list[i].Name, err)
		}
		log.WithFields(logrus.Fields{"industry_id": list[i].ID, "name": list[i].Name}).Debug("industry seeded")
	}
	return len(list), nil
}
