package keywords

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGStore persists keyword catalogs in Postgres.
type PGStore struct {
	DB *sql.DB
}

// LoadFromDB builds a registry from the active catalog in Postgres.
func LoadFromDB(ctx context.Context, db *sql.DB) (*Registry, error) {
	store := &PGStore{DB: db}
	c, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewRegistry(c)
}

// Load reads the active catalog.
func (s *PGStore) Load(ctx context.Context) (Catalog, error) {
	const catalogQuery = `
SELECT version, default_profile
FROM keyword_catalogs
WHERE active
ORDER BY created_at DESC
LIMIT 1`
	var c Catalog
	err := s.DB.QueryRowContext(ctx, catalogQuery).Scan(&c.Version, &c.Default)
	if errors.Is(err, sql.ErrNoRows) {
		return Catalog{}, ErrCatalogNotFound
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: %w", err)
	}

	const profileQuery = `
SELECT name, aliases, required_sections
FROM industry_profiles
WHERE catalog_version = $1
ORDER BY position`
	rows, err := s.DB.QueryContext(ctx, profileQuery, c.Version)
	if err != nil {
		return Catalog{}, fmt.Errorf("load profiles: %w", err)
	}
	positions := map[string]int{}
	for rows.Next() {
		var (
			p        IndustryProfile
			aliases  []byte
			sections []byte
		)
		if err := rows.Scan(&p.Name, &aliases, &sections); err != nil {
			rows.Close()
			return Catalog{}, fmt.Errorf("scan profile: %w", err)
		}
		if err := unmarshalList(aliases, &p.Aliases); err != nil {
			rows.Close()
			return Catalog{}, fmt.Errorf("profile %q aliases: %w", p.Name, err)
		}
		if err := unmarshalList(sections, &p.RequiredSections); err != nil {
			rows.Close()
			return Catalog{}, fmt.Errorf("profile %q required sections: %w", p.Name, err)
		}
		positions[p.Name] = len(c.Profiles)
		c.Profiles = append(c.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Catalog{}, fmt.Errorf("iterate profiles: %w", err)
	}
	rows.Close()

	const keywordQuery = `
SELECT profile_name, term, synonyms, weight, category, case_sensitive
FROM industry_keywords
WHERE catalog_version = $1
ORDER BY profile_name, position`
	rows, err = s.DB.QueryContext(ctx, keywordQuery, c.Version)
	if err != nil {
		return Catalog{}, fmt.Errorf("load keywords: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			profile  string
			k        KeywordEntry
			synonyms []byte
			category string
		)
		if err := rows.Scan(&profile, &k.Term, &synonyms, &k.Weight, &category, &k.CaseSensitive); err != nil {
			return Catalog{}, fmt.Errorf("scan keyword: %w", err)
		}
		if err := unmarshalList(synonyms, &k.Synonyms); err != nil {
			return Catalog{}, fmt.Errorf("keyword %q synonyms: %w", k.Term, err)
		}
		k.Category = Category(category)
		idx, ok := positions[profile]
		if !ok {
			return Catalog{}, fmt.Errorf("%w: keyword %q references unknown profile %q", ErrInvalidCatalog, k.Term, profile)
		}
		c.Profiles[idx].Keywords = append(c.Profiles[idx].Keywords, k)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate keywords: %w", err)
	}
	return c, nil
}

// Save replaces any catalog with the same version and makes it the active one.
func (s *PGStore) Save(ctx context.Context, c Catalog) error {
	if _, err := NewRegistry(c); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE keyword_catalogs SET active = FALSE WHERE active`); err != nil {
		return fmt.Errorf("deactivate catalogs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM keyword_catalogs WHERE version = $1`, c.Version); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO keyword_catalogs (version, default_profile, active) VALUES ($1, $2, TRUE)`,
		c.Version, c.Default,
	); err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}

	for pi, p := range c.Profiles {
		aliases, err := marshalList(p.Aliases)
		if err != nil {
			return err
		}
		sections, err := marshalList(p.RequiredSections)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO industry_profiles (catalog_version, name, position, aliases, required_sections) VALUES ($1, $2, $3, $4, $5)`,
			c.Version, p.Name, pi, aliases, sections,
		); err != nil {
			return fmt.Errorf("insert profile %q: %w", p.Name, err)
		}
		for ki, k := range p.Keywords {
			synonyms, err := marshalList(k.Synonyms)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO industry_keywords (catalog_version, profile_name, position, term, synonyms, weight, category, case_sensitive) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				c.Version, p.Name, ki, k.Term, synonyms, k.Weight, string(k.Category), k.CaseSensitive,
			); err != nil {
				return fmt.Errorf("insert keyword %q: %w", k.Term, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func marshalList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalList(raw []byte, out *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
