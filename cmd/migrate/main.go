package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// migration is one SQL file from the migrations directory.
type migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

var migrationFilePattern = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

func main() {
	projectID := flag.String("project", "", "GCP project ID (required)")
	datasetID := flag.String("dataset", "recon", "BigQuery dataset ID")
	appliedBy := flag.String("applied-by", "migrate-cli", "Name recorded against applied migrations")
	dir := flag.String("migrations", "migrations/bigquery", "Path to migrations directory")
	flag.Parse()

	if *projectID == "" {
		log.Fatal("Error: -project flag is required. Please specify your GCP project ID.")
	}

	ctx := context.Background()
	client, err := bigquery.NewClient(ctx, *projectID)
	if err != nil {
		log.Fatalf("Failed to create BigQuery client: %v", err)
	}
	defer client.Close()

	m := &migrator{
		client:    client,
		projectID: *projectID,
		datasetID: *datasetID,
		appliedBy: *appliedBy,
	}

	log.Printf("Connected to BigQuery project: %s, dataset: %s", m.projectID, m.datasetID)

	if err := m.ensureLedger(ctx); err != nil {
		log.Fatalf("Failed to ensure schema_migrations table: %v", err)
	}

	migrations, err := m.readMigrations(*dir)
	if err != nil {
		log.Fatalf("Failed to read migrations: %v", err)
	}
	log.Printf("Found %d migration files", len(migrations))

	appliedVersions, err := m.appliedVersions(ctx)
	if err != nil {
		log.Fatalf("Failed to get applied migrations: %v", err)
	}
	log.Printf("Found %d already applied migrations", len(appliedVersions))

	appliedCount := 0
	for _, mig := range migrations {
		if appliedVersions[mig.Version] {
			log.Printf("  [SKIP] %04d_%s (already applied)", mig.Version, mig.Name)
			continue
		}

		log.Printf("  [RUN]  %04d_%s", mig.Version, mig.Name)
		if err := m.runSQL(ctx, mig.SQL); err != nil {
			log.Fatalf("Failed to execute migration %04d_%s: %v", mig.Version, mig.Name, err)
		}
		if err := m.record(ctx, mig); err != nil {
			log.Fatalf("Failed to record migration %04d_%s: %v", mig.Version, mig.Name, err)
		}
		log.Printf("  [OK]   %04d_%s", mig.Version, mig.Name)
		appliedCount++
	}

	if appliedCount == 0 {
		log.Println("No new migrations to apply. Database is up to date.")
	} else {
		log.Printf("Successfully applied %d migration(s)", appliedCount)
	}
}

type migrator struct {
	client    *bigquery.Client
	projectID string
	datasetID string
	appliedBy string
}

func (m *migrator) ensureLedger(ctx context.Context) error {
	return m.runSQL(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS `+"`%s.%s.schema_migrations`"+` (
			version     INT64 NOT NULL,
			name        STRING NOT NULL,
			applied_at  TIMESTAMP NOT NULL,
			checksum    STRING,
			applied_by  STRING
		)
	`, m.projectID, m.datasetID))
}

// readMigrations loads every NNNN_name.sql file from dir, sorted by
// version. {{PROJECT_ID}} and {{DATASET_ID}} placeholders in the SQL
// are substituted; the checksum covers the original file content so the
// same migration applied to different datasets stays identical.
func (m *migrator) readMigrations(dir string) ([]migration, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found: %s", dir)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []migration
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		matches := migrationFilePattern.FindStringSubmatch(file.Name())
		if matches == nil {
			log.Printf("Skipping file with invalid format: %s", file.Name())
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			log.Printf("Skipping file with invalid version: %s", file.Name())
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Name(), err)
		}

		sql := string(content)
		sql = strings.ReplaceAll(sql, "{{PROJECT_ID}}", m.projectID)
		sql = strings.ReplaceAll(sql, "{{DATASET_ID}}", m.datasetID)

		migrations = append(migrations, migration{
			Version:  version,
			Name:     matches[2],
			SQL:      sql,
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	query := m.client.Query(fmt.Sprintf(`
		SELECT version
		FROM `+"`%s.%s.schema_migrations`"+`
		ORDER BY version ASC
	`, m.projectID, m.datasetID))

	it, err := query.Read(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "Not found") {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	applied := make(map[int]bool)
	for {
		var row struct {
			Version int64
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating results: %w", err)
		}
		applied[int(row.Version)] = true
	}
	return applied, nil
}

func (m *migrator) record(ctx context.Context, mig migration) error {
	query := m.client.Query(fmt.Sprintf(`
		INSERT INTO `+"`%s.%s.schema_migrations`"+`
		(version, name, applied_at, checksum, applied_by)
		VALUES (@version, @name, @applied_at, @checksum, @applied_by)
	`, m.projectID, m.datasetID))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "version", Value: mig.Version},
		{Name: "name", Value: mig.Name},
		{Name: "applied_at", Value: time.Now()},
		{Name: "checksum", Value: mig.Checksum},
		{Name: "applied_by", Value: m.appliedBy},
	}
	return m.runJob(ctx, query)
}

func (m *migrator) runSQL(ctx context.Context, sql string) error {
	return m.runJob(ctx, m.client.Query(sql))
}

func (m *migrator) runJob(ctx context.Context, query *bigquery.Query) error {
	job, err := query.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
