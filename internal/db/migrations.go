package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/periodcalendar/migrations"
	"gorm.io/gorm"
)

var errChecksumMismatch = errors.New("applied migration was modified")

// schemaMigration is one row of the schema_migrations ledger.
type schemaMigration struct {
	Version   int    `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	Checksum  string `gorm:"not null;default:''"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationScript struct {
	version  int
	name     string
	body     string
	checksum string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return runMigrations(database, embeddedmigrations.Files)
}

// runMigrations applies every pending script in files, oldest version first.
// Scripts that were already applied must still hash to the recorded checksum.
func runMigrations(database *gorm.DB, files fs.FS) error {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}

	scripts, err := readMigrationScripts(files)
	if err != nil {
		return err
	}

	var ledger []schemaMigration
	if err := database.Order("version").Find(&ledger).Error; err != nil {
		return fmt.Errorf("load schema_migrations: %w", err)
	}
	recorded := make(map[int]schemaMigration, len(ledger))
	for _, row := range ledger {
		recorded[row.Version] = row
	}

	for _, script := range scripts {
		row, done := recorded[script.version]
		if !done {
			if err := applyMigrationScript(database, script); err != nil {
				return err
			}
			continue
		}
		if row.Checksum != "" && row.Checksum != script.checksum {
			return fmt.Errorf("%w: %s", errChecksumMismatch, script.name)
		}
	}
	return nil
}

func readMigrationScripts(files fs.FS) ([]migrationScript, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(names))
	owners := make(map[int]string, len(names))
	for _, name := range names {
		version, err := migrationVersion(name)
		if err != nil {
			return nil, err
		}
		if previous, taken := owners[version]; taken {
			return nil, fmt.Errorf("migration version %d used by both %s and %s", version, previous, name)
		}
		owners[version] = name

		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(raw)
		scripts = append(scripts, migrationScript{
			version:  version,
			name:     name,
			body:     string(raw),
			checksum: hex.EncodeToString(sum[:]),
		})
	}

	slices.SortFunc(scripts, func(a, b migrationScript) int {
		return a.version - b.version
	})
	return scripts, nil
}

// migrationVersion reads the numeric prefix of names like 0003_reminders.sql.
func migrationVersion(name string) (int, error) {
	base := strings.TrimSuffix(path.Base(name), ".sql")
	prefix, _, found := strings.Cut(base, "_")
	if !found || prefix == "" {
		return 0, fmt.Errorf("migration %s must be named <version>_<label>.sql", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("migration %s has invalid version %q", name, prefix)
	}
	return version, nil
}

func applyMigrationScript(database *gorm.DB, script migrationScript) error {
	statements := splitSQLStatements(script.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s is empty", script.name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for i, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", script.name, i+1, err)
			}
		}

		row := schemaMigration{
			Version:   script.version,
			Name:      script.name,
			Checksum:  script.checksum,
			AppliedAt: time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}

// splitSQLStatements breaks a script on semicolons, dropping blank
// statements and whole-line "--" comments. Semicolons inside string
// literals are not supported.
func splitSQLStatements(script string) []string {
	var cleaned strings.Builder
	for line := range strings.Lines(script) {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		cleaned.WriteString(line)
	}

	var statements []string
	for chunk := range strings.SplitSeq(cleaned.String(), ";") {
		if statement := strings.TrimSpace(chunk); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
