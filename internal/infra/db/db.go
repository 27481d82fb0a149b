package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"microquiz/internal/infra/logger"

	_ "github.com/ncruces/go-sqlite3/driver" // Driver SQLite via Wazero (Pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed binary
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewSQLiteConnection abre uma conexão com o banco de dados SQLite.
func NewSQLiteConnection(dsn string) (*sql.DB, error) {
	// Driver "sqlite3"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Error("Falha ao abrir conexão com banco de dados", "erro", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		logger.Error("Falha ao conectar com banco de dados (ping)", "erro", err)
		return nil, err
	}

	logger.Info("Conectado ao banco de dados SQLite com sucesso", "dsn", dsn)
	return db, nil
}

// RunMigrations executa os arquivos .sql embutidos em ordem lexical.
// Os scripts são idempotentes e rodam a cada inicialização.
func RunMigrations(db *sql.DB) error {
	filenames, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("erro ao listar migrations: %w", err)
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		content, err := migrations.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("erro ao ler %s: %w", filename, err)
		}

		logger.Info("Executando migração", "arquivo", filename)
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("erro ao executar %s: %w", filename, err)
		}
	}
	return nil
}
