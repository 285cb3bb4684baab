package data_processor

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/sirupsen/logrus"
)

// DuckDB 嵌入式分析库连接，path 为空时使用内存库。
type DuckDB struct {
	DB *sql.DB
}

func NewDuckDB(path string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	logrus.WithField("path", path).Info("🦆 DuckDB connected")
	return &DuckDB{DB: db}, nil
}

func (d *DuckDB) Close() error {
	return d.DB.Close()
}
