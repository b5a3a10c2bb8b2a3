package catalog

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"storefront-service/config"
	"storefront-service/models"
)

// LoadFromDB reads the product list from the configured MySQL catalog
// and returns it as a fixed snapshot. The catalog is read once at
// startup; the storefront never writes to it.
func LoadFromDB(cfg *config.Config) (Source, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			return
		}
	}(db)

	db.SetConnMaxLifetime(time.Minute)
	if err := db.Ping(); err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT id, name, price, description, category, image, stock, COALESCE(brand, '')
		FROM products
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			return
		}
	}(rows)

	src := &listSource{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description,
			&p.Category, &p.Image, &p.Stock, &p.Brand); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		src.products = append(src.products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(src.products) == 0 {
		return nil, fmt.Errorf("catalog table is empty")
	}

	return src, nil
}
