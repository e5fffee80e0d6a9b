package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// LoadItems ingests a starter inventory CSV into the items table.
// Expected columns: category, name, quantity, expiry_date. Rows that
// fail to parse are skipped. Intended for demo databases; production
// deployments leave SEED_ITEMS unset.
func LoadItems(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load starter inventory %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read inventory header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start inventory transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO items (category, name, quantity, expiry_date, used) VALUES (?, ?, ?, ?, 0)`)
	if err != nil {
		log.Printf("unable to prepare item insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read inventory row: %v", err)
			continue
		}
		if len(record) < 4 {
			continue
		}
		category := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		quantity, qErr := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		expiry := strings.TrimSpace(record[3])

		if category == "" || name == "" || qErr != nil || quantity < 0 {
			continue
		}
		if _, err := time.Parse("2006-01-02", expiry); err != nil {
			continue
		}

		if _, err := stmt.Exec(category, name, quantity, expiry); err != nil {
			log.Printf("unable to insert item %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit inventory seed: %v", err)
	} else {
		log.Printf("seeded inventory with %d rows", rows)
	}
}
