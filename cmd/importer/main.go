package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storefinder-api/internal/config"

	"github.com/jackc/pgx/v5"
)

type StoreRecord struct {
	Name        string
	Description string
	Street      string
	City        string
	State       string
	Country     string
	PostalCode  string
	Tags        []string
	Lat         float64
	Lon         float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure schema exists
	err = createSchemaIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating schema: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(conn, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(filePath string) ([]StoreRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []StoreRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 10 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 10 columns", len(record))
		}

		lat, err := strconv.ParseFloat(record[8], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[8])
		}

		lon, err := strconv.ParseFloat(record[9], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[9])
		}

		var tags []string
		if record[7] != "" {
			tags = strings.Split(record[7], ";")
		}

		store := StoreRecord{
			Name:        record[0],
			Description: record[1],
			Street:      record[2],
			City:        record[3],
			State:       record[4],
			Country:     record[5],
			PostalCode:  record[6],
			Tags:        tags,
			Lat:         lat,
			Lon:         lon,
		}

		records = append(records, store)
	}

	return records, nil
}

func createSchemaIfNotExists(conn *pgx.Conn) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS stores (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		street VARCHAR(255),
		city VARCHAR(255),
		state VARCHAR(255),
		country VARCHAR(255),
		postal_code VARCHAR(32),
		tags TEXT[],
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		search_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('english', name || ' ' || COALESCE(description, ''))
		) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS stores_geom_idx ON stores USING GIST (geom);
	CREATE INDEX IF NOT EXISTS stores_search_tsvector_idx ON stores USING GIN (search_tsvector);

	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inventory (
		id BIGSERIAL PRIMARY KEY,
		store_id BIGINT NOT NULL REFERENCES stores(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		stock_quantity INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	CREATE INDEX IF NOT EXISTS inventory_store_id_idx ON inventory (store_id);
	CREATE INDEX IF NOT EXISTS inventory_product_id_idx ON inventory (product_id);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func insertRecords(conn *pgx.Conn, records []StoreRecord) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"stores"},
		[]string{"name", "description", "street", "city", "state", "country", "postal_code", "tags", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Lon, r.Lat) // PostGIS format: lon lat
			return []interface{}{r.Name, r.Description, r.Street, r.City, r.State, r.Country, r.PostalCode, r.Tags, geom}, nil
		}),
	)
	return err
}

func verifyImport(conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM stores").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err = conn.QueryRow(context.Background(), "SELECT ST_AsText(geom) FROM stores LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	fmt.Printf("Sample geom: %s\n", geom)
	return nil
}
