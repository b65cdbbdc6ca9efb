package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

var bucketName = []byte("reports")

// Store keeps every finished SearchReport in a local bbolt file, keyed so a
// cursor walk returns them in time order.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Put(report *models.SearchReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	key := []byte(report.SearchedAt.UTC().Format(time.RFC3339Nano) + "/" + report.ID)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, data)
	})
}

// List returns up to limit reports, most recent first.
func (s *Store) List(limit int) ([]models.SearchReport, error) {
	var reports []models.SearchReport
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(reports) >= limit {
				break
			}
			var report models.SearchReport
			if err := json.Unmarshal(v, &report); err != nil {
				continue
			}
			reports = append(reports, report)
		}
		return nil
	})
	return reports, err
}

func (s *Store) Get(id string) (*models.SearchReport, error) {
	var found *models.SearchReport
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			if found != nil {
				return nil
			}
			var report models.SearchReport
			if err := json.Unmarshal(v, &report); err != nil {
				return nil
			}
			if report.ID == id {
				found = &report
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("report %s not found", id)
	}
	return found, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
