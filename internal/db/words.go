package db

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"

	"gorm.io/gorm"
)

// SampleWord picks one random word from the words table.
func SampleWord(conn *gorm.DB) (Word, error) {
	if conn == nil {
		return Word{}, errors.New("db connection is nil")
	}
	var word Word
	if err := conn.Order("RANDOM()").First(&word).Error; err != nil {
		return Word{}, err
	}
	return word, nil
}

// LoadWordLibrary reads words from a CSV and upserts them into the words table.
func LoadWordLibrary(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readWords(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, text := range records {
		entry := Word{Text: text}
		if err := conn.FirstOrCreate(&entry, Word{Text: entry.Text}).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		records = append(records, text)
	}
	return records, nil
}
