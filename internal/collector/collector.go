package collector

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"FinanceAnalyzer/internal/model"
)

// priceRow is one line of a price file: a single closing price.
type priceRow struct {
	Close float64 `csv:"close"`
}

// FileSource reads prices (one number per line) and expenses
// ("amount,date" per line) from plaintext files without headers.
type FileSource struct {
	PriceFile   string
	ExpenseFile string
}

// NewFileSource creates a FileSource for the given paths.
func NewFileSource(priceFile, expenseFile string) *FileSource {
	return &FileSource{PriceFile: priceFile, ExpenseFile: expenseFile}
}

// Name identifies the source in run history.
func (f *FileSource) Name() string { return "file" }

// LoadPrices reads the price file in chronological order.
func (f *FileSource) LoadPrices() (model.PriceSeries, error) {
	file, err := os.Open(f.PriceFile)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer file.Close()
	return ReadPrices(file, f.PriceFile)
}

// LoadExpenses reads the expense file.
func (f *FileSource) LoadExpenses() ([]model.Expense, error) {
	file, err := os.Open(f.ExpenseFile)
	if err != nil {
		return nil, fmt.Errorf("open expense file: %w", err)
	}
	defer file.Close()
	return ReadExpenses(file, f.ExpenseFile)
}

// ReadPrices decodes one price per line from r. name labels errors.
func ReadPrices(r io.Reader, name string) (model.PriceSeries, error) {
	var rows []priceRow
	if err := decode(r, 1, &rows); err != nil {
		return nil, dataError(name, err)
	}
	prices := make(model.PriceSeries, len(rows))
	for i, row := range rows {
		if math.IsNaN(row.Close) || math.IsInf(row.Close, 0) {
			return nil, &model.DataError{Source: name, Line: i + 1, Err: errors.New("price is not finite")}
		}
		prices[i] = row.Close
	}
	return prices, nil
}

// ReadExpenses decodes "amount,date" lines from r. name labels errors.
func ReadExpenses(r io.Reader, name string) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := decode(r, 2, &expenses); err != nil {
		return nil, dataError(name, err)
	}
	return expenses, nil
}

var (
	errBlankLine  = errors.New("blank line")
	errEmptyField = errors.New("empty field")
)

// decode reads headerless CSV with exactly fields columns per record into out.
// Blank lines and empty cells are rejected.
func decode(r io.Reader, fields int, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := checkBlankLines(data); err != nil {
		return err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true
	return gocsv.UnmarshalCSVWithoutHeaders(strictReader{reader}, out)
}

// checkBlankLines fails on the first empty or whitespace-only line.
// The final newline does not start a line.
func checkBlankLines(data []byte) error {
	lines := bytes.Split(data, []byte("\n"))
	if n := len(lines); len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		if len(bytes.TrimSpace(l)) == 0 {
			return &csv.ParseError{StartLine: i + 1, Line: i + 1, Column: 1, Err: errBlankLine}
		}
	}
	return nil
}

// strictReader is a gocsv.CSVReader that rejects records with empty cells,
// which gocsv would otherwise decode as zero.
type strictReader struct {
	*csv.Reader
}

func (s strictReader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		rec, err := s.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		for j, cell := range rec {
			if strings.TrimSpace(cell) == "" {
				line, col := s.FieldPos(j)
				return nil, &csv.ParseError{StartLine: line, Line: line, Column: col, Err: errEmptyField}
			}
		}
		records = append(records, rec)
	}
}

func dataError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &model.DataError{Source: name, Line: pe.Line, Err: pe.Err}
	}
	return &model.DataError{Source: name, Err: err}
}
