package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("desteklenmeyen dosya biçimi, yalnızca .xlsx, .xls ve .csv kabul edilir")
	ErrEmptyFile         = errors.New("dosyada başlık satırı bulunamadı")
)

// Sheet ham tablo verisi: başlık ve veri satırları
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Read dosya uzantısına göre uygun okuyucuyu seçer
func Read(filename string, r io.Reader) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ReadXLSX(r)
	case ".xls":
		return ReadXLS(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadXLSX ilk çalışma sayfasını okur
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excel dosyası çözümlenemedi: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("çalışma sayfası okunamadı: %w", err)
	}
	return toSheet(rows)
}

// ReadCSV virgül veya noktalı virgül ayraçlı CSV okur. UTF-8 BOM atlanır.
func ReadCSV(r io.Reader) (*Sheet, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	firstLine, err := br.Peek(peekSize(br))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("CSV dosyası okunamadı: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectDelimiter(firstLine)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV dosyası çözümlenemedi: %w", err)
	}
	return toSheet(rows)
}

func peekSize(br *bufio.Reader) int {
	if n := br.Buffered(); n > 0 {
		return n
	}
	return 1024
}

// ReadXLS eski Excel 97-2003 biçimindeki ilk çalışma sayfasını okur
func ReadXLS(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Excel dosyası okunamadı: %w", err)
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("Excel dosyası çözümlenemedi: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, ErrEmptyFile
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrEmptyFile
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return toSheet(rows)
}

// detectDelimiter ilk satırda ';' sayısı ',' sayısından fazlaysa ';' kullanır (Türkçe Excel CSV çıktısı)
func detectDelimiter(sample []byte) rune {
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	if bytes.Count(sample, []byte{';'}) > bytes.Count(sample, []byte{','}) {
		return ';'
	}
	return ','
}

func toSheet(rows [][]string) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	header := rows[0]
	empty := true
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, ErrEmptyFile
	}
	return &Sheet{Header: header, Rows: rows[1:]}, nil
}
